package xl

import (
	"os"
	"path/filepath"
	"strings"
)

// DumpParts writes every flushed part to dir as a plain directory tree
// (one file per package part, parent directories created as needed), for
// inspecting generated XML without unzipping a saved .xlsx. It does not
// replace SaveAs: the package itself is still only ever persisted as a
// zip archive.
func (d *Document) DumpParts(dir string) error {
	if err := d.flush(); err != nil {
		return err
	}
	for _, name := range d.pkg.Names() {
		blob, _ := d.pkg.Get(name)
		fn := filepath.Join(dir, strings.TrimPrefix(name, "/"))
		if err := os.MkdirAll(filepath.Dir(fn), 0o777); err != nil {
			return wrapErr(KindIOError, err, "create directory for %s", fn)
		}
		if err := os.WriteFile(fn, blob, 0o666); err != nil {
			return wrapErr(KindIOError, err, "write %s", fn)
		}
	}
	return nil
}
