package xl

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// zipEpoch is used for deterministic entry timestamps; the ZIP format
// cannot represent dates before 1980.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// OverwriteMode controls whether Save/SaveAs may replace an existing file
// at the target path.
type OverwriteMode int

const (
	// DoNotOverwrite fails with FileExists if the target already exists.
	DoNotOverwrite OverwriteMode = iota
	// ForceOverwrite replaces an existing file at the target path.
	ForceOverwrite
)

// Package is the in-memory entry table for a ZIP-based OOXML container.
// Opening a package eagerly reads every entry's uncompressed bytes; the
// underlying file is not held open between operations (spec: "fully read,
// immediately closed; the file is only reopened during save").
type Package struct {
	path    string // path last opened/saved to, or "" if never persisted
	entries map[string][]byte
	order   []string // insertion order, used so a created package emits in a stable sequence
}

func normalizePartPath(name string) string {
	return strings.TrimPrefix(name, "/")
}

// NewPackage creates an empty in-memory package (the state produced by
// Document's create path before any parts are written to it).
func NewPackage() *Package {
	return &Package{entries: map[string][]byte{}}
}

// OpenPackage reads every member of the ZIP archive at path into memory.
func OpenPackage(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wrapErr(KindFileNotFound, err, "open %s", path)
		}
		return nil, wrapErr(KindIOError, err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, wrapErr(KindIOError, err, "stat %s", path)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, wrapErr(KindInvalidFormat, err, "not a valid zip archive: %s", path)
	}

	p := &Package{path: path, entries: map[string][]byte{}}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, wrapErr(KindInvalidFormat, err, "open zip entry %s", zf.Name)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, wrapErr(KindIOError, err, "read zip entry %s", zf.Name)
		}
		name := normalizePartPath(zf.Name)
		p.entries[name] = data
		p.order = append(p.order, name)
	}
	return p, nil
}

// Has reports whether a part with the given path exists.
func (p *Package) Has(name string) bool {
	_, ok := p.entries[normalizePartPath(name)]
	return ok
}

// Get returns the raw bytes for a part, or (nil, false) if absent.
func (p *Package) Get(name string) ([]byte, bool) {
	b, ok := p.entries[normalizePartPath(name)]
	return b, ok
}

// Put inserts or replaces a part's bytes.
func (p *Package) Put(name string, blob []byte) {
	name = normalizePartPath(name)
	if _, exists := p.entries[name]; !exists {
		p.order = append(p.order, name)
	}
	p.entries[name] = blob
}

// Remove deletes a part, reporting whether it existed.
func (p *Package) Remove(name string) bool {
	name = normalizePartPath(name)
	if _, ok := p.entries[name]; !ok {
		return false
	}
	delete(p.entries, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns every part path currently in the package, in a stable
// (insertion, then lexical for unseen) order.
func (p *Package) Names() []string {
	seen := make(map[string]bool, len(p.entries))
	names := make([]string, 0, len(p.entries))
	for _, n := range p.order {
		if _, ok := p.entries[n]; ok && !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	for n := range p.entries {
		if !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	sort.Strings(names[len(p.order):])
	return names
}

// Save writes the package to path as a ZIP archive with DEFLATE-compressed,
// UTF-8-named members. If path is empty, the path last used to Open/Save is
// reused; if neither is available, returns InvalidArgument.
func (p *Package) Save(path string, mode OverwriteMode) error {
	if path == "" {
		path = p.path
	}
	if path == "" {
		return newErr(KindInvalidArgument, "no target path: package was never opened or saved with a path")
	}
	if mode == DoNotOverwrite {
		if _, err := os.Stat(path); err == nil {
			return newErr(KindFileExists, "%s already exists", path)
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range p.Names() {
		hdr := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		hdr.SetModTime(zipEpoch)
		// general purpose bit 11 (UTF-8 filenames)
		hdr.Flags |= 0x800
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return wrapErr(KindIOError, err, "write zip entry %s", name)
		}
		if _, err := w.Write(p.entries[name]); err != nil {
			return wrapErr(KindIOError, err, "write zip entry %s", name)
		}
	}
	if err := zw.Close(); err != nil {
		return wrapErr(KindIOError, err, "finalize zip archive")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o666); err != nil {
		return wrapErr(KindIOError, err, "write %s", path)
	}
	p.path = path
	return nil
}
