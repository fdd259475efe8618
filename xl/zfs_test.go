package xl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDumpPartsWritesPlainDirectoryTree(t *testing.T) {
	d := Create()
	dir := t.TempDir()
	if err := d.DumpParts(dir); err != nil {
		t.Fatal(err)
	}
	wbPath := filepath.Join(dir, "xl", "workbook.xml")
	if _, err := os.Stat(wbPath); err != nil {
		t.Errorf("expected %s to exist: %v", wbPath, err)
	}
	ctPath := filepath.Join(dir, "[Content_Types].xml")
	if _, err := os.Stat(ctPath); err != nil {
		t.Errorf("expected %s to exist: %v", ctPath, err)
	}
}
