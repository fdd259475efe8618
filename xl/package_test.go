package xl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPackagePutGetHasRemove(t *testing.T) {
	p := NewPackage()
	if p.Has("xl/workbook.xml") {
		t.Error("empty package should not have any parts")
	}
	p.Put("/xl/workbook.xml", []byte("<workbook/>"))
	if !p.Has("xl/workbook.xml") {
		t.Error("Put should register the part under its normalized path")
	}
	b, ok := p.Get("xl/workbook.xml")
	if !ok || string(b) != "<workbook/>" {
		t.Errorf("Get = (%q,%v)", b, ok)
	}
	if !p.Remove("/xl/workbook.xml") {
		t.Error("Remove should report true for an existing part")
	}
	if p.Remove("/xl/workbook.xml") {
		t.Error("Remove should report false the second time")
	}
}

func TestPackageNamesPreservesInsertionOrder(t *testing.T) {
	p := NewPackage()
	p.Put("[Content_Types].xml", []byte("a"))
	p.Put("xl/workbook.xml", []byte("b"))
	p.Put("xl/worksheets/sheet1.xml", []byte("c"))
	names := p.Names()
	want := []string{"[Content_Types].xml", "xl/workbook.xml", "xl/worksheets/sheet1.xml"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPackageSaveRoundTrip(t *testing.T) {
	p := NewPackage()
	p.Put("xl/workbook.xml", []byte("<workbook/>"))
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	if err := p.Save(path, DoNotOverwrite); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenPackage(path)
	if err != nil {
		t.Fatal(err)
	}
	b, ok := reopened.Get("xl/workbook.xml")
	if !ok || string(b) != "<workbook/>" {
		t.Errorf("round-tripped part = (%q,%v)", b, ok)
	}
}

func TestPackageSaveRefusesExistingFileByDefault(t *testing.T) {
	p := NewPackage()
	p.Put("xl/workbook.xml", []byte("x"))
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	if err := os.WriteFile(path, []byte("already here"), 0o666); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(path, DoNotOverwrite); err == nil {
		t.Error("expected an error saving over an existing file with DoNotOverwrite")
	}
	if err := p.Save(path, ForceOverwrite); err != nil {
		t.Errorf("ForceOverwrite should succeed over an existing file: %v", err)
	}
}

func TestPackageSaveNoPathIsInvalidArgument(t *testing.T) {
	p := NewPackage()
	if err := p.Save("", DoNotOverwrite); err == nil {
		t.Error("expected an error saving a never-persisted package with no path")
	}
}

func TestOpenPackageMissingFile(t *testing.T) {
	if _, err := OpenPackage("/nonexistent/path/to/file.xlsx"); err == nil {
		t.Error("expected an error opening a nonexistent path")
	}
}
