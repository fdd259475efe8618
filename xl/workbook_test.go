package xl

import "testing"

func TestValidateSheetName(t *testing.T) {
	valid := []string{"Sheet1", "Data", "a", "Sales 2024"}
	for _, n := range valid {
		if err := validateSheetName(n); err != nil {
			t.Errorf("validateSheetName(%q) = %v, want nil", n, err)
		}
	}
	invalid := []string{
		"",
		"'Sheet1",
		"Sheet1'",
		"a:b",
		"a\\b",
		"a/b",
		"a?b",
		"a*b",
		"a[b",
		"a]b",
		"this name is far too long to be a valid sheet name at all",
	}
	for _, n := range invalid {
		if err := validateSheetName(n); err == nil {
			t.Errorf("validateSheetName(%q): expected error", n)
		}
	}
}

func TestAddSheetDuplicateName(t *testing.T) {
	wb := newWorkbook(nil)
	if _, err := wb.AddSheet("Sheet1"); err != nil {
		t.Fatal(err)
	}
	if _, err := wb.AddSheet("Sheet1"); err == nil {
		t.Error("expected error adding a duplicate sheet name")
	}
}

func TestAddSheetAllocatesStableIDs(t *testing.T) {
	wb := newWorkbook(nil)
	s1, _ := wb.AddSheet("A")
	s2, _ := wb.AddSheet("B")
	if s1.ID != 1 || s2.ID != 2 {
		t.Errorf("sheet IDs = %d, %d, want 1, 2", s1.ID, s2.ID)
	}
	if err := wb.DeleteSheet("A"); err != nil {
		t.Fatal(err)
	}
	s3, _ := wb.AddSheet("C")
	if s3.ID != 3 {
		t.Errorf("sheet ID after delete = %d, want 3 (IDs are never reused)", s3.ID)
	}
}

func TestDeleteSheetRefusesLastVisible(t *testing.T) {
	wb := newWorkbook(nil)
	wb.AddSheet("Only")
	if err := wb.DeleteSheet("Only"); err == nil {
		t.Error("expected error deleting the workbook's only visible sheet")
	}
}

func TestDeleteSheetRefusesLastVisibleWhenOthersHidden(t *testing.T) {
	wb := newWorkbook(nil)
	wb.AddSheet("Visible")
	hidden, _ := wb.AddSheet("Hidden")
	hidden.Visibility = Hidden
	if err := wb.DeleteSheet("Visible"); err == nil {
		t.Error("expected error deleting the only visible sheet while only hidden sheets remain")
	}
}

func TestCloneSheetCopiesGridNotParts(t *testing.T) {
	wb := newWorkbook(nil)
	src, _ := wb.AddSheet("Src")
	c, _ := src.Cell("A1")
	c.SetInt(7)
	src.TabColor = "FFFF0000"

	dst, err := wb.CloneSheet("Src", "Dst")
	if err != nil {
		t.Fatal(err)
	}
	dc, _ := dst.Cell("A1")
	v, err := dc.Int()
	if err != nil || v != 7 {
		t.Errorf("cloned cell A1 = (%d,%v), want (7,nil)", v, err)
	}
	if dst.TabColor != "FFFF0000" {
		t.Errorf("TabColor not cloned: %q", dst.TabColor)
	}
	// mutating the source after cloning must not affect the clone.
	c.SetInt(99)
	dv, _ := dc.Int()
	if dv != 7 {
		t.Error("clone shares cell storage with its source (not a deep copy)")
	}
}

func TestCloneSheetRejectsExistingName(t *testing.T) {
	wb := newWorkbook(nil)
	wb.AddSheet("Src")
	wb.AddSheet("Dst")
	if _, err := wb.CloneSheet("Src", "Dst"); err == nil {
		t.Error("expected error cloning into an already-existing sheet name")
	}
}

func TestSetSheetIndexReorders(t *testing.T) {
	wb := newWorkbook(nil)
	wb.AddSheet("A")
	wb.AddSheet("B")
	wb.AddSheet("C")
	if err := wb.SetSheetIndex("C", 1); err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, 3)
	for _, sh := range wb.Sheets() {
		names = append(names, sh.Name)
	}
	want := []string{"C", "A", "B"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("order = %v, want %v", names, want)
			break
		}
	}
}

func TestSheetByName(t *testing.T) {
	wb := newWorkbook(nil)
	wb.AddSheet("Data")
	if wb.SheetByName("Data") == nil {
		t.Error("SheetByName should find an added sheet")
	}
	if wb.SheetByName("Missing") != nil {
		t.Error("SheetByName should return nil for an unknown name")
	}
}
