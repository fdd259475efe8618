package xl

import "testing"

func TestColumnNameRoundTrip(t *testing.T) {
	cases := []struct {
		n    int
		name string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
		{MaxColumn, ""},
	}
	for _, c := range cases {
		name, err := ColumnName(c.n)
		if err != nil {
			t.Fatalf("ColumnName(%d): %v", c.n, err)
		}
		if c.name != "" && name != c.name {
			t.Errorf("ColumnName(%d) = %q, want %q", c.n, name, c.name)
		}
		back, err := ColumnNumber(name)
		if err != nil {
			t.Fatalf("ColumnNumber(%q): %v", name, err)
		}
		if back != c.n {
			t.Errorf("ColumnNumber(%q) = %d, want %d", name, back, c.n)
		}
	}
}

func TestColumnNameOutOfRange(t *testing.T) {
	if _, err := ColumnName(0); err == nil {
		t.Error("expected error for column 0")
	}
	if _, err := ColumnName(MaxColumn + 1); err == nil {
		t.Error("expected error for column beyond MaxColumn")
	}
}

func TestParseCellRef(t *testing.T) {
	cases := []struct {
		ref      string
		col, row int
	}{
		{"A1", 1, 1},
		{"$C$12", 3, 12},
		{"Z1048576", 26, 1048576},
		{"$AA$1", 27, 1},
	}
	for _, c := range cases {
		col, row, err := ParseCellRef(c.ref)
		if err != nil {
			t.Fatalf("ParseCellRef(%q): %v", c.ref, err)
		}
		if col != c.col || row != c.row {
			t.Errorf("ParseCellRef(%q) = (%d,%d), want (%d,%d)", c.ref, col, row, c.col, c.row)
		}
	}
}

func TestParseCellRefInvalid(t *testing.T) {
	for _, ref := range []string{"", "1", "A", "A0", "A1048577", "$$A1", "A$"} {
		if _, _, err := ParseCellRef(ref); err == nil {
			t.Errorf("ParseCellRef(%q): expected error", ref)
		}
	}
}

func TestRangeOverlaps(t *testing.T) {
	a, _ := ParseRange("B2:D4")
	cases := []struct {
		ref     string
		overlap bool
	}{
		{"B2:D4", true},   // identical
		{"C3:E5", true},   // partial overlap
		{"A1:B2", true},   // touches corner
		{"E5:F6", false},  // disjoint both axes
		{"A1:A10", false}, // disjoint columns only
		{"C1:C1", false},  // disjoint rows only
		{"C3:C3", true},   // contained
	}
	for _, c := range cases {
		b, err := ParseRange(c.ref)
		if err != nil {
			t.Fatalf("ParseRange(%q): %v", c.ref, err)
		}
		if got := a.Overlaps(b); got != c.overlap {
			t.Errorf("B2:D4.Overlaps(%s) = %v, want %v", c.ref, got, c.overlap)
		}
	}
}

func TestRangeNormalization(t *testing.T) {
	r, err := ParseRange("D4:B2")
	if err != nil {
		t.Fatal(err)
	}
	if r.StartCol != 2 || r.StartRow != 2 || r.EndCol != 4 || r.EndRow != 4 {
		t.Errorf("got %+v, want normalized B2:D4", r)
	}
	if r.String() != "B2:D4" {
		t.Errorf("String() = %q, want B2:D4", r.String())
	}
}

func TestRangeSingleCell(t *testing.T) {
	r, err := ParseRange("A1")
	if err != nil {
		t.Fatal(err)
	}
	if r.CellCount() != 1 {
		t.Errorf("CellCount() = %d, want 1", r.CellCount())
	}
	if !r.Contains(1, 1) || r.Contains(2, 1) {
		t.Error("Contains behaves incorrectly for a single-cell range")
	}
}
