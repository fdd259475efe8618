package xl

import "testing"

func TestRowHeightAndHidden(t *testing.T) {
	sh := newTestSheet()
	r := sh.Row(3)
	if h, err := r.Height(); err != nil || h != 0 {
		t.Errorf("default height = (%v,%v), want (0,nil)", h, err)
	}
	if err := r.SetHeight(20); err != nil {
		t.Fatal(err)
	}
	if h, _ := r.Height(); h != 20 {
		t.Errorf("Height() = %v, want 20", h)
	}
	if hidden, _ := r.Hidden(); hidden {
		t.Error("row should not be hidden by default")
	}
	if err := r.SetHidden(true); err != nil {
		t.Fatal(err)
	}
	if hidden, _ := r.Hidden(); !hidden {
		t.Error("SetHidden(true) should make the row hidden")
	}
}

func TestRowCellDerivesCoordinate(t *testing.T) {
	sh := newTestSheet()
	r := sh.Row(5)
	c := r.Cell(2)
	if c.Ref() != "B5" {
		t.Errorf("Row(5).Cell(2).Ref() = %q, want B5", c.Ref())
	}
}

func TestRowHandleInvalidatedByGeneration(t *testing.T) {
	sh := newTestSheet()
	r := sh.Row(1)
	sh.generation++
	if _, err := r.Height(); err == nil {
		t.Error("expected InvalidState after the sheet's generation changes")
	}
}
