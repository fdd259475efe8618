package xl

import "testing"

func TestMergeCellsRejectsOverlap(t *testing.T) {
	sh := newTestSheet()
	if err := sh.MergeCells("B2:D4", KeepCellValues); err != nil {
		t.Fatal(err)
	}
	if err := sh.MergeCells("C3:E5", KeepCellValues); err == nil {
		t.Error("expected overlap rejection for C3:E5 against existing B2:D4")
	}
	if err := sh.MergeCells("F1:G2", KeepCellValues); err != nil {
		t.Errorf("disjoint merge should succeed: %v", err)
	}
}

func TestMergeCellsRejectsSingleCell(t *testing.T) {
	sh := newTestSheet()
	if err := sh.MergeCells("A1:A1", KeepCellValues); err == nil {
		t.Error("expected error merging a single cell")
	}
}

func TestMergeCellsEmptyHiddenCells(t *testing.T) {
	sh := newTestSheet()
	for _, ref := range []string{"B2", "C2", "B3", "C3"} {
		c, err := sh.Cell(ref)
		if err != nil {
			t.Fatal(err)
		}
		if err := c.SetInt(1); err != nil {
			t.Fatal(err)
		}
	}
	if err := sh.MergeCells("B2:C3", EmptyHiddenCells); err != nil {
		t.Fatal(err)
	}

	topLeft, _ := sh.Cell("B2")
	empty, _ := topLeft.Empty()
	if empty {
		t.Error("top-left cell of a merge must keep its value")
	}
	for _, ref := range []string{"C2", "B3", "C3"} {
		c, _ := sh.Cell(ref)
		empty, _ := c.Empty()
		if !empty {
			t.Errorf("cell %s should be cleared by EmptyHiddenCells", ref)
		}
	}
}

func TestUnmergeCells(t *testing.T) {
	sh := newTestSheet()
	if err := sh.MergeCells("B2:D4", KeepCellValues); err != nil {
		t.Fatal(err)
	}
	if err := sh.UnmergeCells("B2:D4"); err != nil {
		t.Fatal(err)
	}
	if len(sh.Merges()) != 0 {
		t.Error("merge region should be removed")
	}
	if err := sh.UnmergeCells("B2:D4"); err == nil {
		t.Error("unmerging a nonexistent region should fail")
	}
}

func TestFindMergeByCell(t *testing.T) {
	sh := newTestSheet()
	if err := sh.MergeCells("B2:D4", KeepCellValues); err != nil {
		t.Fatal(err)
	}
	if idx := sh.FindMergeByCell(3, 3); idx != 0 {
		t.Errorf("FindMergeByCell(3,3) = %d, want 0", idx)
	}
	if idx := sh.FindMergeByCell(1, 1); idx != NoMergeIndex {
		t.Errorf("FindMergeByCell(1,1) = %d, want NoMergeIndex", idx)
	}
}
