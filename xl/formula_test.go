package xl

import "testing"

func TestShiftFormulaRelative(t *testing.T) {
	cases := []struct {
		formula           string
		rowOff, colOff    int
		want              string
	}{
		{"A1+B2", 1, 0, "A2+B3"},
		{"A1+B2", 0, 1, "B1+C2"},
		{"SUM(A1:A10)", 2, 0, "SUM(A3:A12)"},
		{"A1", 0, 0, "A1"},
	}
	for _, c := range cases {
		got := shiftFormula(c.formula, c.rowOff, c.colOff)
		if got != c.want {
			t.Errorf("shiftFormula(%q, %d, %d) = %q, want %q", c.formula, c.rowOff, c.colOff, got, c.want)
		}
	}
}

func TestShiftFormulaAbsoluteUntouched(t *testing.T) {
	got := shiftFormula("$A$1+B2", 1, 1)
	want := "$A$1+C3"
	if got != want {
		t.Errorf("shiftFormula = %q, want %q", got, want)
	}
}

func TestShiftFormulaMixedAbsolute(t *testing.T) {
	got := shiftFormula("$A1", 2, 3)
	if got != "$A3" {
		t.Errorf("shiftFormula($A1) = %q, want $A3 (column pinned, row shifted)", got)
	}
	got = shiftFormula("A$1", 2, 3)
	if got != "D$1" {
		t.Errorf("shiftFormula(A$1) = %q, want D$1 (row pinned, column shifted)", got)
	}
}

func TestSharedFormulaResolution(t *testing.T) {
	sh := newTestSheet()

	master := sh.ensureRow(1)
	master.cells[1] = &cellData{kind: CellFormula, formulaKind: FormulaShared, sharedIndex: 0, v: "A1*2"}

	slave := sh.ensureRow(2)
	slave.cells[1] = &cellData{kind: CellFormula, formulaKind: FormulaShared, sharedIndex: 0}

	c := sh.CellAt(1, 2)
	got, err := c.Formula()
	if err != nil {
		t.Fatal(err)
	}
	if got != "A2*2" {
		t.Errorf("resolved shared formula = %q, want A2*2", got)
	}
}

func TestSharedFormulaMissingMaster(t *testing.T) {
	sh := newTestSheet()
	row := sh.ensureRow(5)
	row.cells[1] = &cellData{kind: CellFormula, formulaKind: FormulaShared, sharedIndex: 7}

	c := sh.CellAt(1, 5)
	if _, err := c.Formula(); err == nil {
		t.Error("expected FormulaError when no master carries the shared index")
	}
}

func TestArrayFormulaUnsupported(t *testing.T) {
	sh := newTestSheet()
	row := sh.ensureRow(1)
	row.cells[1] = &cellData{kind: CellFormula, formulaKind: FormulaArray, v: "SUM(A1:A10)"}

	c := sh.CellAt(1, 1)
	_, err := c.Formula()
	if err == nil {
		t.Fatal("expected error for array formula")
	}
	xlErr, ok := err.(*Error)
	if !ok || xlErr.Kind != KindFormulaError {
		t.Errorf("expected KindFormulaError, got %v", err)
	}
}
