package xl

import (
	"strconv"
)

// CellType is the tag of the cell-value variant (spec.md §3: {Empty,
// Boolean, Integer, Float, Error, SharedString, InlineString,
// FormulaWithValue, Date}). Integer/Float/Date are all stored as Number
// on the wire and distinguished at the API surface by the getter called
// and, for Date, by the cell's number-format.
type CellType int

const (
	CellEmpty CellType = iota
	CellBool
	CellNumber
	CellError
	CellSharedString
	CellInlineString
	CellFormula
)

// cellData is the value actually stored in the sparse grid. Cell (below)
// is the caller-facing handle that dereferences into it.
type cellData struct {
	kind CellType
	v    string // canonical text: numeric literal, "0"/"1", error code, or literal string (shared/inline)

	formulaKind FormulaKind
	sharedIndex int    // valid when formulaKind == FormulaShared
	cached      string // cached <v> alongside a formula, if any

	styleIdx int // index into the owning workbook's CellXfs table; 0 = default
}

// Cell is a handle to a single grid position. It carries no data of its
// own: every access dereferences through the owning Sheet and checks the
// sheet's generation counter, so a handle outlived by a structural
// mutation (e.g. its sheet being deleted) fails with
// InvalidState instead of silently operating on stale state.
type Cell struct {
	sheet *Sheet
	col   int
	row   int
	gen   int
}

func (c Cell) resolve() (*cellData, error) {
	if c.sheet == nil {
		return nil, newErr(KindInvalidState, "cell handle is unattached")
	}
	if c.gen != c.sheet.generation {
		return nil, newErr(KindInvalidState, "cell handle invalidated by a structural change")
	}
	row := c.sheet.rows[c.row]
	if row == nil {
		return &cellData{}, nil
	}
	cd := row.cells[c.col]
	if cd == nil {
		return &cellData{}, nil
	}
	return cd, nil
}

func (c Cell) ensure() (*cellData, error) {
	if c.sheet == nil {
		return nil, newErr(KindInvalidState, "cell handle is unattached")
	}
	if c.gen != c.sheet.generation {
		return nil, newErr(KindInvalidState, "cell handle invalidated by a structural change")
	}
	row := c.sheet.ensureRow(c.row)
	cd := row.cells[c.col]
	if cd == nil {
		cd = &cellData{}
		row.cells[c.col] = cd
		if c.col >= row.nextCol {
			row.nextCol = c.col + 1
		}
	}
	return cd, nil
}

// Ref returns the A1-style reference for this cell's coordinate.
func (c Cell) Ref() string { return CellRef(c.col, c.row) }

// Col and Row return the 1-based coordinate of the cell.
func (c Cell) Col() int { return c.col }
func (c Cell) Row() int { return c.row }

// Type returns the cell's value-type tag.
func (c Cell) Type() (CellType, error) {
	cd, err := c.resolve()
	if err != nil {
		return CellEmpty, err
	}
	return cd.kind, nil
}

// Empty reports whether the cell has no value, no formula, and default
// formatting.
func (c Cell) Empty() (bool, error) {
	cd, err := c.resolve()
	if err != nil {
		return false, err
	}
	return cd.kind == CellEmpty && cd.styleIdx == 0, nil
}

// SetInt stores an integer value.
func (c Cell) SetInt(v int64) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.kind = CellNumber
	cd.v = strconv.FormatInt(v, 10)
	cd.formulaKind = FormulaNormal
	return nil
}

// SetFloat stores a floating-point value.
func (c Cell) SetFloat(v float64) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.kind = CellNumber
	cd.v = ftoa(v)
	cd.formulaKind = FormulaNormal
	return nil
}

// SetBool stores a boolean value.
func (c Cell) SetBool(v bool) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.kind = CellBool
	if v {
		cd.v = "1"
	} else {
		cd.v = "0"
	}
	cd.formulaKind = FormulaNormal
	return nil
}

// SetError stores an error-code value (e.g. "#DIV/0!").
func (c Cell) SetError(code string) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.kind = CellError
	cd.v = code
	cd.formulaKind = FormulaNormal
	return nil
}

// SetSharedString stores a string via the shared-strings pool. The actual
// pool interning happens at flush time; the cell retains the literal text
// so it can be re-interned if the sheet is cloned.
func (c Cell) SetSharedString(s string) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.kind = CellSharedString
	cd.v = s
	cd.formulaKind = FormulaNormal
	return nil
}

// SetInlineString stores a string inline (`<is><t>…</t></is>`), bypassing
// the shared-strings pool.
func (c Cell) SetInlineString(s string) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.kind = CellInlineString
	cd.v = s
	cd.formulaKind = FormulaNormal
	return nil
}

// SetDate stores a date as a Float serial and ensures the cell's style
// references a date-format xf, so the round trip is self-contained: a
// date cell survives a save/reopen as a Date without the caller
// separately wiring a style. If the cell already carries an xf with a
// date number format, that xf is left alone; otherwise it's switched to a
// shared, lazily-allocated default date xf (built-in short-date, id 14).
func (c Cell) SetDate(t XLDateTime) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.kind = CellNumber
	cd.v = ftoa(t.Serial())
	cd.formulaKind = FormulaNormal
	if c.sheet.wb != nil && c.sheet.wb.doc != nil {
		styles := c.sheet.wb.doc.styles
		if !styles.IsDateFormatIdx(cd.styleIdx) {
			cd.styleIdx = styles.dateFormatXf()
		}
	}
	return nil
}

// SetFormula sets a normal (non-shared) formula. Per spec.md's round-trip
// rule: the type attribute is cleared, any inline-string child is
// dropped, and <f> precedes <v> on emission.
func (c Cell) SetFormula(expr string) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.kind = CellFormula
	cd.formulaKind = FormulaNormal
	cd.v = expr
	cd.cached = ""
	return nil
}

// ClearFormula removes a formula, if any, reverting the cell to Empty.
func (c Cell) ClearFormula() error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	if cd.kind == CellFormula {
		*cd = cellData{styleIdx: cd.styleIdx}
	}
	return nil
}

// Int returns the cell's value coerced to an integer.
func (c Cell) Int() (int64, error) {
	cd, err := c.resolve()
	if err != nil {
		return 0, err
	}
	v, ferr := c.effectiveValue(cd)
	if ferr != nil {
		return 0, ferr
	}
	f, perr := strconv.ParseFloat(v, 64)
	if perr != nil {
		return 0, newErr(KindInvalidArgument, "cell %s is not numeric", c.Ref())
	}
	return int64(f), nil
}

// Float returns the cell's value coerced to a float64.
func (c Cell) Float() (float64, error) {
	cd, err := c.resolve()
	if err != nil {
		return 0, err
	}
	v, ferr := c.effectiveValue(cd)
	if ferr != nil {
		return 0, ferr
	}
	f, perr := strconv.ParseFloat(v, 64)
	if perr != nil {
		return 0, newErr(KindInvalidArgument, "cell %s is not numeric", c.Ref())
	}
	return f, nil
}

// Bool returns the cell's boolean value.
func (c Cell) Bool() (bool, error) {
	cd, err := c.resolve()
	if err != nil {
		return false, err
	}
	v, err := c.effectiveValue(cd)
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

// Str returns the cell's string value (shared, inline, or the raw text of
// any other kind).
func (c Cell) Str() (string, error) {
	cd, err := c.resolve()
	if err != nil {
		return "", err
	}
	return cd.v, nil
}

// Date interprets the cell's numeric value as an XLDateTime.
func (c Cell) Date() (XLDateTime, error) {
	f, err := c.Float()
	if err != nil {
		return XLDateTime{}, err
	}
	return SerialToXLDateTime(f), nil
}

// Formula returns the cell's effective formula text, resolving shared
// formulas by shifting the master's expression (spec.md §4.9). Returns
// FormulaError if the cell has no formula, the shared master is missing,
// or the formula is an unsupported array formula.
func (c Cell) Formula() (string, error) {
	cd, err := c.resolve()
	if err != nil {
		return "", err
	}
	if cd.kind != CellFormula {
		return "", newErr(KindFormulaError, "cell %s has no formula", c.Ref())
	}
	return c.sheet.resolvedFormula(cd, c.col, c.row)
}

// effectiveValue returns the text to coerce for Int/Float/Bool accessors:
// the cached <v> for a formula cell, or the raw value otherwise.
func (c Cell) effectiveValue(cd *cellData) (string, error) {
	if cd.kind == CellFormula {
		if cd.cached == "" {
			return "0", nil
		}
		return cd.cached, nil
	}
	return cd.v, nil
}

// StyleIndex returns the cell's cell-format (xf) index.
func (c Cell) StyleIndex() (int, error) {
	cd, err := c.resolve()
	if err != nil {
		return 0, err
	}
	return cd.styleIdx, nil
}

// SetStyleIndex assigns a cell-format (xf) index to the cell.
func (c Cell) SetStyleIndex(idx int) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.styleIdx = idx
	return nil
}
