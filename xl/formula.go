package xl

import (
	"regexp"
	"strconv"
	"strings"
)

// a1RefPattern matches an A1-style reference with optional absolute
// markers: optional $, column letters, optional $, row digits. Grounded
// on OpenXLSX's XLFormula.cpp shiftFormula, which uses the std::regex
// R"(\$?[A-Z]+\$?[0-9]+)"; this pattern also accepts lowercase letters.
var a1RefPattern = regexp.MustCompile(`\$?[A-Za-z]+\$?[0-9]+`)

// shiftFormula rewrites every relative A1 reference in formula by
// (rowOffset, colOffset); absolute (`$`-pinned) axes are left untouched.
// A no-op offset returns the formula unchanged.
func shiftFormula(formula string, rowOffset, colOffset int) string {
	if rowOffset == 0 && colOffset == 0 {
		return formula
	}
	return a1RefPattern.ReplaceAllStringFunc(formula, func(ref string) string {
		return shiftReference(ref, rowOffset, colOffset)
	})
}

func shiftReference(ref string, rowOffset, colOffset int) string {
	i := 0
	colAbsolute := false
	if i < len(ref) && ref[i] == '$' {
		colAbsolute = true
		i++
	}
	start := i
	for i < len(ref) && isAsciiLetter(ref[i]) {
		i++
	}
	colPart := ref[start:i]

	rowAbsolute := false
	if i < len(ref) && ref[i] == '$' {
		rowAbsolute = true
		i++
	}
	rowPart := ref[i:]

	var sb strings.Builder
	if colAbsolute {
		sb.WriteByte('$')
	}
	if colAbsolute || colOffset == 0 {
		sb.WriteString(colPart)
	} else {
		colNum, err := ColumnNumber(colPart)
		if err != nil {
			return ref
		}
		shifted, serr := ColumnName(colNum + colOffset)
		if serr != nil {
			return ref
		}
		sb.WriteString(shifted)
	}

	if rowAbsolute {
		sb.WriteByte('$')
	}
	if rowAbsolute || rowOffset == 0 {
		sb.WriteString(rowPart)
	} else {
		rowNum, err := strconv.Atoi(rowPart)
		if err != nil {
			return ref
		}
		sb.WriteString(strconv.Itoa(rowNum + rowOffset))
	}

	return sb.String()
}

// FormulaKind distinguishes the three `<f t="...">` shapes a cell formula
// can take in the SpreadsheetML grammar.
type FormulaKind int

const (
	FormulaNormal FormulaKind = iota
	FormulaShared
	FormulaArray
)

// sharedFormulaMaster locates the master cell of a shared-formula group
// (the first cell in the sheet, in row-major order, whose `<f t="shared"
// si=K>` carries the formula text) and returns its expression and
// coordinate. Mirrors XLFormulaProxy::getFormula()'s slave-cell scan.
func (sh *Sheet) sharedFormulaMaster(si int) (expr string, masterCol, masterRow int, found bool) {
	for _, rn := range sh.sortedRowNumbers() {
		row := sh.rows[rn]
		for _, cn := range sortedIntKeys(row.cells) {
			c := row.cells[cn]
			if c.formulaKind == FormulaShared && c.sharedIndex == si && c.v != "" {
				return c.v, cn, rn, true
			}
		}
	}
	return "", 0, 0, false
}

// resolvedFormula returns the effective formula text for a cell: its own
// text if present, or (for a shared-formula slave with empty text) the
// master's expression shifted to this cell's coordinate. Array formulas
// are rejected with FormulaError, matching the spec's explicit non-goal.
func (sh *Sheet) resolvedFormula(c *cellData, col, row int) (string, error) {
	switch c.formulaKind {
	case FormulaArray:
		return "", newErr(KindFormulaError, "array formulas not supported")
	case FormulaShared:
		if c.v != "" {
			return c.v, nil
		}
		expr, mc, mr, found := sh.sharedFormulaMaster(c.sharedIndex)
		if !found {
			return "", newErr(KindFormulaError, "no master formula found for shared index %d", c.sharedIndex)
		}
		return shiftFormula(expr, row-mr, col-mc), nil
	default:
		return c.v, nil
	}
}
