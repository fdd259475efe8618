package xl

import "sort"

// Visibility is a sheet's visibility state in the workbook's tab bar.
type Visibility string

const (
	Visible   Visibility = "visible"
	Hidden    Visibility = "hidden"
	VeryHidden Visibility = "veryHidden"
)

// SheetKind distinguishes an ordinary data sheet from a chart sheet; both
// are round-tripped structurally, but only Worksheet exposes the cell
// grid operations below.
type SheetKind int

const (
	KindWorksheet SheetKind = iota
	KindChartsheet
)

// Hyperlink is attached to a sheet by cell reference (spec.md §3). Either
// RelID (external, via a relationship) or Location (internal, a sheet/
// named-range reference) is set, never both.
type Hyperlink struct {
	Ref      string
	RelID    string // non-empty for an external hyperlink
	Location string // non-empty for an internal hyperlink
	Tooltip  string
	Display  string
}

// Protection holds the per-sheet protection flags of spec.md §4.9.
type Protection struct {
	SheetProtected        bool
	ObjectsProtected      bool
	ScenariosProtected    bool
	FormatCellsAllowed    bool
	FormatColumnsAllowed  bool
	FormatRowsAllowed     bool
	InsertColumnsAllowed  bool
	InsertRowsAllowed     bool
	DeleteColumnsAllowed  bool
	DeleteRowsAllowed     bool
	SortAllowed           bool
	PasswordHash          string // empty clears the attribute
}

// SetPassword stores the legacy 16-bit hash of password; an empty string
// clears it.
func (p *Protection) SetPassword(password string) {
	p.PasswordHash = hashLegacyPassword(password)
}

// Sheet is a worksheet's in-memory data model: the sparse cell grid, its
// column/row formatting, merges, hyperlinks, and protection state. Sheets
// are owned exclusively by the Workbook that created them; Cell/Row/
// Column handles borrow a *Sheet and are invalidated by its generation
// counter on structural mutation (spec.md §9's handle-invalidation
// pattern, adapted to Go: instead of indirecting through a package-wide
// registry by (sheet-id, coord), a handle holds the owning *Sheet
// directly and compares generations — Go's garbage collector removes the
// dangling-pointer hazard the original design worked around).
type Sheet struct {
	Name       string
	ID         int // stable sheetId, never reused
	Visibility Visibility
	Kind       SheetKind
	TabColor   string
	Selected   bool

	rows    map[int]*rowData
	columns map[int]*columnData
	merges  []Range

	hyperlinks map[string]*Hyperlink // keyed by ref

	Protection Protection

	generation int
	wb         *Workbook

	relID    string // this sheet's r:id in workbook.xml.rels
	partPath string // resolved worksheet part path; "" until allocated or parsed
}

func newSheet(wb *Workbook, id int, name string) *Sheet {
	return &Sheet{
		Name:       name,
		ID:         id,
		Visibility: Visible,
		Kind:       KindWorksheet,
		rows:       map[int]*rowData{},
		columns:    map[int]*columnData{},
		hyperlinks: map[string]*Hyperlink{},
		wb:         wb,
	}
}

func (s *Sheet) ensureRow(n int) *rowData {
	rd := s.rows[n]
	if rd == nil {
		rd = newRowData()
		s.rows[n] = rd
	}
	return rd
}

func (s *Sheet) sortedRowNumbers() []int {
	ns := make([]int, 0, len(s.rows))
	for n := range s.rows {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	return ns
}

func sortedIntKeys[V any](m map[int]V) []int {
	ns := make([]int, 0, len(m))
	for n := range m {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	return ns
}

// Cell returns a handle to the cell at ref (e.g. "B3").
func (s *Sheet) Cell(ref string) (Cell, error) {
	col, row, err := ParseCellRef(ref)
	if err != nil {
		return Cell{}, err
	}
	return Cell{sheet: s, col: col, row: row, gen: s.generation}, nil
}

// CellAt returns a handle to the cell at (col, row), 1-based.
func (s *Sheet) CellAt(col, row int) Cell {
	return Cell{sheet: s, col: col, row: row, gen: s.generation}
}

// Row returns a handle to row n (1-based).
func (s *Sheet) Row(n int) Row {
	return Row{sheet: s, row: n, gen: s.generation}
}

// Column returns a handle to column n (1-based).
func (s *Sheet) Column(n int) Column {
	return Column{sheet: s, col: n, gen: s.generation}
}

// ColumnNamed returns a handle to the column named by letters (e.g. "AA").
func (s *Sheet) ColumnNamed(letters string) (Column, error) {
	n, err := ColumnNumber(letters)
	if err != nil {
		return Column{}, err
	}
	return s.Column(n), nil
}

// Rows returns a finite, restartable sequence of row handles over
// occupied rows in ascending row order (spec.md §4.9/§9: "present as a
// finite, restartable iterator... never materialize the full sparse
// space" — here the sparse space already IS the materialized grid, so
// this walks its keys rather than a lazy decoder, but yields in the same
// ascending, restartable contract).
func (s *Sheet) Rows() []Row {
	nums := s.sortedRowNumbers()
	out := make([]Row, len(nums))
	for i, n := range nums {
		out[i] = Row{sheet: s, row: n, gen: s.generation}
	}
	return out
}

// ReserveRows ensures the first n rows exist (even if empty), for bulk
// sequential writes.
func (s *Sheet) ReserveRows(n int) {
	for i := 1; i <= n; i++ {
		s.ensureRow(i)
	}
}

// SetRowFormat sets the row-level default xf index for row n. Per
// spec.md §4.9, this retroactively applies to existing cells in the row
// that lack their own format (styleIdx == 0).
func (s *Sheet) SetRowFormat(n, xfIdx int) {
	rd := s.ensureRow(n)
	rd.formatIdx = xfIdx
	for _, cd := range rd.cells {
		if cd.styleIdx == 0 {
			cd.styleIdx = xfIdx
		}
	}
}

// RowFormat returns the row-level default xf index for row n.
func (s *Sheet) RowFormat(n int) int {
	if rd := s.rows[n]; rd != nil {
		return rd.formatIdx
	}
	return 0
}

// SetColumnFormat sets the column-level default xf index for column n,
// retroactively applied to existing cells in that column lacking their
// own format.
func (s *Sheet) SetColumnFormat(n, xfIdx int) {
	cd := s.columns[n]
	if cd == nil {
		cd = &columnData{}
		s.columns[n] = cd
	}
	cd.formatIdx = xfIdx
	for _, rd := range s.rows {
		if cell := rd.cells[n]; cell != nil && cell.styleIdx == 0 {
			cell.styleIdx = xfIdx
		}
	}
}

// ColumnFormat returns the column-level default xf index for column n.
func (s *Sheet) ColumnFormat(n int) int {
	if cd := s.columns[n]; cd != nil {
		return cd.formatIdx
	}
	return 0
}

// AddHyperlink creates an external hyperlink on ref, backed by a
// relationship of type Hyperlink/mode External storing `r:id`.
func (s *Sheet) AddHyperlink(ref, target, tooltip string) error {
	if _, _, err := ParseCellRef(ref); err != nil {
		return err
	}
	rel := s.wb.sheetRelationships(s)
	rid := rel.Add(hyperlinkRelType, target, External)
	s.hyperlinks[ref] = &Hyperlink{Ref: ref, RelID: rid, Tooltip: tooltip}
	return nil
}

// AddInternalHyperlink creates an internal hyperlink on ref pointing at
// location (e.g. "Sheet2!A1"), stored directly without a relationship.
func (s *Sheet) AddInternalHyperlink(ref, location, tooltip string) error {
	if _, _, err := ParseCellRef(ref); err != nil {
		return err
	}
	s.hyperlinks[ref] = &Hyperlink{Ref: ref, Location: location, Tooltip: tooltip}
	return nil
}

// Hyperlinks returns the sheet's hyperlinks, keyed by cell reference.
func (s *Sheet) Hyperlinks() map[string]*Hyperlink {
	out := make(map[string]*Hyperlink, len(s.hyperlinks))
	for k, v := range s.hyperlinks {
		cp := *v
		out[k] = &cp
	}
	return out
}

const hyperlinkRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
