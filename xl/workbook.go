package xl

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const sheetRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
const worksheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"

// Workbook owns the ordered sheet collection and the sheet-name/sheetId
// invariants of spec.md §4.9: names are validated and unique, sheetIds are
// allocated once and never reused even across deletes.
type Workbook struct {
	AppName string

	doc         *Document
	sheets      []*Sheet
	nameIndex   map[string]*Sheet
	lastSheetID int
}

func newWorkbook(doc *Document) *Workbook {
	return &Workbook{doc: doc, nameIndex: map[string]*Sheet{}}
}

// Sheets returns the workbook's sheets in tab order.
func (wb *Workbook) Sheets() []*Sheet {
	out := make([]*Sheet, len(wb.sheets))
	copy(out, wb.sheets)
	return out
}

// SheetByName returns the sheet with the given name, or nil if none.
func (wb *Workbook) SheetByName(name string) *Sheet {
	return wb.nameIndex[name]
}

// AddSheet appends a new, empty worksheet named name. Fails with
// InvalidArgument if the name is already in use or violates Excel's
// sheet-naming rules (1-31 characters, no leading/trailing single quote,
// none of `:\/?*[]`).
func (wb *Workbook) AddSheet(name string) (*Sheet, error) {
	if _, exists := wb.nameIndex[name]; exists {
		return nil, newErr(KindInvalidArgument, "duplicate sheet name %q", name)
	}
	if err := validateSheetName(name); err != nil {
		return nil, err
	}

	wb.lastSheetID++
	sh := newSheet(wb, wb.lastSheetID, name)
	wb.sheets = append(wb.sheets, sh)
	wb.nameIndex[name] = sh

	if wb.doc != nil {
		partPath := wb.doc.allocateSheetPartPath(sh)
		wb.doc.contentTypes.AddOverride(partPath, worksheetContentType)
		sh.relID = wb.doc.workbookRels.Add(sheetRelType, strings.TrimPrefix(partPath, "/xl/"), Internal)
	}

	return sh, nil
}

// DeleteSheet removes the named sheet along with its worksheet part,
// relationships, and dependent parts (comments, VML, drawings). Fails with
// InvalidArgument if the sheet does not exist or if removing it would leave
// the workbook with zero visible sheets.
func (wb *Workbook) DeleteSheet(name string) error {
	sh, exists := wb.nameIndex[name]
	if !exists {
		return newErr(KindInvalidArgument, "no sheet named %q", name)
	}

	visibleCount := 0
	for _, s := range wb.sheets {
		if s.Visibility == Visible {
			visibleCount++
		}
	}
	if sh.Visibility == Visible && visibleCount <= 1 {
		return newErr(KindInvalidArgument, "cannot delete the workbook's only visible sheet")
	}

	idx := -1
	for i, s := range wb.sheets {
		if s == sh {
			idx = i
			break
		}
	}
	if idx < 0 {
		return newErr(KindInternalError, "sheet %q not found in tab order", name)
	}
	wb.sheets = append(wb.sheets[:idx], wb.sheets[idx+1:]...)
	delete(wb.nameIndex, name)
	sh.generation++ // invalidate outstanding Cell/Row/Column handles

	if wb.doc != nil {
		partPath := wb.doc.sheetPartPath(sh)
		wb.doc.pkg.Remove(partPath)
		wb.doc.contentTypes.Remove(partPath)
		wb.doc.pkg.Remove(RelationshipsPath(partPath))
		delete(wb.doc.sheetRels, partPath)
		delete(wb.doc.comments, partPath)
		delete(wb.doc.vml, partPath)
		delete(wb.doc.drawings, partPath)

		if sh.relID != "" {
			wb.doc.workbookRels.Remove(sh.relID)
		} else {
			for _, r := range wb.doc.workbookRels.ByType(sheetRelType) {
				if r.Target == strings.TrimPrefix(partPath, "/xl/") {
					wb.doc.workbookRels.Remove(r.ID)
					break
				}
			}
		}
	}

	return nil
}

// CloneSheet deep-copies the named sheet's cell grid, formatting, merges,
// and hyperlinks into a new sheet named dstName, which must not already
// exist. Dependent parts (comments, drawings) are not cloned; per
// spec.md §9's open question this is resolved in favor of a lean clone
// that a caller can enrich afterward, rather than silently duplicating
// media.
func (wb *Workbook) CloneSheet(srcName, dstName string) (*Sheet, error) {
	src, exists := wb.nameIndex[srcName]
	if !exists {
		return nil, newErr(KindInvalidArgument, "no sheet named %q", srcName)
	}
	dst, err := wb.AddSheet(dstName)
	if err != nil {
		return nil, err
	}

	dst.Visibility = src.Visibility
	dst.Kind = src.Kind
	dst.TabColor = src.TabColor
	dst.Protection = src.Protection

	for rowNum, rd := range src.rows {
		nrd := newRowData()
		nrd.height = rd.height
		nrd.hidden = rd.hidden
		nrd.formatIdx = rd.formatIdx
		nrd.nextCol = rd.nextCol
		for col, cd := range rd.cells {
			cp := *cd
			nrd.cells[col] = &cp
		}
		dst.rows[rowNum] = nrd
	}
	for col, cd := range src.columns {
		cp := *cd
		dst.columns[col] = &cp
	}
	dst.merges = append([]Range(nil), src.merges...)
	for ref, hl := range src.hyperlinks {
		cp := *hl
		dst.hyperlinks[ref] = &cp
	}

	return dst, nil
}

// SetSheetIndex moves the named sheet to 1-based tab position i.
func (wb *Workbook) SetSheetIndex(name string, i int) error {
	sh, exists := wb.nameIndex[name]
	if !exists {
		return newErr(KindInvalidArgument, "no sheet named %q", name)
	}
	if i < 1 || i > len(wb.sheets) {
		return newErr(KindInvalidArgument, "sheet index %d out of range [1,%d]", i, len(wb.sheets))
	}
	idx := -1
	for j, s := range wb.sheets {
		if s == sh {
			idx = j
			break
		}
	}
	rest := append(wb.sheets[:idx:idx], wb.sheets[idx+1:]...)
	pos := i - 1
	if pos > len(rest) {
		pos = len(rest)
	}
	out := make([]*Sheet, 0, len(wb.sheets))
	out = append(out, rest[:pos]...)
	out = append(out, sh)
	out = append(out, rest[pos:]...)
	wb.sheets = out
	return nil
}

// sheetRelationships returns (creating if necessary) the Relationships
// graph for sh's worksheet part, used by Sheet.AddHyperlink and drawing/
// comment wiring.
func (wb *Workbook) sheetRelationships(s *Sheet) *Relationships {
	return wb.doc.sheetRelationships(s)
}

// validateSheetName enforces Excel's sheet-naming rules: 1-31 characters,
// no leading or trailing single quote, none of `:\/?*[]`.
func validateSheetName(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return newErr(KindInvalidArgument, "sheet name must not be empty")
	}
	if n > 31 {
		return newErr(KindInvalidArgument, "sheet name %q exceeds 31 characters", s)
	}
	if strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'") {
		return newErr(KindInvalidArgument, "sheet name %q cannot start or end with a single quote", s)
	}
	if strings.ContainsAny(s, ":\\/?*[]") {
		return newErr(KindInvalidArgument, "sheet name %q contains a forbidden character", s)
	}
	return nil
}

func (wb *Workbook) toXML() *xmlDoc {
	d := newXMLDoc("workbook", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	root := d.Root()
	root.CreateAttr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	sheetsEl := root.CreateElement("sheets")
	for _, sh := range wb.sheets {
		e := sheetsEl.CreateElement("sheet")
		e.CreateAttr("name", sh.Name)
		e.CreateAttr("sheetId", itoa(sh.ID))
		switch sh.Visibility {
		case Hidden:
			e.CreateAttr("state", "hidden")
		case VeryHidden:
			e.CreateAttr("state", "veryHidden")
		}
		if rid := wb.relIDForSheet(sh); rid != "" {
			e.CreateAttr("r:id", rid)
		}
	}

	return d
}

func (wb *Workbook) relIDForSheet(sh *Sheet) string {
	if sh.relID != "" {
		return sh.relID
	}
	if wb.doc == nil {
		return ""
	}
	partPath := wb.doc.sheetPartPath(sh)
	target := strings.TrimPrefix(partPath, "/xl/")
	for _, r := range wb.doc.workbookRels.ByType(sheetRelType) {
		if r.Target == target {
			return r.ID
		}
	}
	return ""
}

// parseWorkbook reconstructs a Workbook (and empty Sheet descriptors, to be
// filled in by the per-part sheet-data parse) from workbook.xml, resolving
// each <sheet> to its worksheet part via the workbook's relationships.
func parseWorkbook(doc *Document, data []byte) (*Workbook, error) {
	xd, err := loadXMLDoc(data)
	if err != nil {
		return nil, err
	}
	wb := newWorkbook(doc)
	root := xd.Root()
	if root == nil {
		return wb, nil
	}

	sheetsEl := root.SelectElement("sheets")
	if sheetsEl == nil {
		return wb, nil
	}

	for _, e := range sheetsEl.SelectElements("sheet") {
		name := e.SelectAttrValue("name", "")
		id, _ := atoi(e.SelectAttrValue("sheetId", "0"))
		relID := e.SelectAttrValue("r:id", "")
		sh := newSheet(wb, id, name)
		sh.relID = relID
		if relID != "" && doc != nil && doc.workbookRels != nil {
			if rel := doc.workbookRels.Get(relID); rel != nil {
				sh.partPath = "/xl/" + rel.Target
			}
		}
		if sh.partPath == "" {
			// malformed package, or no owning Document to resolve against:
			// fall back to this library's own naming convention.
			sh.partPath = fmt.Sprintf("%ssheet%d.xml", sheetDirPrefix, id)
		}
		switch e.SelectAttrValue("state", "visible") {
		case "hidden":
			sh.Visibility = Hidden
		case "veryHidden":
			sh.Visibility = VeryHidden
		default:
			sh.Visibility = Visible
		}
		wb.sheets = append(wb.sheets, sh)
		wb.nameIndex[name] = sh
		if id > wb.lastSheetID {
			wb.lastSheetID = id
		}
	}

	return wb, nil
}
