package xl

import (
	"github.com/beevik/etree"
)

const sheetNS = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// parseSheetXML decodes a worksheet part's `<worksheet>` body into sh's
// in-memory grid: `<cols>`, `<sheetData>` rows/cells (resolving shared and
// inline strings, and classifying `<f>` children into normal/shared/array),
// `<mergeCells>`, and `<hyperlinks>` (external targets are resolved against
// the sheet's relationships afterward, by the caller, once those are
// loaded).
func parseSheetXML(data []byte, sh *Sheet, ss *SharedStrings) error {
	xd, err := loadXMLDoc(data)
	if err != nil {
		return err
	}
	root := xd.Root()
	if root == nil {
		return nil
	}

	if sheetPr := root.SelectElement("sheetPr"); sheetPr != nil {
		if tab := sheetPr.SelectElement("tabColor"); tab != nil {
			sh.TabColor = tab.SelectAttrValue("rgb", "")
		}
	}
	if sheetViews := root.SelectElement("sheetViews"); sheetViews != nil {
		if sv := sheetViews.SelectElement("sheetView"); sv != nil {
			sh.Selected = sv.SelectAttrValue("tabSelected", "0") == "1"
		}
	}
	if sp := root.SelectElement("sheetProtection"); sp != nil {
		parseSheetProtection(sp, &sh.Protection)
	}

	if colsEl := root.SelectElement("cols"); colsEl != nil {
		for _, colEl := range colsEl.SelectElements("col") {
			minN, _ := atoi(colEl.SelectAttrValue("min", "0"))
			maxN, _ := atoi(colEl.SelectAttrValue("max", "0"))
			width, _ := atof(colEl.SelectAttrValue("width", "0"))
			hidden := colEl.SelectAttrValue("hidden", "0") == "1"
			xfIdx, _ := atoi(colEl.SelectAttrValue("style", "0"))
			for n := minN; n <= maxN && n > 0; n++ {
				sh.columns[n] = &columnData{width: width, hidden: hidden, formatIdx: xfIdx}
			}
		}
	}

	if sd := root.SelectElement("sheetData"); sd != nil {
		for _, rowEl := range sd.SelectElements("row") {
			rn, _ := atoi(rowEl.SelectAttrValue("r", "0"))
			if rn <= 0 {
				continue
			}
			rd := sh.ensureRow(rn)
			if h, err := atof(rowEl.SelectAttrValue("ht", "")); err == nil && rowEl.SelectAttrValue("customHeight", "0") == "1" {
				rd.height = h
			}
			rd.hidden = rowEl.SelectAttrValue("hidden", "0") == "1"
			if s, err := atoi(rowEl.SelectAttrValue("s", "")); err == nil && rowEl.SelectAttrValue("customFormat", "0") == "1" {
				rd.formatIdx = s
			}
			for _, cEl := range rowEl.SelectElements("c") {
				ref := cEl.SelectAttrValue("r", "")
				col, _, cerr := ParseCellRef(ref)
				if cerr != nil {
					continue
				}
				cd := parseCellElement(cEl, ss)
				rd.cells[col] = cd
				if col >= rd.nextCol {
					rd.nextCol = col + 1
				}
			}
		}
	}

	if mc := root.SelectElement("mergeCells"); mc != nil {
		for _, m := range mc.SelectElements("mergeCell") {
			if rng, err := ParseRange(m.SelectAttrValue("ref", "")); err == nil {
				sh.merges = append(sh.merges, rng)
			}
		}
	}

	if hls := root.SelectElement("hyperlinks"); hls != nil {
		for _, h := range hls.SelectElements("hyperlink") {
			ref := h.SelectAttrValue("ref", "")
			if ref == "" {
				continue
			}
			hl := &Hyperlink{
				Ref:      ref,
				RelID:    h.SelectAttrValue("r:id", ""),
				Location: h.SelectAttrValue("location", ""),
				Tooltip:  h.SelectAttrValue("tooltip", ""),
				Display:  h.SelectAttrValue("display", ""),
			}
			sh.hyperlinks[ref] = hl
		}
	}

	return nil
}

func parseSheetProtection(e *etree.Element, p *Protection) {
	p.SheetProtected = true
	p.PasswordHash = e.SelectAttrValue("password", "")
	p.ObjectsProtected = e.SelectAttrValue("objects", "0") == "1"
	p.ScenariosProtected = e.SelectAttrValue("scenarios", "0") == "1"
	p.FormatCellsAllowed = e.SelectAttrValue("formatCells", "1") == "0"
	p.FormatColumnsAllowed = e.SelectAttrValue("formatColumns", "1") == "0"
	p.FormatRowsAllowed = e.SelectAttrValue("formatRows", "1") == "0"
	p.InsertColumnsAllowed = e.SelectAttrValue("insertColumns", "1") == "0"
	p.InsertRowsAllowed = e.SelectAttrValue("insertRows", "1") == "0"
	p.DeleteColumnsAllowed = e.SelectAttrValue("deleteColumns", "1") == "0"
	p.DeleteRowsAllowed = e.SelectAttrValue("deleteRows", "1") == "0"
	p.SortAllowed = e.SelectAttrValue("sort", "1") == "0"
}

func parseCellElement(cEl *etree.Element, ss *SharedStrings) *cellData {
	cd := &cellData{}
	if s, err := atoi(cEl.SelectAttrValue("s", "")); err == nil {
		cd.styleIdx = s
	}
	t := cEl.SelectAttrValue("t", "n")

	if fEl := cEl.SelectElement("f"); fEl != nil {
		cd.kind = CellFormula
		switch fEl.SelectAttrValue("t", "normal") {
		case "shared":
			cd.formulaKind = FormulaShared
			if si, err := atoi(fEl.SelectAttrValue("si", "")); err == nil {
				cd.sharedIndex = si
			}
		case "array":
			cd.formulaKind = FormulaArray
		default:
			cd.formulaKind = FormulaNormal
		}
		cd.v = fEl.Text()
		if vEl := cEl.SelectElement("v"); vEl != nil {
			cd.cached = vEl.Text()
		}
		return cd
	}

	switch t {
	case "s":
		vEl := cEl.SelectElement("v")
		idx := 0
		if vEl != nil {
			idx, _ = atoi(vEl.Text())
		}
		cd.kind = CellSharedString
		if s, ok := ss.Get(idx); ok {
			cd.v = s
		}
	case "str":
		cd.kind = CellInlineString
		if vEl := cEl.SelectElement("v"); vEl != nil {
			cd.v = vEl.Text()
		}
	case "inlineStr":
		cd.kind = CellInlineString
		if isEl := cEl.SelectElement("is"); isEl != nil {
			cd.v = siText(isEl)
		}
	case "b":
		cd.kind = CellBool
		if vEl := cEl.SelectElement("v"); vEl != nil {
			cd.v = vEl.Text()
		}
	case "e":
		cd.kind = CellError
		if vEl := cEl.SelectElement("v"); vEl != nil {
			cd.v = vEl.Text()
		}
	default: // "n" or absent
		if vEl := cEl.SelectElement("v"); vEl != nil {
			cd.kind = CellNumber
			cd.v = vEl.Text()
		} else {
			cd.kind = CellEmpty
		}
	}
	return cd
}

// sheetToXML serializes sh's in-memory grid into the worksheet part body,
// interning shared strings into ss as it goes.
func sheetToXML(sh *Sheet, ss *SharedStrings) *xmlDoc {
	d := newXMLDoc("worksheet", sheetNS)
	root := d.Root()
	root.CreateAttr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	if sh.TabColor != "" {
		sheetPr := root.CreateElement("sheetPr")
		sheetPr.CreateElement("tabColor").CreateAttr("rgb", sh.TabColor)
	}

	dim := root.CreateElement("dimension")
	dim.CreateAttr("ref", sheetDimension(sh))

	sheetViews := root.CreateElement("sheetViews")
	sv := sheetViews.CreateElement("sheetView")
	if sh.Selected {
		sv.CreateAttr("tabSelected", "1")
	}
	sv.CreateAttr("workbookViewId", "0")

	if sh.Protection.SheetProtected {
		writeSheetProtection(root.CreateElement("sheetProtection"), &sh.Protection)
	}

	if len(sh.columns) > 0 {
		colsEl := root.CreateElement("cols")
		for _, n := range sortedIntKeys(sh.columns) {
			cd := sh.columns[n]
			e := colsEl.CreateElement("col")
			e.CreateAttr("min", itoa(n))
			e.CreateAttr("max", itoa(n))
			e.CreateAttr("width", ftoa(cd.width))
			if cd.hidden {
				e.CreateAttr("hidden", "1")
			}
			if cd.formatIdx != 0 {
				e.CreateAttr("style", itoa(cd.formatIdx))
				e.CreateAttr("customFormat", "1")
			}
			e.CreateAttr("customWidth", "1")
		}
	}

	sd := root.CreateElement("sheetData")
	for _, rn := range sh.sortedRowNumbers() {
		rd := sh.rows[rn]
		rowEl := sd.CreateElement("row")
		rowEl.CreateAttr("r", itoa(rn))
		if rd.height > 0 {
			rowEl.CreateAttr("ht", ftoa(rd.height))
			rowEl.CreateAttr("customHeight", "1")
		}
		if rd.hidden {
			rowEl.CreateAttr("hidden", "1")
		}
		if rd.formatIdx != 0 {
			rowEl.CreateAttr("s", itoa(rd.formatIdx))
			rowEl.CreateAttr("customFormat", "1")
		}
		for _, cn := range sortedIntKeys(rd.cells) {
			cd := rd.cells[cn]
			if cd.kind == CellEmpty && cd.styleIdx == 0 {
				continue
			}
			writeCellElement(rowEl, cn, rn, cd, ss)
		}
	}

	if len(sh.merges) > 0 {
		mc := root.CreateElement("mergeCells")
		mc.CreateAttr("count", itoa(len(sh.merges)))
		for _, rng := range sh.merges {
			mc.CreateElement("mergeCell").CreateAttr("ref", rng.String())
		}
	}

	if len(sh.hyperlinks) > 0 {
		hls := root.CreateElement("hyperlinks")
		for _, ref := range sortedHyperlinkRefs(sh.hyperlinks) {
			hl := sh.hyperlinks[ref]
			e := hls.CreateElement("hyperlink")
			e.CreateAttr("ref", hl.Ref)
			if hl.RelID != "" {
				e.CreateAttr("r:id", hl.RelID)
			}
			if hl.Location != "" {
				e.CreateAttr("location", hl.Location)
			}
			if hl.Tooltip != "" {
				e.CreateAttr("tooltip", hl.Tooltip)
			}
			if hl.Display != "" {
				e.CreateAttr("display", hl.Display)
			}
		}
	}

	return d
}

func writeSheetProtection(e *etree.Element, p *Protection) {
	if p.PasswordHash != "" {
		e.CreateAttr("password", p.PasswordHash)
	}
	boolAttrIfSet := func(name string, allowed bool) {
		if allowed {
			e.CreateAttr(name, "0")
		}
	}
	e.CreateAttr("sheet", "1")
	if p.ObjectsProtected {
		e.CreateAttr("objects", "1")
	}
	if p.ScenariosProtected {
		e.CreateAttr("scenarios", "1")
	}
	boolAttrIfSet("formatCells", p.FormatCellsAllowed)
	boolAttrIfSet("formatColumns", p.FormatColumnsAllowed)
	boolAttrIfSet("formatRows", p.FormatRowsAllowed)
	boolAttrIfSet("insertColumns", p.InsertColumnsAllowed)
	boolAttrIfSet("insertRows", p.InsertRowsAllowed)
	boolAttrIfSet("deleteColumns", p.DeleteColumnsAllowed)
	boolAttrIfSet("deleteRows", p.DeleteRowsAllowed)
	boolAttrIfSet("sort", p.SortAllowed)
}

func writeCellElement(rowEl *etree.Element, col, row int, cd *cellData, ss *SharedStrings) {
	e := rowEl.CreateElement("c")
	e.CreateAttr("r", CellRef(col, row))
	if cd.styleIdx != 0 {
		e.CreateAttr("s", itoa(cd.styleIdx))
	}

	switch cd.kind {
	case CellFormula:
		f := e.CreateElement("f")
		switch cd.formulaKind {
		case FormulaShared:
			f.CreateAttr("t", "shared")
			f.CreateAttr("si", itoa(cd.sharedIndex))
		case FormulaArray:
			f.CreateAttr("t", "array")
		}
		f.SetText(cd.v)
		if cd.cached != "" {
			e.CreateElement("v").SetText(cd.cached)
		}
	case CellBool:
		e.CreateAttr("t", "b")
		e.CreateElement("v").SetText(cd.v)
	case CellError:
		e.CreateAttr("t", "e")
		e.CreateElement("v").SetText(cd.v)
	case CellSharedString:
		idx := ss.GetOrCreateIndex(cd.v)
		e.CreateAttr("t", "s")
		e.CreateElement("v").SetText(itoa(idx))
	case CellInlineString:
		e.CreateAttr("t", "inlineStr")
		is := e.CreateElement("is")
		t := is.CreateElement("t")
		t.SetText(cd.v)
		if cd.v != "" && (cd.v[0] == ' ' || cd.v[len(cd.v)-1] == ' ') {
			t.CreateAttr("xml:space", "preserve")
		}
	case CellNumber:
		e.CreateElement("v").SetText(cd.v)
	case CellEmpty:
		// style-only cell: no <v>
	}
}

func sortedHyperlinkRefs(m map[string]*Hyperlink) []string {
	refs := make([]string, 0, len(m))
	for r := range m {
		refs = append(refs, r)
	}
	// stable deterministic order: sort by row then column via ParseCellRef
	sortRefsByCoord(refs)
	return refs
}

func sortRefsByCoord(refs []string) {
	less := func(i, j int) bool {
		ci, ri, _ := ParseCellRef(refs[i])
		cj, rj, _ := ParseCellRef(refs[j])
		if ri != rj {
			return ri < rj
		}
		return ci < cj
	}
	// simple insertion sort: hyperlink counts per sheet are small
	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			refs[j], refs[j-1] = refs[j-1], refs[j]
		}
	}
}

func sheetDimension(sh *Sheet) string {
	if len(sh.rows) == 0 {
		return "A1"
	}
	minCol, minRow := MaxColumn, MaxRow
	maxCol, maxRow := 1, 1
	for rn, rd := range sh.rows {
		if rn < minRow {
			minRow = rn
		}
		if rn > maxRow {
			maxRow = rn
		}
		for cn := range rd.cells {
			if cn < minCol {
				minCol = cn
			}
			if cn > maxCol {
				maxCol = cn
			}
		}
	}
	if minCol > maxCol {
		minCol, maxCol = 1, 1
	}
	return CellRef(minCol, minRow) + ":" + CellRef(maxCol, maxRow)
}

// resolveSheetHyperlinkTargets is a no-op placeholder hook called after a
// sheet's relationships are loaded; external hyperlink targets are already
// resolvable on demand via rels.Get(hl.RelID), so no eager rewrite is
// needed here. Kept as an explicit step to mirror the Protection/format
// resolution the reader performs for every other sheet-scoped part.
func resolveSheetHyperlinkTargets(sh *Sheet, rels *Relationships) {
	_ = sh
	_ = rels
}
