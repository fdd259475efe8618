package xl

import "github.com/beevik/etree"

const stylesPartPath = "/xl/styles.xml"
const stylesContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
const stylesRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"

// NumberFormat is a custom number-format record (built-in ids 0-163 are
// reserved and never stored here).
type NumberFormat struct {
	ID         int
	FormatCode string
}

// FontRecord is one entry of the Fonts table.
type FontRecord struct {
	Size          float64
	Name          string
	Bold          bool
	Italic        bool
	Underline     UnderlineType
	Strikethrough bool
	Color         string // ARGB hex, e.g. "FFFF0000"; "" = automatic
}

func (f FontRecord) isDefault() bool {
	return f == FontRecord{Name: "Calibri", Size: 11}
}

// FillRecord is one entry of the Fills table (only solid/pattern fills
// are modeled; gradient fills round-trip as an opaque pattern "none").
type FillRecord struct {
	PatternType string // "none", "solid", "gray125", ...
	FgColor     string
	BgColor     string
}

// BorderSide is one edge of a BorderRecord.
type BorderSide struct {
	Style string // "thin", "medium", "dashed", ...
	Color string
}

// BorderRecord is one entry of the Borders table.
type BorderRecord struct {
	Left, Right, Top, Bottom, Diagonal BorderSide
}

// CellFormat (xf) is one entry of the CellXfs table: the combination of
// number format, font, fill, border, and alignment applied to a cell.
type CellFormat struct {
	NumFmtID     int
	FontID       int
	FillID       int
	BorderID     int
	Alignment    Alignment
	ApplyFont    bool
	ApplyFill    bool
	ApplyBorder  bool
	ApplyAlign   bool
	ApplyNumFmt  bool
}

// StylesBook holds the five independent indexed tables of spec.md §4.7.
// Index 0 of every table is the default record and is always present;
// there is no automatic dedup and no deletion, since cell format indices
// must stay stable once referenced.
type StylesBook struct {
	numFmts      []NumberFormat // custom formats only, ids >= 164 by convention
	fonts        []FontRecord
	fills        []FillRecord
	borders      []BorderRecord
	cellXfs      []CellFormat
	dirty        bool

	dateXf int // cached xf index for Cell.SetDate; 0 means not yet resolved
}

func newStylesBook() *StylesBook {
	sb := &StylesBook{}
	sb.fonts = append(sb.fonts, FontRecord{Name: "Calibri", Size: 11})
	sb.fills = append(sb.fills, FillRecord{PatternType: "none"})
	sb.fills = append(sb.fills, FillRecord{PatternType: "gray125"})
	sb.borders = append(sb.borders, BorderRecord{})
	sb.cellXfs = append(sb.cellXfs, CellFormat{})
	sb.dirty = true
	return sb
}

// CreateNumberFormat appends a custom number format and returns its id.
func (sb *StylesBook) CreateNumberFormat(code string) int {
	id := 164
	for _, f := range sb.numFmts {
		if f.ID >= id {
			id = f.ID + 1
		}
	}
	sb.numFmts = append(sb.numFmts, NumberFormat{ID: id, FormatCode: code})
	sb.dirty = true
	return id
}

// FormatCodeOf returns the format code for a number-format id, consulting
// the custom table for ids >= 164 and the built-in ECMA-376 table
// otherwise.
func (sb *StylesBook) FormatCodeOf(id int) string {
	if id < 164 {
		return builtinNumFmtCode(id)
	}
	for _, f := range sb.numFmts {
		if f.ID == id {
			return f.FormatCode
		}
	}
	return ""
}

// CreateFont appends a font record and returns its index.
func (sb *StylesBook) CreateFont(f FontRecord) int {
	sb.fonts = append(sb.fonts, f)
	sb.dirty = true
	return len(sb.fonts) - 1
}

// Font returns the font record at idx.
func (sb *StylesBook) Font(idx int) FontRecord {
	if idx < 0 || idx >= len(sb.fonts) {
		return FontRecord{}
	}
	return sb.fonts[idx]
}

// CreateFill appends a fill record and returns its index.
func (sb *StylesBook) CreateFill(f FillRecord) int {
	sb.fills = append(sb.fills, f)
	sb.dirty = true
	return len(sb.fills) - 1
}

// CreateBorder appends a border record and returns its index.
func (sb *StylesBook) CreateBorder(b BorderRecord) int {
	sb.borders = append(sb.borders, b)
	sb.dirty = true
	return len(sb.borders) - 1
}

// CreateCellFormat appends an xf record and returns its index.
func (sb *StylesBook) CreateCellFormat(xf CellFormat) int {
	sb.cellXfs = append(sb.cellXfs, xf)
	sb.dirty = true
	return len(sb.cellXfs) - 1
}

// CellFormatAt returns the xf record at idx, or the zero-value default
// (index 0) if idx is out of range.
func (sb *StylesBook) CellFormatAt(idx int) CellFormat {
	if idx < 0 || idx >= len(sb.cellXfs) {
		return sb.cellXfs[0]
	}
	return sb.cellXfs[idx]
}

// IsDateFormatIdx reports whether the xf at idx has a date number format.
func (sb *StylesBook) IsDateFormatIdx(idx int) bool {
	xf := sb.CellFormatAt(idx)
	return IsDateFormat(xf.NumFmtID, sb.FormatCodeOf(xf.NumFmtID))
}

// dateFormatXf returns a cell-format index using the built-in short-date
// code (id 14), reusing a plain one already present in cellXfs (e.g. from
// a reopened package) or allocating one on first use. Cell.SetDate calls
// this so a date survives a save/reopen without the caller having to wire
// a date-format xf by hand.
func (sb *StylesBook) dateFormatXf() int {
	if sb.dateXf != 0 {
		return sb.dateXf
	}
	for i, xf := range sb.cellXfs {
		if xf.NumFmtID == 14 && xf.FontID == 0 && xf.FillID == 0 && xf.BorderID == 0 {
			sb.dateXf = i
			return i
		}
	}
	sb.dateXf = sb.CreateCellFormat(CellFormat{NumFmtID: 14, ApplyNumFmt: true})
	return sb.dateXf
}

func parseStylesBook(data []byte) (*StylesBook, error) {
	doc, err := loadXMLDoc(data)
	if err != nil {
		return nil, err
	}
	sb := &StylesBook{}
	root := doc.Root()
	if root == nil {
		return newStylesBook(), nil
	}
	if nf := root.SelectElement("numFmts"); nf != nil {
		for _, e := range nf.SelectElements("numFmt") {
			id, _ := atoi(e.SelectAttrValue("numFmtId", "0"))
			sb.numFmts = append(sb.numFmts, NumberFormat{ID: id, FormatCode: e.SelectAttrValue("formatCode", "")})
		}
	}
	if fs := root.SelectElement("fonts"); fs != nil {
		for _, e := range fs.SelectElements("font") {
			sb.fonts = append(sb.fonts, parseFontElement(e))
		}
	}
	if fl := root.SelectElement("fills"); fl != nil {
		for _, e := range fl.SelectElements("fill") {
			sb.fills = append(sb.fills, parseFillElement(e))
		}
	}
	if bd := root.SelectElement("borders"); bd != nil {
		for _, e := range bd.SelectElements("border") {
			sb.borders = append(sb.borders, parseBorderElement(e))
		}
	}
	if xfs := root.SelectElement("cellXfs"); xfs != nil {
		for _, e := range xfs.SelectElements("xf") {
			sb.cellXfs = append(sb.cellXfs, parseXfElement(e))
		}
	}
	if len(sb.fonts) == 0 {
		sb.fonts = append(sb.fonts, FontRecord{Name: "Calibri", Size: 11})
	}
	if len(sb.fills) == 0 {
		sb.fills = append(sb.fills, FillRecord{PatternType: "none"})
	}
	if len(sb.borders) == 0 {
		sb.borders = append(sb.borders, BorderRecord{})
	}
	if len(sb.cellXfs) == 0 {
		sb.cellXfs = append(sb.cellXfs, CellFormat{})
	}
	return sb, nil
}

func parseFontElement(e *etree.Element) FontRecord {
	var f FontRecord
	if sz := e.SelectElement("sz"); sz != nil {
		f.Size, _ = atof(sz.SelectAttrValue("val", "11"))
	}
	if nm := e.SelectElement("name"); nm != nil {
		f.Name = nm.SelectAttrValue("val", "")
	}
	f.Bold = e.SelectElement("b") != nil
	f.Italic = e.SelectElement("i") != nil
	f.Strikethrough = e.SelectElement("strike") != nil
	if u := e.SelectElement("u"); u != nil {
		if v := u.SelectAttrValue("val", ""); v != "" {
			f.Underline = UnderlineType(v)
		} else {
			f.Underline = UnderlineSingle
		}
	}
	if c := e.SelectElement("color"); c != nil {
		f.Color = c.SelectAttrValue("rgb", "")
	}
	return f
}

func parseFillElement(e *etree.Element) FillRecord {
	var f FillRecord
	if pf := e.SelectElement("patternFill"); pf != nil {
		f.PatternType = pf.SelectAttrValue("patternType", "none")
		if fg := pf.SelectElement("fgColor"); fg != nil {
			f.FgColor = fg.SelectAttrValue("rgb", "")
		}
		if bg := pf.SelectElement("bgColor"); bg != nil {
			f.BgColor = bg.SelectAttrValue("rgb", "")
		}
	}
	return f
}

func parseBorderSide(e *etree.Element, tag string) BorderSide {
	var s BorderSide
	if side := e.SelectElement(tag); side != nil {
		s.Style = side.SelectAttrValue("style", "")
		if c := side.SelectElement("color"); c != nil {
			s.Color = c.SelectAttrValue("rgb", "")
		}
	}
	return s
}

func parseBorderElement(e *etree.Element) BorderRecord {
	return BorderRecord{
		Left:     parseBorderSide(e, "left"),
		Right:    parseBorderSide(e, "right"),
		Top:      parseBorderSide(e, "top"),
		Bottom:   parseBorderSide(e, "bottom"),
		Diagonal: parseBorderSide(e, "diagonal"),
	}
}

func parseXfElement(e *etree.Element) CellFormat {
	var xf CellFormat
	xf.NumFmtID, _ = atoi(e.SelectAttrValue("numFmtId", "0"))
	xf.FontID, _ = atoi(e.SelectAttrValue("fontId", "0"))
	xf.FillID, _ = atoi(e.SelectAttrValue("fillId", "0"))
	xf.BorderID, _ = atoi(e.SelectAttrValue("borderId", "0"))
	xf.ApplyFont = e.SelectAttrValue("applyFont", "0") == "1"
	xf.ApplyFill = e.SelectAttrValue("applyFill", "0") == "1"
	xf.ApplyBorder = e.SelectAttrValue("applyBorder", "0") == "1"
	xf.ApplyAlign = e.SelectAttrValue("applyAlignment", "0") == "1"
	xf.ApplyNumFmt = e.SelectAttrValue("applyNumberFormat", "0") == "1"
	if al := e.SelectElement("alignment"); al != nil {
		xf.Alignment.Horizontal = HorizontalAlignment(al.SelectAttrValue("horizontal", ""))
		xf.Alignment.Vertical = VerticalAlignment(al.SelectAttrValue("vertical", ""))
	}
	return xf
}

func (sb *StylesBook) toXML() *xmlDoc {
	d := newXMLDoc("styleSheet", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	root := d.Root()

	if len(sb.numFmts) > 0 {
		nf := root.CreateElement("numFmts")
		nf.CreateAttr("count", itoa(len(sb.numFmts)))
		for _, f := range sb.numFmts {
			e := nf.CreateElement("numFmt")
			e.CreateAttr("numFmtId", itoa(f.ID))
			e.CreateAttr("formatCode", f.FormatCode)
		}
	}

	fonts := root.CreateElement("fonts")
	fonts.CreateAttr("count", itoa(len(sb.fonts)))
	for _, f := range sb.fonts {
		e := fonts.CreateElement("font")
		if f.Bold {
			e.CreateElement("b")
		}
		if f.Italic {
			e.CreateElement("i")
		}
		if f.Strikethrough {
			e.CreateElement("strike")
		}
		if f.Underline != UnderlineNone {
			u := e.CreateElement("u")
			if f.Underline != UnderlineSingle {
				u.CreateAttr("val", string(f.Underline))
			}
		}
		sz := e.CreateElement("sz")
		size := f.Size
		if size == 0 {
			size = 11
		}
		sz.CreateAttr("val", ftoa(size))
		if f.Color != "" {
			c := e.CreateElement("color")
			c.CreateAttr("rgb", f.Color)
		}
		name := e.CreateElement("name")
		n := f.Name
		if n == "" {
			n = "Calibri"
		}
		name.CreateAttr("val", n)
	}

	fills := root.CreateElement("fills")
	fills.CreateAttr("count", itoa(len(sb.fills)))
	for _, f := range sb.fills {
		e := fills.CreateElement("fill")
		pf := e.CreateElement("patternFill")
		pt := f.PatternType
		if pt == "" {
			pt = "none"
		}
		pf.CreateAttr("patternType", pt)
		if f.FgColor != "" {
			fg := pf.CreateElement("fgColor")
			fg.CreateAttr("rgb", f.FgColor)
		}
		if f.BgColor != "" {
			bg := pf.CreateElement("bgColor")
			bg.CreateAttr("rgb", f.BgColor)
		}
	}

	borders := root.CreateElement("borders")
	borders.CreateAttr("count", itoa(len(sb.borders)))
	for _, b := range sb.borders {
		e := borders.CreateElement("border")
		writeBorderSide(e, "left", b.Left)
		writeBorderSide(e, "right", b.Right)
		writeBorderSide(e, "top", b.Top)
		writeBorderSide(e, "bottom", b.Bottom)
		writeBorderSide(e, "diagonal", b.Diagonal)
	}

	cellStyleXfs := root.CreateElement("cellStyleXfs")
	cellStyleXfs.CreateAttr("count", "1")
	def := cellStyleXfs.CreateElement("xf")
	def.CreateAttr("numFmtId", "0")
	def.CreateAttr("fontId", "0")
	def.CreateAttr("fillId", "0")
	def.CreateAttr("borderId", "0")

	xfs := root.CreateElement("cellXfs")
	xfs.CreateAttr("count", itoa(len(sb.cellXfs)))
	for _, xf := range sb.cellXfs {
		e := xfs.CreateElement("xf")
		e.CreateAttr("numFmtId", itoa(xf.NumFmtID))
		e.CreateAttr("fontId", itoa(xf.FontID))
		e.CreateAttr("fillId", itoa(xf.FillID))
		e.CreateAttr("borderId", itoa(xf.BorderID))
		e.CreateAttr("xfId", "0")
		if xf.ApplyFont {
			e.CreateAttr("applyFont", "1")
		}
		if xf.ApplyFill {
			e.CreateAttr("applyFill", "1")
		}
		if xf.ApplyBorder {
			e.CreateAttr("applyBorder", "1")
		}
		if xf.ApplyNumFmt {
			e.CreateAttr("applyNumberFormat", "1")
		}
		if !xf.Alignment.Empty() {
			e.CreateAttr("applyAlignment", "1")
			al := e.CreateElement("alignment")
			if xf.Alignment.Horizontal != "" {
				al.CreateAttr("horizontal", string(xf.Alignment.Horizontal))
			}
			if xf.Alignment.Vertical != "" {
				al.CreateAttr("vertical", string(xf.Alignment.Vertical))
			}
		}
	}

	return d
}

func writeBorderSide(parent *etree.Element, tag string, s BorderSide) {
	e := parent.CreateElement(tag)
	if s.Style != "" {
		e.CreateAttr("style", s.Style)
		if s.Color != "" {
			c := e.CreateElement("color")
			c.CreateAttr("rgb", s.Color)
		}
	}
}

// builtinNumFmtCode returns the ECMA-376 reserved format code for ids
// 0-163 that this library is likely to encounter; ids without a commonly
// used code return "General".
func builtinNumFmtCode(id int) string {
	switch id {
	case 0:
		return "General"
	case 1:
		return "0"
	case 2:
		return "0.00"
	case 3:
		return "#,##0"
	case 4:
		return "#,##0.00"
	case 9:
		return "0%"
	case 10:
		return "0.00%"
	case 14:
		return "mm-dd-yy"
	case 15:
		return "d-mmm-yy"
	case 16:
		return "d-mmm"
	case 17:
		return "mmm-yy"
	case 20:
		return "h:mm"
	case 21:
		return "h:mm:ss"
	case 22:
		return "m/d/yy h:mm"
	case 45:
		return "mm:ss"
	case 46:
		return "[h]:mm:ss"
	case 47:
		return "mmss.0"
	default:
		return "General"
	}
}
