package xl

import (
	"fmt"
	"path"
	"strings"
)

const (
	workbookPartPath  = "/xl/workbook.xml"
	workbookRelsPath  = "/xl/_rels/workbook.xml.rels"
	rootRelsPath      = "/_rels/.rels"
	workbookRelType   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	worksheetRelType  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	sheetDirPrefix    = "/xl/worksheets/"
)

// Document is the top-level handle to an open or newly created workbook
// package: the zip entry table, the part registry's parsed state
// (content types, relationships, workbook, styles, shared strings,
// per-sheet dependent parts), and the save-time flush orchestration.
type Document struct {
	pkg           *Package
	contentTypes  *ContentTypes
	rootRels      *Relationships
	workbookRels  *Relationships
	sheetRels     map[string]*Relationships // keyed by worksheet part path
	styles        *StylesBook
	sharedStrings *SharedStrings
	workbook      *Workbook

	comments map[string]*commentsPart // keyed by sheet part path
	vml      map[string]*vmlPart      // keyed by sheet part path
	drawings map[string]*drawingPart  // keyed by sheet part path
	media    []*mediaItem
	mediaIdx map[string]int // blob-hash hex -> index into media

	tables      []*tablePart
	sheetTables map[string][]*tablePart // keyed by sheet part path

	appName string
}

// Create returns a new, empty Document with a single default sheet,
// matching the minimum-parts shape of spec.md §6.
func Create() *Document {
	d := &Document{
		pkg:           NewPackage(),
		contentTypes:  newContentTypes(),
		rootRels:      newRelationships(),
		workbookRels:  newRelationships(),
		sheetRels:     map[string]*Relationships{},
		styles:        newStylesBook(),
		sharedStrings: newSharedStrings(),
		comments:      map[string]*commentsPart{},
		vml:           map[string]*vmlPart{},
		drawings:      map[string]*drawingPart{},
		mediaIdx:      map[string]int{},
		sheetTables:   map[string][]*tablePart{},
	}
	d.workbook = newWorkbook(d)
	if _, err := d.workbook.AddSheet("Sheet1"); err != nil {
		panic(&Error{Kind: KindInternalError, Message: "failed to create default sheet"})
	}
	return d
}

// Open reads an existing .xlsx package from path and parses the parts the
// library owns, preserving everything else untouched in the package's
// entry table.
func Open(path string) (*Document, error) {
	pkg, err := OpenPackage(path)
	if err != nil {
		return nil, err
	}
	return openFromPackage(pkg)
}

func openFromPackage(pkg *Package) (*Document, error) {
	d := &Document{
		pkg:       pkg,
		sheetRels:   map[string]*Relationships{},
		comments:    map[string]*commentsPart{},
		vml:         map[string]*vmlPart{},
		drawings:    map[string]*drawingPart{},
		mediaIdx:    map[string]int{},
		sheetTables: map[string][]*tablePart{},
	}

	ctBytes, ok := pkg.Get(contentTypesPartName)
	if !ok {
		return nil, newErr(KindInvalidFormat, "missing %s", contentTypesPartName)
	}
	ct, err := parseContentTypes(ctBytes)
	if err != nil {
		return nil, err
	}
	d.contentTypes = ct

	rootRelBytes, ok := pkg.Get(rootRelsPath)
	if !ok {
		return nil, newErr(KindInvalidFormat, "missing %s", rootRelsPath)
	}
	rootRels, err := parseRelationships(rootRelBytes)
	if err != nil {
		return nil, err
	}
	d.rootRels = rootRels

	wbBytes, ok := pkg.Get(workbookPartPath)
	if !ok {
		return nil, newErr(KindInvalidFormat, "missing %s", workbookPartPath)
	}

	if wbRelBytes, ok := pkg.Get(workbookRelsPath); ok {
		d.workbookRels, err = parseRelationships(wbRelBytes)
		if err != nil {
			return nil, err
		}
	} else {
		d.workbookRels = newRelationships()
	}

	if ssBytes, ok := pkg.Get(sharedStringsPartName); ok {
		d.sharedStrings, err = parseSharedStrings(ssBytes)
		if err != nil {
			return nil, err
		}
	} else {
		d.sharedStrings = newSharedStrings()
	}

	if stBytes, ok := pkg.Get(stylesPartPath); ok {
		d.styles, err = parseStylesBook(stBytes)
		if err != nil {
			return nil, err
		}
	} else {
		d.styles = newStylesBook()
	}

	wb, err := parseWorkbook(d, wbBytes)
	if err != nil {
		return nil, err
	}
	d.workbook = wb

	for _, sh := range wb.sheets {
		partPath := d.sheetPartPath(sh)
		raw, ok := pkg.Get(partPath)
		if !ok {
			return nil, newErr(KindInvalidFormat, "missing worksheet part %s for sheet %q", partPath, sh.Name)
		}
		if err := parseSheetXML(raw, sh, d.sharedStrings); err != nil {
			return nil, err
		}
		if relBytes, ok := pkg.Get(RelationshipsPath(partPath)); ok {
			rels, err := parseRelationships(relBytes)
			if err != nil {
				return nil, err
			}
			d.sheetRels[partPath] = rels
			resolveSheetHyperlinkTargets(sh, rels)
		}
	}

	return d, nil
}

// Workbook returns the document's workbook.
func (d *Document) Workbook() *Workbook { return d.workbook }

// Styles returns the document's styles book.
func (d *Document) Styles() *StylesBook { return d.styles }

// SharedStrings returns the document's shared-strings pool.
func (d *Document) SharedStrings() *SharedStrings { return d.sharedStrings }

// ContentTypes returns the document's content-type catalog.
func (d *Document) ContentTypes() *ContentTypes { return d.contentTypes }

// sheetPartPath returns the worksheet part path for s: the path resolved
// from its r:id relationship target when the sheet was opened from a
// package, or the path allocated for it when this library created it.
// Falls back to the sheetId-derived convention only if neither is set.
func (d *Document) sheetPartPath(s *Sheet) string {
	if s.partPath != "" {
		return s.partPath
	}
	return fmt.Sprintf("%ssheet%d.xml", sheetDirPrefix, s.ID)
}

// allocateSheetPartPath assigns s its part path under this library's own
// sheetId-derived naming convention, used when authoring a new sheet that
// has no existing r:id to resolve.
func (d *Document) allocateSheetPartPath(s *Sheet) string {
	s.partPath = fmt.Sprintf("%ssheet%d.xml", sheetDirPrefix, s.ID)
	return s.partPath
}

func (d *Document) sheetRelationships(s *Sheet) *Relationships {
	path := d.sheetPartPath(s)
	rels := d.sheetRels[path]
	if rels == nil {
		rels = newRelationships()
		d.sheetRels[path] = rels
	}
	return rels
}

// SaveAs serializes and writes the document to path, regenerating every
// part the library owns (dirty or not) in the fixed order of spec.md §4.5: leaf parts (media, drawings,
// tables, comments/VML) -> sheets -> shared strings -> styles -> workbook
// -> relationships -> content types.
func (d *Document) SaveAs(path string, mode OverwriteMode) error {
	if err := d.flush(); err != nil {
		return err
	}
	return d.pkg.Save(path, mode)
}

// Save re-serializes the document to the path it was opened/last saved
// from.
func (d *Document) Save(mode OverwriteMode) error {
	return d.SaveAs("", mode)
}

func (d *Document) flush() error {
	// 1. leaf parts: media, drawings, tables, comments + VML.
	if err := d.flushMedia(); err != nil {
		return err
	}
	if err := d.flushDrawings(); err != nil {
		return err
	}
	if err := d.flushComments(); err != nil {
		return err
	}
	if err := d.flushTables(); err != nil {
		return err
	}

	// 2. sheets (and their per-part relationships).
	if err := d.flushSheets(); err != nil {
		return err
	}

	// 3. shared strings.
	if d.sharedStrings.Count() > 0 {
		d.putPart(sharedStringsPartName, d.sharedStrings.toXML(), sharedStringsContentType)
	}

	// 4. styles.
	d.putPart(stylesPartPath, d.styles.toXML(), stylesContentType)
	if _, ok := d.workbookRels.byIDByType(stylesRelType); !ok {
		d.workbookRels.Add(stylesRelType, "styles.xml", Internal)
	}

	// 5. workbook.
	d.putPart(workbookPartPath, d.workbook.toXML(), workbookContentType)
	if _, ok := d.rootRels.byIDByType(workbookRelType); !ok {
		d.rootRels.Add(workbookRelType, "xl/workbook.xml", Internal)
	}

	if err := d.writeDocProps(); err != nil {
		return err
	}

	// 6. relationships.
	d.putPart(workbookRelsPath, d.workbookRels.toXML(), relsContentType)
	d.putPart(rootRelsPath, d.rootRels.toXML(), relsContentType)
	enumerate(d.sheetRels, func(path string, rels *Relationships) {
		if rels.Len() > 0 {
			d.putPart(RelationshipsPath(path), rels.toXML(), relsContentType)
		}
	})

	// 6b. prune relationship targets no longer reachable from any
	// relationship graph, per spec.md §4.4's save-time refcount.
	d.pruneOrphanedParts()

	// 7. content types (validated last, since every part above may have
	// registered a new Default/Override).
	for _, name := range d.pkg.Names() {
		if !d.contentTypes.CoversPart(name) {
			return newErr(KindInconsistentState, "part %s has no content-type coverage", name)
		}
	}
	d.putPart(contentTypesPartName, d.contentTypes.toXML(), "")

	return nil
}

const relsContentType = "application/vnd.openxmlformats-package.relationships+xml"
const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"

// putPart serializes doc and writes it into the package, registering a
// content-type Override when mime is non-empty (the content-types part
// itself is written with mime=="" since it is its own catalog).
func (d *Document) putPart(path string, doc *xmlDoc, mime string) {
	b, err := doc.Bytes()
	if err != nil {
		b = []byte{}
	}
	d.pkg.Put(path, b)
	if mime != "" {
		d.contentTypes.AddOverride(path, mime)
	}
}

func (d *Document) flushSheets() error {
	for _, sh := range d.workbook.sheets {
		partPath := d.sheetPartPath(sh)
		xd := sheetToXML(sh, d.sharedStrings)

		if dp := d.drawings[partPath]; dp != nil {
			rels := d.sheetRelationships(sh)
			for _, r := range rels.ByType(drawingRelType) {
				xd.Root().CreateElement("drawing").CreateAttr("r:id", r.ID)
				break
			}
		}
		if vp := d.vml[partPath]; vp != nil {
			rels := d.sheetRelationships(sh)
			for _, r := range rels.ByType(vmlDrawingRelType) {
				xd.Root().CreateElement("legacyDrawing").CreateAttr("r:id", r.ID)
				break
			}
			_ = vp
		}
		if tps := d.sheetTables[partPath]; len(tps) > 0 {
			rels := d.sheetRelationships(sh)
			tableRels := rels.ByType(tableRelType)
			tp := xd.Root().CreateElement("tableParts")
			tp.CreateAttr("count", itoa(len(tps)))
			for _, r := range tableRels {
				tp.CreateElement("tablePart").CreateAttr("r:id", r.ID)
			}
		}

		d.putPart(partPath, xd, worksheetContentType)
	}
	return nil
}

func (rs *Relationships) byIDByType(typ string) (string, bool) {
	for _, r := range rs.ByType(typ) {
		return r.ID, true
	}
	return "", false
}

// prunablePartPrefixes lists the managed, relationship-addressed part
// directories eligible for save-time orphan cleanup. Parts outside these
// prefixes (docProps, theme, content types, the relationship files
// themselves) are never targeted by an Internal relationship the way a
// worksheet/media/drawing/table/comments part is, so they're excluded.
var prunablePartPrefixes = []string{
	"xl/worksheets/", "xl/media/", "xl/drawings/", "xl/tables/", "xl/comments",
}

func isPrunablePart(name string) bool {
	for _, p := range prunablePartPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// pruneOrphanedParts removes managed parts that are no longer reachable
// from any relationship graph in the document. Relationships.Remove only
// edits its own graph (it has no visibility into sibling graphs or the
// package), so spec.md §4.4's "delete the target only if unreachable from
// any other relationship" is enforced here as a save-time refcount sweep
// instead of at each individual Remove call.
func (d *Document) pruneOrphanedParts() {
	reachable := map[string]bool{}
	mark := func(ownerDir string, rels *Relationships) {
		if rels == nil {
			return
		}
		for _, id := range rels.sortedIDs() {
			r := rels.byID[id]
			if r.Mode == External || r.Target == "" {
				continue
			}
			reachable[resolveRelTarget(ownerDir, r.Target)] = true
		}
	}

	mark("", d.rootRels)
	mark("xl", d.workbookRels)
	for sheetPath, rels := range d.sheetRels {
		mark(path.Dir(strings.TrimPrefix(sheetPath, "/")), rels)
	}
	for _, dp := range d.drawings {
		mark(path.Dir(strings.TrimPrefix(dp.partPath(), "/")), dp.rels)
	}

	for _, name := range d.pkg.Names() {
		if !isPrunablePart(name) {
			continue
		}
		if !reachable[name] {
			d.pkg.Remove(name)
			d.contentTypes.Remove(name)
		}
	}
}

// resolveRelTarget resolves a relationship Target (conventionally relative,
// e.g. "../media/image1.png" or "worksheets/sheet1.xml") against the
// directory of its owning part, to the package-entry path convention used
// by Package.Names (no leading slash).
func resolveRelTarget(ownerDir, target string) string {
	return strings.TrimPrefix(path.Clean(path.Join(ownerDir, target)), "/")
}
