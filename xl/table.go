package xl

const tableNS = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
const tableContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.table+xml"
const tableRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/table"

// tablePart is a structured-table definition (`xl/tables/table<N>.xml`):
// a named range with a header row and typed columns. Round-tripped
// structurally; query/filter/totals semantics are out of scope.
type tablePart struct {
	partIndex int
	name      string
	ref       Range
	columns   []string
}

func (tp *tablePart) partPath() string {
	return "/xl/tables/table" + itoa(tp.partIndex) + ".xml"
}

// AddTable defines a new structured table named name over rng on sh,
// with the given header-row column names (column count must equal the
// range's column span).
func (d *Document) AddTable(sh *Sheet, name string, rng Range, columns []string) error {
	if len(columns) != rng.EndCol-rng.StartCol+1 {
		return newErr(KindInvalidArgument, "table %q: %d columns does not match range width %d", name, len(columns), rng.EndCol-rng.StartCol+1)
	}
	partPath := d.sheetPartPath(sh)
	tp := &tablePart{partIndex: len(d.tables) + 1, name: name, ref: rng, columns: append([]string(nil), columns...)}
	d.tables = append(d.tables, tp)

	rels := d.sheetRelationships(sh)
	rels.Add(tableRelType, relativeTarget(partPath, tp.partPath()), Internal)
	d.sheetTables[partPath] = append(d.sheetTables[partPath], tp)
	return nil
}

func (tp *tablePart) toXML() *xmlDoc {
	d := newXMLDoc("table", tableNS)
	root := d.Root()
	root.CreateAttr("id", itoa(tp.partIndex))
	root.CreateAttr("name", tp.name)
	root.CreateAttr("displayName", tp.name)
	root.CreateAttr("ref", tp.ref.String())

	autoFilter := root.CreateElement("autoFilter")
	autoFilter.CreateAttr("ref", tp.ref.String())

	cols := root.CreateElement("tableColumns")
	cols.CreateAttr("count", itoa(len(tp.columns)))
	for i, name := range tp.columns {
		c := cols.CreateElement("tableColumn")
		c.CreateAttr("id", itoa(i+1))
		c.CreateAttr("name", name)
	}

	style := root.CreateElement("tableStyleInfo")
	style.CreateAttr("showFirstColumn", "0")
	style.CreateAttr("showLastColumn", "0")
	style.CreateAttr("showRowStripes", "1")
	style.CreateAttr("showColumnStripes", "0")

	return d
}

func (d *Document) flushTables() error {
	var firstErr error
	enumerate(d.sheetTables, func(_ string, tps []*tablePart) {
		for _, tp := range tps {
			if firstErr != nil {
				return
			}
			b, err := tp.toXML().Bytes()
			if err != nil {
				firstErr = err
				return
			}
			d.pkg.Put(tp.partPath(), b)
			d.contentTypes.AddOverride(tp.partPath(), tableContentType)
		}
	})
	return firstErr
}
