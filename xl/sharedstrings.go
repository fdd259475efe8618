package xl

import (
	"strings"

	"github.com/beevik/etree"
)

const sharedStringsPartName = "/xl/sharedStrings.xml"
const sharedStringsContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
const sharedStringsRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"

// SharedStrings is the workbook-wide interning table for cell text.
// Append-only: clearing a slot nulls its string but keeps the index
// stable, since existing cells reference slots by position.
type SharedStrings struct {
	values []string // a cleared slot holds "" and keeps its index
	index  map[string]int
	dirty  bool
}

func newSharedStrings() *SharedStrings {
	return &SharedStrings{index: map[string]int{}}
}

func parseSharedStrings(data []byte) (*SharedStrings, error) {
	doc, err := loadXMLDoc(data)
	if err != nil {
		return nil, err
	}
	ss := newSharedStrings()
	root := doc.Root()
	if root == nil {
		return ss, nil
	}
	for _, si := range root.SelectElements("si") {
		ss.values = append(ss.values, siText(si))
	}
	for i, v := range ss.values {
		if _, exists := ss.index[v]; !exists {
			ss.index[v] = i
		}
	}
	return ss, nil
}

// siText concatenates all <t> descendants of an <si>, which covers both
// the plain `<si><t>...</t></si>` shape and the rich-text run shape
// `<si><r><t>...</t></r>...</si>`; run formatting is not modeled. On save,
// toXML writes every entry back as a single plain <t>, so rich-text runs
// are flattened even when the entry was never modified.
func siText(si *etree.Element) string {
	if t := si.SelectElement("t"); t != nil {
		return t.Text()
	}
	var sb strings.Builder
	for _, t := range si.FindElements(".//t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// GetOrCreateIndex returns the index of s in the pool, appending it if not
// already present.
func (ss *SharedStrings) GetOrCreateIndex(s string) int {
	if i, ok := ss.index[s]; ok {
		return i
	}
	i := len(ss.values)
	ss.values = append(ss.values, s)
	ss.index[s] = i
	ss.dirty = true
	return i
}

// Get returns the string at index i, or "" if out of range or cleared.
func (ss *SharedStrings) Get(i int) (string, bool) {
	if i < 0 || i >= len(ss.values) {
		return "", false
	}
	return ss.values[i], true
}

// Exists reports whether s is already interned.
func (ss *SharedStrings) Exists(s string) bool {
	_, ok := ss.index[s]
	return ok
}

// Clear nulls the string at index i without shrinking the table, so
// existing cell references by index remain valid.
func (ss *SharedStrings) Clear(i int) {
	if i < 0 || i >= len(ss.values) {
		return
	}
	old := ss.values[i]
	if cur, ok := ss.index[old]; ok && cur == i {
		delete(ss.index, old)
	}
	ss.values[i] = ""
	ss.dirty = true
}

// Count returns the number of slots (including cleared ones).
func (ss *SharedStrings) Count() int { return len(ss.values) }

func (ss *SharedStrings) toXML() *xmlDoc {
	d := newXMLDoc("sst", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	root := d.Root()
	root.CreateAttr("count", itoa(len(ss.values)))
	root.CreateAttr("uniqueCount", itoa(len(ss.values)))
	for _, s := range ss.values {
		si := root.CreateElement("si")
		t := si.CreateElement("t")
		t.SetText(s)
		if s != "" && (s[0] == ' ' || s[len(s)-1] == ' ') {
			t.CreateAttr("xml:space", "preserve")
		}
	}
	return d
}
