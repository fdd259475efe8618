package xl

import (
	"github.com/beevik/etree"
)

// xmlDecl controls the XML declaration written at the top of a part we
// author. Bytes always writes this declaration; a declaration read by
// loadXMLDoc is not kept.
type xmlDecl struct {
	Version    string
	Encoding   string
	Standalone string
}

var defaultDecl = xmlDecl{Version: "1.0", Encoding: "UTF-8", Standalone: "yes"}

// xmlDoc is the mutable DOM handle for a single XML part: a thin wrapper
// over *etree.Document that centralizes load/serialize conventions so
// every part-specific type (styles, sheet, relationships, ...) shares one
// parse/emit path instead of reimplementing it.
type xmlDoc struct {
	doc   *etree.Document
	decl  xmlDecl
	dirty bool
}

// newXMLDoc creates an empty document with a root element of the given
// name (and xmlns attribute, if non-empty), ready for an owned part that
// has no existing bytes to load.
func newXMLDoc(rootName, xmlns string) *xmlDoc {
	doc := etree.NewDocument()
	root := doc.CreateElement(rootName)
	if xmlns != "" {
		root.CreateAttr("xmlns", xmlns)
	}
	return &xmlDoc{doc: doc, decl: defaultDecl, dirty: true}
}

// loadXMLDoc parses an existing part's bytes into a DOM. Bytes re-emits
// only the root element under defaultDecl: the loaded declaration and any
// top-level comments or processing instructions are not kept.
func loadXMLDoc(data []byte) (*xmlDoc, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, wrapErr(KindInvalidFormat, err, "parse xml part")
	}
	return &xmlDoc{doc: doc, decl: defaultDecl}, nil
}

// Root returns the document's root element, creating nothing.
func (d *xmlDoc) Root() *etree.Element {
	return d.doc.Root()
}

// MarkDirty flags the part as needing to be re-serialized at flush time.
func (d *xmlDoc) MarkDirty() { d.dirty = true }

// Bytes serializes the DOM back to bytes, with the configured XML
// declaration prepended (the teacher's docProps writer always sets
// standalone="yes"; we keep that as our default for parts we author).
func (d *xmlDoc) Bytes() ([]byte, error) {
	out := etree.NewDocument()
	instText := `version="` + d.decl.Version + `" encoding="` + d.decl.Encoding + `"`
	if d.decl.Standalone != "" {
		instText += ` standalone="` + d.decl.Standalone + `"`
	}
	out.CreateProcInst("xml", instText)
	if root := d.doc.Root(); root != nil {
		out.SetRoot(root.Copy())
	}
	out.IndentTabs()
	b, err := out.WriteToBytes()
	if err != nil {
		return nil, wrapErr(KindInternalError, err, "serialize xml part")
	}
	return b, nil
}
