package xl

import "github.com/beevik/etree"

// vmlPart is the legacy VML drawing part (`xl/drawings/vmlDrawing<N>.vml`)
// that Excel still requires alongside comments: one shape per commented
// cell, located by its ClientData Row/Column elements rather than EMU offsets.
type vmlPart struct {
	partIndex int
	shapes    []string // cell refs, in insertion order
}

func newVMLPart(idx int) *vmlPart {
	return &vmlPart{partIndex: idx}
}

func (vp *vmlPart) partPath() string {
	return "/xl/drawings/vmlDrawing" + itoa(vp.partIndex) + ".vml"
}

// toXML emits the VML body directly (not through xmlDoc's proc-inst path:
// VML parts use a bare root with no `<?xml?>` declaration).
func (vp *vmlPart) toXML() ([]byte, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("xml")
	root.CreateAttr("xmlns:v", "urn:schemas-microsoft-com:vml")
	root.CreateAttr("xmlns:o", "urn:schemas-microsoft-com:office:office")
	root.CreateAttr("xmlns:x", "urn:schemas-microsoft-com:office:excel")

	shapeType := root.CreateElement("v:shapetype")
	shapeType.CreateAttr("id", "_x0000_t202")
	shapeType.CreateAttr("coordsize", "21600,21600")
	shapeType.CreateAttr("path", "m,l,21600r21600,l21600,xe")

	for i, ref := range vp.shapes {
		col, row, err := ParseCellRef(ref)
		if err != nil {
			continue
		}
		shape := root.CreateElement("v:shape")
		shape.CreateAttr("id", "_x0000_s"+itoa(1000+i))
		shape.CreateAttr("type", "#_x0000_t202")
		shape.CreateAttr("style", "position:absolute;visibility:hidden")

		clientData := shape.CreateElement("x:ClientData")
		clientData.CreateAttr("ObjectType", "Note")
		clientData.CreateElement("x:Row").SetText(itoa(row - 1))
		clientData.CreateElement("x:Column").SetText(itoa(col - 1))
	}

	doc.IndentTabs()
	return doc.WriteToBytes()
}
