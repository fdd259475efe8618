package xl

import "github.com/beevik/etree"

const drawingNS = "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
const drawingContentType = "application/vnd.openxmlformats-officedocument.drawing+xml"
const drawingRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing"
const imageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

// anchorCell is a one-cell corner of a two-cell drawing anchor, with a
// pixel offset converted to EMUs within that cell.
type anchorCell struct {
	col, row  int
	offColEMU int64
	offRowEMU int64
}

// drawingImage is one picture placed on a sheet's drawing canvas, anchored
// from one cell corner to another (spec.md's two-cell anchor shape).
type drawingImage struct {
	from, to  anchorCell
	mediaPath string
	relID     string
	name      string
}

// drawingPart is a sheet's `xl/drawings/drawingN.xml` companion part: the
// ordered list of anchored pictures plus the relationships resolving each
// picture's `r:embed` to a media part.
type drawingPart struct {
	partIndex int
	images    []*drawingImage
	rels      *Relationships
}

func (dp *drawingPart) partPath() string {
	return "/xl/drawings/drawing" + itoa(dp.partIndex) + ".xml"
}

// AddPicture anchors blob as a picture on sh, with its top-left corner at
// (col, row) and a size computed from the image's intrinsic pixel
// dimensions scaled by scale (1.0 = natural size).
func (d *Document) AddPicture(sh *Sheet, col, row int, blob []byte, scale float64) error {
	mediaPath, err := d.AddMedia(blob)
	if err != nil {
		return err
	}

	var w, h int
	for _, m := range d.media {
		if m.partPath() == mediaPath {
			w, h = m.width, m.height
			break
		}
	}

	partPath := d.sheetPartPath(sh)
	dp := d.drawings[partPath]
	if dp == nil {
		dp = &drawingPart{partIndex: len(d.drawings) + 1, rels: newRelationships()}
		d.drawings[partPath] = dp
		rel := d.sheetRelationships(sh)
		rel.Add(drawingRelType, relativeTarget(partPath, dp.partPath()), Internal)
	}

	relID := dp.rels.Add(imageRelType, relativeTarget(dp.partPath(), mediaPath), Internal)

	img := &drawingImage{
		from:      anchorCell{col: col - 1, row: row - 1},
		to:        anchorCell{col: col - 1, row: row - 1, offColEMU: pixelsToEMU(w, scale), offRowEMU: pixelsToEMU(h, scale)},
		mediaPath: mediaPath,
		relID:     relID,
		name:      "Picture " + itoa(len(dp.images)+1),
	}
	dp.images = append(dp.images, img)
	return nil
}

// relativeTarget computes a same-package-relative Target attribute from
// one part's directory to another part's absolute path (OOXML relationship
// targets for internal parts are conventionally relative, e.g.
// "../media/image1.png" from a drawing part to a media part).
func relativeTarget(fromPart, toPart string) string {
	fromDir := dirOf(fromPart)
	return relPath(fromDir, toPart)
}

func dirOf(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[:i]
		}
	}
	return ""
}

func relPath(fromDir, target string) string {
	fromParts := splitPath(fromDir)
	toParts := splitPath(dirOf(target))
	base := baseOf(target)

	i := 0
	for i < len(fromParts) && i < len(toParts) && fromParts[i] == toParts[i] {
		i++
	}
	up := len(fromParts) - i
	var out string
	for k := 0; k < up; k++ {
		out += "../"
	}
	for k := i; k < len(toParts); k++ {
		out += toParts[k] + "/"
	}
	out += base
	return out
}

func splitPath(p string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(p); i++ {
		if i == len(p) || p[i] == '/' {
			if i > start {
				out = append(out, p[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func baseOf(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}

func (dp *drawingPart) toXML() *xmlDoc {
	d := newXMLDoc("xdr:wsDr", "")
	root := d.Root()
	root.CreateAttr("xmlns:xdr", drawingNS)
	root.CreateAttr("xmlns:a", "http://schemas.openxmlformats.org/drawingml/2006/main")
	root.CreateAttr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	for i, img := range dp.images {
		anchor := root.CreateElement("xdr:twoCellAnchor")
		writeAnchorCell(anchor.CreateElement("xdr:from"), img.from)
		writeAnchorCell(anchor.CreateElement("xdr:to"), img.to)

		pic := anchor.CreateElement("xdr:pic")
		nv := pic.CreateElement("xdr:nvPicPr")
		cNvPr := nv.CreateElement("xdr:cNvPr")
		cNvPr.CreateAttr("id", itoa(i+2))
		cNvPr.CreateAttr("name", img.name)
		nv.CreateElement("xdr:cNvPicPr")

		blipFill := pic.CreateElement("xdr:blipFill")
		blip := blipFill.CreateElement("a:blip")
		blip.CreateAttr("r:embed", img.relID)
		stretch := blipFill.CreateElement("a:stretch")
		stretch.CreateElement("a:fillRect")

		spPr := pic.CreateElement("xdr:spPr")
		xfrm := spPr.CreateElement("a:xfrm")
		off := xfrm.CreateElement("a:off")
		off.CreateAttr("x", "0")
		off.CreateAttr("y", "0")
		ext := xfrm.CreateElement("a:ext")
		ext.CreateAttr("cx", itoa64(img.to.offColEMU))
		ext.CreateAttr("cy", itoa64(img.to.offRowEMU))
		prstGeom := spPr.CreateElement("a:prstGeom")
		prstGeom.CreateAttr("prst", "rect")
		prstGeom.CreateElement("a:avLst")

		anchor.CreateElement("xdr:clientData")
	}
	return d
}

func writeAnchorCell(e *etree.Element, a anchorCell) {
	e.CreateElement("xdr:col").SetText(itoa(a.col))
	e.CreateElement("xdr:colOff").SetText(itoa64(a.offColEMU))
	e.CreateElement("xdr:row").SetText(itoa(a.row))
	e.CreateElement("xdr:rowOff").SetText(itoa64(a.offRowEMU))
}

func itoa64(v int64) string {
	return itoa(int(v))
}

func (d *Document) flushDrawings() error {
	var firstErr error
	enumerate(d.drawings, func(_ string, dp *drawingPart) {
		if firstErr != nil {
			return
		}
		b, err := dp.toXML().Bytes()
		if err != nil {
			firstErr = err
			return
		}
		d.pkg.Put(dp.partPath(), b)
		d.contentTypes.AddOverride(dp.partPath(), drawingContentType)
		if dp.rels.Len() > 0 {
			relBytes, err := dp.rels.toXML().Bytes()
			if err != nil {
				firstErr = err
				return
			}
			d.pkg.Put(RelationshipsPath(dp.partPath()), relBytes)
		}
	})
	return firstErr
}
