package xl

import (
	"bytes"
	"time"

	"github.com/adnsv/srw/xml"
)

const corePropsPartPath = "/docProps/core.xml"
const appPropsPartPath = "/docProps/app.xml"
const corePropsContentType = "application/vnd.openxmlformats-package.core-properties+xml"
const appPropsContentType = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
const corePropsRelType = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
const appPropsRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"

// writeDocProps (re)writes docProps/core.xml and docProps/app.xml, the
// write-once, never-round-tripped parts describing package authorship.
// Unlike the other parts, these are always regenerated at save time rather
// than diffed against a parsed-in version, since neither carries
// information an application round-trips back out.
func (d *Document) writeDocProps() error {
	if err := d.writeCoreProperties(); err != nil {
		return err
	}
	return d.writeExtendedProperties()
}

func (d *Document) writeCoreProperties() error {
	var bb bytes.Buffer
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})

	x.XmlStandaloneDecl()
	x.OTag("cp:coreProperties")
	x.Attr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	x.Attr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	x.Attr("xmlns:dcterms", "http://purl.org/dc/terms/")
	x.Attr("xmlns:dcmitype", "http://purl.org/dc/dcmitype/")
	x.Attr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	x.OTag("+dcterms:created")
	x.Attr("xsi:type", "dcterms:W3CDTF")
	x.Write(time.Now().UTC().Format(time.RFC3339))
	x.CTag()

	x.CTag()

	d.pkg.Put(corePropsPartPath, bb.Bytes())
	d.contentTypes.AddOverride(corePropsPartPath, corePropsContentType)
	if _, ok := d.rootRels.byIDByType(corePropsRelType); !ok {
		d.rootRels.Add(corePropsRelType, "docProps/core.xml", Internal)
	}
	return nil
}

func (d *Document) writeExtendedProperties() error {
	var bb bytes.Buffer
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Properties")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
	x.Attr("xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")

	if d.workbook.AppName != "" {
		x.OTag("+Application").String(d.workbook.AppName).CTag()
	}

	x.OTag("+HeadingPairs")
	x.OTag("vt:vector")
	x.Attr("size", "2")
	x.Attr("baseType", "variant")
	x.OTag("vt:variant")
	x.OTag("+vt:lpstr").String("Worksheets").CTag()
	x.CTag()
	x.OTag("vt:variant")
	x.OTag("+vt:i4").String(itoa(len(d.workbook.sheets))).CTag()
	x.CTag()
	x.CTag()
	x.CTag()

	x.OTag("+TitlesOfParts")
	x.OTag("vt:vector")
	x.Attr("size", itoa(len(d.workbook.sheets)))
	x.Attr("baseType", "lpstr")
	for _, sh := range d.workbook.sheets {
		x.OTag("+vt:lpstr").String(sh.Name).CTag()
	}
	x.CTag()
	x.CTag()

	x.CTag()

	d.pkg.Put(appPropsPartPath, bb.Bytes())
	d.contentTypes.AddOverride(appPropsPartPath, appPropsContentType)
	if _, ok := d.rootRels.byIDByType(appPropsRelType); !ok {
		d.rootRels.Add(appPropsRelType, "docProps/app.xml", Internal)
	}
	return nil
}
