package xl

import (
	"sort"
)

const contentTypesPartName = "[Content_Types].xml"
const contentTypesNS = "http://schemas.openxmlformats.org/package/2006/content-types"

// ContentTypes is the `Default` (by lowercase extension) / `Override` (by
// absolute part path) MIME-type catalog for a package. Defaults always
// precede Overrides on emission, as required by consumers.
type ContentTypes struct {
	defaults  map[string]string // extension (no dot) -> content type
	overrides map[string]string // absolute part path -> content type
	dirty     bool
}

func newContentTypes() *ContentTypes {
	return &ContentTypes{
		defaults:  map[string]string{"rels": "application/vnd.openxmlformats-package.relationships+xml", "xml": "application/xml"},
		overrides: map[string]string{},
		dirty:     true,
	}
}

func parseContentTypes(data []byte) (*ContentTypes, error) {
	doc, err := loadXMLDoc(data)
	if err != nil {
		return nil, err
	}
	ct := &ContentTypes{defaults: map[string]string{}, overrides: map[string]string{}}
	root := doc.Root()
	if root == nil {
		return nil, newErr(KindInvalidFormat, "%s: missing root element", contentTypesPartName)
	}
	for _, e := range root.SelectElements("Default") {
		ext := e.SelectAttrValue("Extension", "")
		ctype := e.SelectAttrValue("ContentType", "")
		if ext != "" {
			ct.defaults[ext] = ctype
		}
	}
	for _, e := range root.SelectElements("Override") {
		part := e.SelectAttrValue("PartName", "")
		ctype := e.SelectAttrValue("ContentType", "")
		if part != "" {
			ct.overrides[part] = ctype
		}
	}
	return ct, nil
}

// AddDefault registers (or replaces) the content type for an extension.
func (ct *ContentTypes) AddDefault(ext, mime string) {
	ct.defaults[ext] = mime
	ct.dirty = true
}

// AddOverride registers (or replaces) the content type for a specific part
// path, taking precedence over any Default for that part's extension.
func (ct *ContentTypes) AddOverride(partPath, mime string) {
	ct.overrides[partPath] = mime
	ct.dirty = true
}

// HasDefault reports whether an extension has a registered Default.
func (ct *ContentTypes) HasDefault(ext string) bool {
	_, ok := ct.defaults[ext]
	return ok
}

// Remove deletes the Override registered for a part path, if any.
func (ct *ContentTypes) Remove(partPath string) {
	if _, ok := ct.overrides[partPath]; ok {
		delete(ct.overrides, partPath)
		ct.dirty = true
	}
}

// CoversPart reports whether a part path is covered by a Default (matched
// on its extension) or an Override (matched on its exact path).
func (ct *ContentTypes) CoversPart(partPath string) bool {
	if _, ok := ct.overrides[partPath]; ok {
		return true
	}
	ext := extensionOf(partPath)
	_, ok := ct.defaults[ext]
	return ok
}

func extensionOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i+1:]
		case '/':
			return ""
		}
	}
	return ""
}

func (ct *ContentTypes) toXML() *xmlDoc {
	d := newXMLDoc("Types", contentTypesNS)
	root := d.Root()

	exts := make([]string, 0, len(ct.defaults))
	for ext := range ct.defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		e := root.CreateElement("Default")
		e.CreateAttr("Extension", ext)
		e.CreateAttr("ContentType", ct.defaults[ext])
	}

	parts := make([]string, 0, len(ct.overrides))
	for p := range ct.overrides {
		parts = append(parts, p)
	}
	sort.Strings(parts)
	for _, p := range parts {
		e := root.CreateElement("Override")
		e.CreateAttr("PartName", p)
		e.CreateAttr("ContentType", ct.overrides[p])
	}
	return d
}
