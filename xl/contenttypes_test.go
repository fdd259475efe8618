package xl

import "testing"

func TestContentTypesDefaultsSeeded(t *testing.T) {
	ct := newContentTypes()
	if !ct.HasDefault("rels") || !ct.HasDefault("xml") {
		t.Error("a fresh ContentTypes catalog should already default 'rels' and 'xml'")
	}
}

func TestContentTypesCoversPartByDefault(t *testing.T) {
	ct := newContentTypes()
	ct.AddDefault("png", "image/png")
	if !ct.CoversPart("/xl/media/image1.png") {
		t.Error("a part should be covered by a Default matching its extension")
	}
	if ct.CoversPart("/xl/media/image1.bmp") {
		t.Error("a part with no matching Default or Override should not be covered")
	}
}

func TestContentTypesOverrideTakesPrecedence(t *testing.T) {
	ct := newContentTypes()
	ct.AddOverride("/xl/worksheets/sheet1.xml", "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml")
	if !ct.CoversPart("/xl/worksheets/sheet1.xml") {
		t.Error("an overridden part should be covered")
	}
	// a sibling .xml part with no Override still falls back to the Default.
	if !ct.CoversPart("/xl/workbook.xml") {
		t.Error("a non-overridden .xml part should still be covered by the Default 'xml' entry")
	}
}

func TestContentTypesRemove(t *testing.T) {
	ct := newContentTypes()
	ct.AddOverride("/xl/worksheets/sheet1.xml", "application/vnd...worksheet+xml")
	ct.Remove("/xl/worksheets/sheet1.xml")
	// removing the override still leaves the part covered by the "xml" Default.
	if !ct.CoversPart("/xl/worksheets/sheet1.xml") {
		t.Error("after removing an Override, the part should fall back to the Default")
	}
	if _, ok := ct.overrides["/xl/worksheets/sheet1.xml"]; ok {
		t.Error("Remove should delete the Override entry")
	}
}

func TestExtensionOf(t *testing.T) {
	cases := map[string]string{
		"/xl/media/image1.png":     "png",
		"/xl/workbook.xml":         "xml",
		"/xl/worksheets/sheet1":    "",
		"noextension":              "",
		"/a/b.c/d":                 "",
	}
	for path, want := range cases {
		if got := extensionOf(path); got != want {
			t.Errorf("extensionOf(%q) = %q, want %q", path, got, want)
		}
	}
}
