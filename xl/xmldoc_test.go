package xl

import (
	"strings"
	"testing"
)

func TestNewXMLDocCreatesRootWithNamespace(t *testing.T) {
	d := newXMLDoc("worksheet", sheetNS)
	root := d.Root()
	if root == nil || root.Tag != "worksheet" {
		t.Fatalf("root = %+v", root)
	}
	if root.SelectAttrValue("xmlns", "") != sheetNS {
		t.Errorf("xmlns = %q, want %q", root.SelectAttrValue("xmlns", ""), sheetNS)
	}
}

func TestXMLDocBytesIncludesDeclaration(t *testing.T) {
	d := newXMLDoc("styleSheet", "http://example.com/ns")
	b, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "<?xml") {
		t.Errorf("expected an XML declaration, got %q", string(b)[:20])
	}
	if !strings.Contains(string(b), "standalone=\"yes\"") {
		t.Error("expected standalone=\"yes\" in the declaration")
	}
}

func TestLoadXMLDocRoundTrip(t *testing.T) {
	d := newXMLDoc("Types", contentTypesNS)
	d.Root().CreateElement("Default").CreateAttr("Extension", "xml")
	b, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := loadXMLDoc(b)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Root().Tag != "Types" {
		t.Errorf("reloaded root tag = %q", loaded.Root().Tag)
	}
	if loaded.Root().SelectElement("Default") == nil {
		t.Error("reloaded document missing its Default child")
	}
}

func TestLoadXMLDocRejectsMalformedXML(t *testing.T) {
	if _, err := loadXMLDoc([]byte("<not valid")); err == nil {
		t.Error("expected an error parsing malformed XML")
	}
}
