package xl

import "testing"

func TestRelationshipsAddAllocatesSmallestUnusedID(t *testing.T) {
	rs := newRelationships()
	id1 := rs.Add("typeA", "target1", Internal)
	id2 := rs.Add("typeB", "target2", Internal)
	if id1 != "rId1" || id2 != "rId2" {
		t.Errorf("ids = %q, %q, want rId1, rId2", id1, id2)
	}
	rs.Remove(id1)
	id3 := rs.Add("typeC", "target3", Internal)
	if id3 != "rId1" {
		t.Errorf("Add after Remove = %q, want rId1 (smallest unused)", id3)
	}
}

func TestRelationshipsAddWithIDRejectsDuplicate(t *testing.T) {
	rs := newRelationships()
	if err := rs.AddWithID("rId5", "typeA", "target1", Internal); err != nil {
		t.Fatal(err)
	}
	if err := rs.AddWithID("rId5", "typeB", "target2", Internal); err == nil {
		t.Error("expected error re-registering an already-used relationship id")
	}
}

func TestRelationshipsGetAndRemove(t *testing.T) {
	rs := newRelationships()
	id := rs.Add("typeA", "target1", External)
	r := rs.Get(id)
	if r == nil || r.Target != "target1" || r.Mode != External {
		t.Errorf("Get(%q) = %+v", id, r)
	}
	if !rs.Remove(id) {
		t.Error("Remove should report true for an existing id")
	}
	if rs.Remove(id) {
		t.Error("Remove should report false for an id that no longer exists")
	}
	if rs.Get(id) != nil {
		t.Error("Get should return nil after Remove")
	}
}

func TestRelationshipsByType(t *testing.T) {
	rs := newRelationships()
	rs.Add("image", "media/image1.png", Internal)
	rs.Add("drawing", "drawings/drawing1.xml", Internal)
	rs.Add("image", "media/image2.png", Internal)
	imgs := rs.ByType("image")
	if len(imgs) != 2 {
		t.Fatalf("ByType(image) returned %d, want 2", len(imgs))
	}
	if imgs[0].Target != "media/image1.png" || imgs[1].Target != "media/image2.png" {
		t.Errorf("ByType should preserve id order: got %+v", imgs)
	}
}

func TestRelationshipsPathConventions(t *testing.T) {
	cases := map[string]string{
		"/xl/workbook.xml":          "xl/_rels/workbook.xml.rels",
		"/xl/worksheets/sheet1.xml": "xl/worksheets/_rels/sheet1.xml.rels",
		"/workbook.xml":             "_rels/workbook.xml.rels",
	}
	for part, want := range cases {
		if got := RelationshipsPath(part); got != want {
			t.Errorf("RelationshipsPath(%q) = %q, want %q", part, got, want)
		}
	}
}

func TestRelationshipsLen(t *testing.T) {
	rs := newRelationships()
	if rs.Len() != 0 {
		t.Errorf("Len() on empty = %d, want 0", rs.Len())
	}
	rs.Add("typeA", "t1", Internal)
	rs.Add("typeB", "t2", Internal)
	if rs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rs.Len())
	}
}
