package xl

import "testing"

func TestAddMediaDedupsByContentHash(t *testing.T) {
	d := Create()
	blob := buildPNG(32, 32)
	p1, err := d.AddMedia(blob)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := d.AddMedia(blob)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Errorf("identical blobs got distinct part paths: %q vs %q", p1, p2)
	}
	if len(d.media) != 1 {
		t.Errorf("len(media) = %d, want 1", len(d.media))
	}
}

func TestAddMediaAssignsSequentialPartIndices(t *testing.T) {
	d := Create()
	p1, _ := d.AddMedia(buildPNG(10, 10))
	p2, _ := d.AddMedia(buildPNG(20, 20))
	if p1 != "/xl/media/image1.png" {
		t.Errorf("first media part = %q, want /xl/media/image1.png", p1)
	}
	if p2 != "/xl/media/image2.png" {
		t.Errorf("second media part = %q, want /xl/media/image2.png", p2)
	}
}

func TestAddMediaRejectsUnrecognizedFormat(t *testing.T) {
	d := Create()
	if _, err := d.AddMedia([]byte("not an image")); err == nil {
		t.Error("expected an error for unrecognized image data")
	}
}

func TestBlobHashDiffersForDifferentContent(t *testing.T) {
	h1 := BlobHash(buildPNG(10, 10))
	h2 := BlobHash(buildPNG(20, 20))
	if h1 == h2 {
		t.Error("distinct blobs should hash to distinct values")
	}
}
