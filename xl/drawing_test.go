package xl

import "testing"

func TestRelativeTargetSameDirectory(t *testing.T) {
	got := relativeTarget("/xl/worksheets/sheet1.xml", "/xl/worksheets/sheet2.xml")
	if got != "sheet2.xml" {
		t.Errorf("relativeTarget = %q, want sheet2.xml", got)
	}
}

func TestRelativeTargetSheetToDrawing(t *testing.T) {
	got := relativeTarget("/xl/worksheets/sheet1.xml", "/xl/drawings/drawing1.xml")
	if got != "../drawings/drawing1.xml" {
		t.Errorf("relativeTarget = %q, want ../drawings/drawing1.xml", got)
	}
}

func TestRelativeTargetDrawingToMedia(t *testing.T) {
	got := relativeTarget("/xl/drawings/drawing1.xml", "/xl/media/image1.png")
	if got != "../media/image1.png" {
		t.Errorf("relativeTarget = %q, want ../media/image1.png", got)
	}
}

func TestRelativeTargetFromPackageRoot(t *testing.T) {
	got := relativeTarget("/", "/xl/workbook.xml")
	if got != "xl/workbook.xml" {
		t.Errorf("relativeTarget = %q, want xl/workbook.xml", got)
	}
}

func TestAddPictureAnchorsAndSizesImage(t *testing.T) {
	d := Create()
	sh := d.Workbook().SheetByName("Sheet1")
	blob := buildPNG(200, 100)

	if err := d.AddPicture(sh, 2, 3, blob, 1.0); err != nil {
		t.Fatal(err)
	}

	partPath := d.sheetPartPath(sh)
	dp := d.drawings[partPath]
	if dp == nil {
		t.Fatal("expected a drawing part to be created lazily")
	}
	if len(dp.images) != 1 {
		t.Fatalf("expected 1 anchored image, got %d", len(dp.images))
	}
	img := dp.images[0]
	if img.from.col != 1 || img.from.row != 2 {
		t.Errorf("anchor from = (%d,%d), want (1,2) (0-based)", img.from.col, img.from.row)
	}
	wantEMU := int64(200) * emuPerPixel
	if img.to.offColEMU != wantEMU {
		t.Errorf("image width EMU = %d, want %d", img.to.offColEMU, wantEMU)
	}

	rels := d.sheetRelationships(sh)
	if len(rels.ByType(drawingRelType)) != 1 {
		t.Error("expected the sheet to gain a drawing relationship")
	}
}

func TestAddPictureDedupsMediaByHash(t *testing.T) {
	d := Create()
	sh := d.Workbook().SheetByName("Sheet1")
	blob := buildPNG(10, 10)

	if err := d.AddPicture(sh, 1, 1, blob, 1.0); err != nil {
		t.Fatal(err)
	}
	if err := d.AddPicture(sh, 5, 5, blob, 1.0); err != nil {
		t.Fatal(err)
	}
	if len(d.media) != 1 {
		t.Errorf("identical blobs should share one media part, got %d", len(d.media))
	}
}
