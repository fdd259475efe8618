package xl

import (
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
)

// BlobHash derives a stable content-addressed identifier for an image
// blob, used to dedup identical media across AddMedia calls.
func BlobHash(blob []byte) uuid.UUID {
	h := fnv.New128()
	h.Write(blob)
	uid, _ := uuid.FromBytes(h.Sum([]byte{}))
	return uid
}

// mediaItem is a single embedded binary (image) part: its bytes, detected
// extension, and intrinsic pixel dimensions, used by the drawing layer's
// EMU anchor math.
type mediaItem struct {
	hash      string
	blob      []byte
	ext       string // "png", "jpeg", ...
	width     int
	height    int
	partIndex int // 1-based, part name is /xl/media/image<partIndex>.<ext>
}

func (m *mediaItem) partPath() string {
	return "/xl/media/image" + itoa(m.partIndex) + "." + m.ext
}

func mediaContentType(ext string) string {
	switch ext {
	case "png":
		return "image/png"
	case "jpeg", "jpg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// AddMedia interns blob into the package's media collection, detecting its
// pixel dimensions from PNG/JPEG headers. Identical blobs (by content
// hash) are deduped and the existing part path returned. Returns the part
// path new code should reference from a drawing anchor.
func (d *Document) AddMedia(blob []byte) (string, error) {
	hash := BlobHash(blob).String()
	if idx, ok := d.mediaIdx[hash]; ok {
		return d.media[idx].partPath(), nil
	}

	w, h, err := imageDimensions(blob)
	if err != nil {
		return "", err
	}
	ext := detectImageExt(blob)

	item := &mediaItem{
		hash:      hash,
		blob:      blob,
		ext:       ext,
		width:     w,
		height:    h,
		partIndex: len(d.media) + 1,
	}
	d.media = append(d.media, item)
	d.mediaIdx[hash] = len(d.media) - 1
	return item.partPath(), nil
}

func detectImageExt(blob []byte) string {
	if _, _, ok := pngDimensions(blob); ok {
		return "png"
	}
	if _, _, ok := jpegDimensions(blob); ok {
		return "jpeg"
	}
	return "bin"
}

func (d *Document) flushMedia() error {
	exts := map[string]bool{}
	for _, m := range d.media {
		d.pkg.Put(strings.TrimPrefix(m.partPath(), "/"), m.blob)
		exts[m.ext] = true
	}
	for ext := range exts {
		if !d.contentTypes.HasDefault(ext) {
			d.contentTypes.AddDefault(ext, mediaContentType(ext))
		}
	}
	return nil
}
