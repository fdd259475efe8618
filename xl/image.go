package xl

import "encoding/binary"

// emuPerPixel is the standard 96-DPI EMU-per-pixel conversion factor used
// by SpreadsheetML drawings (914400 EMU per inch / 96 pixels per inch).
const emuPerPixel = 9525

// pixelsToEMU scales a pixel dimension by factor, truncating (not
// rounding) the scaled pixel count before converting to EMUs — confirmed
// against the reference image test fixtures, where a 1440x446 pixel image
// scaled by 0.25 yields 360x111 EMUs-worth of pixels, not 360x112.
func pixelsToEMU(pixels int, scale float64) int64 {
	scaledPixels := int64(float64(pixels) * scale)
	return scaledPixels * emuPerPixel
}

// imageDimensions returns the intrinsic pixel width and height of a PNG or
// JPEG blob, or InvalidFormat if the format is unrecognized or truncated.
func imageDimensions(blob []byte) (width, height int, err error) {
	if w, h, ok := pngDimensions(blob); ok {
		return w, h, nil
	}
	if w, h, ok := jpegDimensions(blob); ok {
		return w, h, nil
	}
	return 0, 0, newErr(KindInvalidFormat, "unrecognized or truncated image data")
}

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// pngDimensions reads width/height from the IHDR chunk, which PNG requires
// to be the first chunk: signature(8) + length(4) + "IHDR"(4) + width(4) +
// height(4).
func pngDimensions(blob []byte) (width, height int, ok bool) {
	if len(blob) < 24 {
		return 0, 0, false
	}
	for i := 0; i < 8; i++ {
		if blob[i] != pngSignature[i] {
			return 0, 0, false
		}
	}
	if string(blob[12:16]) != "IHDR" {
		return 0, 0, false
	}
	w := binary.BigEndian.Uint32(blob[16:20])
	h := binary.BigEndian.Uint32(blob[20:24])
	return int(w), int(h), true
}

// jpegDimensions scans JFIF/EXIF markers for the first Start-Of-Frame
// marker (0xC0-0xCF, excluding the DHT/JPG/DAC markers 0xC4, 0xC8, 0xCC)
// and reads its height/width fields.
func jpegDimensions(blob []byte) (width, height int, ok bool) {
	if len(blob) < 4 || blob[0] != 0xFF || blob[1] != 0xD8 {
		return 0, 0, false
	}
	i := 2
	for i+4 <= len(blob) {
		if blob[i] != 0xFF {
			return 0, 0, false
		}
		marker := blob[i+1]
		i += 2
		if marker == 0xD8 || marker == 0xD9 {
			continue
		}
		if marker >= 0xD0 && marker <= 0xD7 {
			continue
		}
		if i+2 > len(blob) {
			return 0, 0, false
		}
		segLen := int(binary.BigEndian.Uint16(blob[i : i+2]))
		isSOF := marker >= 0xC0 && marker <= 0xCF && marker != 0xC4 && marker != 0xC8 && marker != 0xCC
		if isSOF {
			if i+segLen > len(blob) || segLen < 7 {
				return 0, 0, false
			}
			h := binary.BigEndian.Uint16(blob[i+3 : i+5])
			w := binary.BigEndian.Uint16(blob[i+5 : i+7])
			return int(w), int(h), true
		}
		i += segLen
	}
	return 0, 0, false
}
