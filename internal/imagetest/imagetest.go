// Package imagetest builds tiny EXIF-bearing JPEG fixtures for tests.
package imagetest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
)

const (
	tagDateTime         = 0x0132
	tagExifIFDPointer   = 0x8769
	tagDateTimeOriginal = 0x9003

	typeASCII = 2
	typeLong  = 4
)

// JPEGWithDateTags encodes a small JPEG and splices an EXIF APP1 segment
// in after the SOI marker. dateTimeOriginal goes into the Exif sub-IFD
// and dateTime into IFD0; an empty value omits that tag. Values must be
// EXIF date strings ("2006:01:02 15:04:05") — the builder always stores
// them out of line.
func JPEGWithDateTags(dateTimeOriginal, dateTime string) []byte {
	var img bytes.Buffer
	if err := jpeg.Encode(&img, image.NewNRGBA(image.Rect(0, 0, 8, 6)), nil); err != nil {
		panic(err)
	}
	payload := append([]byte("Exif\x00\x00"), tiffBlock(dateTimeOriginal, dateTime)...)

	var out bytes.Buffer
	out.Write(img.Bytes()[:2]) // SOI
	out.Write([]byte{0xff, 0xe1})
	var seglen [2]byte
	binary.BigEndian.PutUint16(seglen[:], uint16(len(payload)+2))
	out.Write(seglen[:])
	out.Write(payload)
	out.Write(img.Bytes()[2:])
	return out.Bytes()
}

func tiffBlock(dateTimeOriginal, dateTime string) []byte {
	le := binary.LittleEndian

	n0 := 0
	if dateTime != "" {
		n0++
	}
	hasExif := dateTimeOriginal != ""
	if hasExif {
		n0++
	}

	exifStart := 8 + 2 + 12*n0 + 4
	dataStart := exifStart
	if hasExif {
		dataStart += 2 + 12 + 4
	}

	var data bytes.Buffer
	asciiOffset := func(s string) uint32 {
		off := uint32(dataStart + data.Len())
		data.WriteString(s)
		data.WriteByte(0)
		return off
	}

	buf := new(bytes.Buffer)
	buf.WriteString("II")
	binary.Write(buf, le, uint16(42))
	binary.Write(buf, le, uint32(8)) // IFD0 offset

	entry := func(id, typ uint16, count, value uint32) {
		binary.Write(buf, le, id)
		binary.Write(buf, le, typ)
		binary.Write(buf, le, count)
		binary.Write(buf, le, value)
	}

	binary.Write(buf, le, uint16(n0))
	if dateTime != "" {
		entry(tagDateTime, typeASCII, uint32(len(dateTime)+1), asciiOffset(dateTime))
	}
	if hasExif {
		entry(tagExifIFDPointer, typeLong, 1, uint32(exifStart))
	}
	binary.Write(buf, le, uint32(0)) // no next IFD

	if hasExif {
		binary.Write(buf, le, uint16(1))
		entry(tagDateTimeOriginal, typeASCII, uint32(len(dateTimeOriginal)+1), asciiOffset(dateTimeOriginal))
		binary.Write(buf, le, uint32(0))
	}

	buf.Write(data.Bytes())
	return buf.Bytes()
}
