// Package exifmeta extracts capture dates and orientation from embedded
// image metadata. Every reader here is best-effort: metadata that is
// missing or malformed yields an absent result, never an error.
package exifmeta

import (
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// Source says where a capture date came from.
type Source int

const (
	SourceNone Source = iota
	SourceExif
	SourceFileTime
)

// Date is a capture timestamp tagged with its origin.
type Date struct {
	Time   time.Time
	Source Source
}

// dateTags in priority order, per the EXIF convention.
var dateTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// CaptureDate reads the capture date from the file's EXIF block. The
// explicit tag lookups are tried first; the library's own DateTime
// convenience accessor is the last resort before giving up.
func CaptureDate(path string) (Date, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Date{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return Date{}, false
	}
	for _, name := range dateTags {
		tag, err := x.Get(name)
		if err != nil || tag == nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			continue
		}
		if t, ok := ParseDateText(s); ok {
			return Date{Time: t, Source: SourceExif}, true
		}
	}
	if t, err := x.DateTime(); err == nil {
		return Date{Time: t, Source: SourceExif}, true
	}
	return Date{}, false
}

// FileTime reads the file's last-modified timestamp.
func FileTime(path string) (Date, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return Date{}, false
	}
	return Date{Time: fi.ModTime(), Source: SourceFileTime}, true
}

// ParseDateText parses the date formats seen in EXIF tags. As a last
// resort the first whitespace-delimited token, with ":" replaced by "-",
// is tried as a plain date.
func ParseDateText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		"2006:01:02 15:04:05",
		"2006-01-02 15:04:05",
		"2006:01:02",
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	day := strings.ReplaceAll(fields[0], ":", "-")
	if t, err := time.ParseInLocation("2006-01-02", day, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Orientation reads the EXIF orientation tag, returning 1 (upright) when
// the tag is missing or unreadable.
func Orientation(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 1
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return 1
	}
	return v
}
