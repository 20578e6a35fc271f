package diskspace

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Unit is a presentational unit of information. It never affects the
// byte counts held in a Snapshot.
type Unit string

const (
	Bytes     Unit = "B"
	Kilobytes Unit = "KB"
	Megabytes Unit = "MB"
	Gigabytes Unit = "GB"
	Terabytes Unit = "TB"
	Petabytes Unit = "PB"
	Kibibytes Unit = "KiB"
	Mebibytes Unit = "MiB"
	Gibibytes Unit = "GiB"
	Tebibytes Unit = "TiB"
	Pebibytes Unit = "PiB"
)

// DefaultUnit is the display unit used when none is configured.
const DefaultUnit = Gigabytes

var unitSizes = map[Unit]uint64{
	Bytes:     humanize.Byte,
	Kilobytes: humanize.KByte,
	Megabytes: humanize.MByte,
	Gigabytes: humanize.GByte,
	Terabytes: humanize.TByte,
	Petabytes: humanize.PByte,
	Kibibytes: humanize.KiByte,
	Mebibytes: humanize.MiByte,
	Gibibytes: humanize.GiByte,
	Tebibytes: humanize.TiByte,
	Pebibytes: humanize.PiByte,
}

// ParseUnit resolves a unit label case-insensitively ("gb", "GiB", "b").
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultUnit, nil
	}
	for u := range unitSizes {
		if strings.EqualFold(string(u), s) {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown unit of measure %q", s)
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	_, ok := unitSizes[u]
	return ok
}

// Size returns the number of bytes in one u. Unknown units count as bytes.
func (u Unit) Size() uint64 {
	if size, ok := unitSizes[u]; ok {
		return size
	}
	return humanize.Byte
}

// Convert expresses b bytes in u.
func (u Unit) Convert(b uint64) float64 {
	return float64(b) / float64(u.Size())
}

// Format renders b in u with two decimals, e.g. "12.34 GB".
func (u Unit) Format(b uint64) string {
	if !u.Valid() {
		return humanize.Bytes(b)
	}
	return fmt.Sprintf("%.2f %s", u.Convert(b), u)
}
