package daily

import (
	"strconv"
	"unicode/utf16"
)

// Seed is a deterministic non-negative value derived from a namespace and a day.
type Seed uint32

// Hash derives the Seed for namespace on date, optionally narrowed by a
// sub-index when several values are needed for the same day.
func Hash(namespace string, date DateKey, index ...int) Seed {
	s := namespace + "_" + string(date)
	for _, i := range index {
		s += "_" + strconv.Itoa(i)
	}
	return StringHash(s)
}

// StringHash is the 31-multiplier rolling hash over UTF-16 code units,
// wrapped to 32 bits with the sign dropped.
func StringHash(s string) Seed {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	if h < 0 {
		// -MinInt32 overflows int32 but fits in uint32.
		return Seed(-int64(h))
	}
	return Seed(h)
}
