// Package codepage maps Windows-style code page numbers to text encodings
// used to decode process output.
package codepage

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// UTF8 is the code page number for UTF-8 and the default.
const UTF8 = 65001

// ErrUnknown is returned for code pages without a known encoding.
var ErrUnknown = errors.New("unknown code page")

var pages = map[int]encoding.Encoding{
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	855:   charmap.CodePage855,
	858:   charmap.CodePage858,
	860:   charmap.CodePage860,
	862:   charmap.CodePage862,
	863:   charmap.CodePage863,
	865:   charmap.CodePage865,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	932:   japanese.ShiftJIS,
	936:   simplifiedchinese.GBK,
	949:   korean.EUCKR,
	950:   traditionalchinese.Big5,
	1200:  unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	1201:  unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
	20866: charmap.KOI8R,
	21866: charmap.KOI8U,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28595: charmap.ISO8859_5,
	28597: charmap.ISO8859_7,
	28605: charmap.ISO8859_15,
	50220: japanese.ISO2022JP,
	51932: japanese.EUCJP,
	54936: simplifiedchinese.GB18030,
	UTF8:  unicode.UTF8,
}

// Lookup returns the encoding for a code page.
func Lookup(cp int) (encoding.Encoding, error) {
	enc, ok := pages[cp]
	if !ok {
		return nil, fmt.Errorf("code page %d: %w", cp, ErrUnknown)
	}
	return enc, nil
}

// Supported returns the known code pages in ascending order.
func Supported() []int {
	cps := make([]int, 0, len(pages))
	for cp := range pages {
		cps = append(cps, cp)
	}
	sort.Ints(cps)
	return cps
}
