package report

import (
	"fmt"
	"io"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Sanitize wraps w so that runes the named charset cannot represent are
// replaced with '?', rune by rune. Item and winner names routinely carry
// characters a console code page lacks; the report must keep rendering
// rather than abort. Supported charsets: "utf-8" (or empty, passthrough),
// "ascii", "latin-1", "windows-1252". Close flushes the transformer.
func Sanitize(w io.Writer, charset string) (io.WriteCloser, error) {
	switch charset {
	case "", "utf-8", "utf8":
		return nopCloser{w}, nil
	case "ascii":
		t := runes.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return '?'
			}
			return r
		})
		return transform.NewWriter(w, t), nil
	case "latin-1", "iso-8859-1":
		return charmapWriter(w, charmap.ISO8859_1), nil
	case "windows-1252":
		return charmapWriter(w, charmap.Windows1252), nil
	default:
		return nil, fmt.Errorf("report: unknown charset %q", charset)
	}
}

func charmapWriter(w io.Writer, cm *charmap.Charmap) io.WriteCloser {
	t := runes.Map(func(r rune) rune {
		if _, ok := cm.EncodeRune(r); !ok {
			return '?'
		}
		return r
	})
	return transform.NewWriter(w, t)
}
