// Package encoding normalises ledger files to UTF-8. Spreadsheet tools often
// re-save a CSV ledger as UTF-16 or Windows-1252.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8.
//
// A byte order mark decides the encoding when present. Otherwise valid UTF-8
// passes through, chardet picks a single-byte charset, and Windows-1252 is the
// last resort.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	dec := detect(head, len(head) < sniffLen)
	if dec == nil {
		return br, nil
	}

	return transform.NewReader(br, dec.NewDecoder()), nil
}

// Decode converts a whole file to UTF-8.
func Decode(b []byte) ([]byte, error) {
	r, err := NewUTF8Reader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	return io.ReadAll(r)
}

// detect returns nil when head is already UTF-8. complete reports whether
// head is the whole input, otherwise a rune cut at the end is tolerated.
func detect(head []byte, complete bool) encoding.Encoding {
	if len(head) >= 2 && (head[0] == 0xFF && head[1] == 0xFE || head[0] == 0xFE && head[1] == 0xFF) {
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	}

	if validUTF8(head, complete) {
		return nil
	}

	res, err := chardet.NewTextDetector().DetectBest(head)
	if err == nil {
		switch res.Charset {
		case "UTF-8":
			return nil
		case "ISO-8859-9":
			return charmap.ISO8859_9
		case "ISO-8859-15":
			return charmap.ISO8859_15
		}
	}

	return charmap.Windows1252
}

func validUTF8(b []byte, complete bool) bool {
	if complete {
		return utf8.Valid(b)
	}

	// Drop up to three trailing bytes of a rune split by the peek window.
	for i := 0; i < utf8.UTFMax-1 && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return true
		}

		if utf8.RuneStart(b[len(b)-1]) {
			b = b[:len(b)-1]
			break
		}

		b = b[:len(b)-1]
	}

	return utf8.Valid(b)
}
