package check

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF sniffs the byte order mark. UTF-32 LE starts with the UTF-16 LE
// mark, longer marks are checked first.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

func (e srcEncoding) decoder() *encoding.Decoder {
	switch e {
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewDecoder()
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewDecoder()
	}
	return nil
}

// the encoding sniff matches the exact lowercase byte sequence, as css
// defines it
var charsetRE = regexp.MustCompile(`^@charset "([^"]+)";`)

// charsetLabel extracts the encoding label of a leading @charset rule.
func charsetLabel(data []byte) (string, bool) {
	head := data
	if len(head) > 64 {
		head = head[:64]
	}
	m := charsetRE.FindSubmatch(head)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

func isUTF8Label(label string) bool {
	switch strings.ToLower(label) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// decodeText converts stylesheet bytes to UTF-8 text. A byte order mark wins,
// then a leading @charset rule, anything unresolvable passes through
// unchanged with a warning. The @charset rule stays in the decoded text so
// line numbers are preserved.
func decodeText(data []byte, log *zap.Logger) string {
	if enc := detectUTF(data); enc != encUnknown {
		if enc == encUTF8 {
			return string(data[3:])
		}
		out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.decoder()))
		if err != nil {
			log.Warn("Unable to decode input, using raw bytes", zap.Error(err))
			return string(data)
		}
		return string(out)
	}

	label, ok := charsetLabel(data)
	if !ok || isUTF8Label(label) {
		return string(data)
	}

	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		// not a WHATWG label, IANA may still know the name
		e, er := ianaindex.IANA.Encoding(label)
		if er != nil || e == nil {
			log.Warn("Unknown character set in @charset, using raw bytes", zap.String("charset", label), zap.Error(err))
			return string(data)
		}
		r = transform.NewReader(bytes.NewReader(data), e.NewDecoder())
	}

	out, err := io.ReadAll(r)
	if err != nil {
		log.Warn("Unable to decode input, using raw bytes", zap.String("charset", label), zap.Error(err))
		return string(data)
	}
	return string(out)
}
