package corpus

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"textparser/internal/scanerr"
)

// DefaultEncoding is the document encoding assumed when none is configured.
const DefaultEncoding = "utf-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a decoded corpus file.
type Document struct {
	Path  string
	Text  string
	Bytes int
}

// ReadDocument reads path and decodes it using the named encoding.
func ReadDocument(path, encodingName string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, scanerr.Wrap(scanerr.ErrDocumentRead, "corpus", "read", path, err)
	}
	text, err := Decode(data, encodingName)
	if err != nil {
		return Document{}, scanerr.Wrap(scanerr.ErrDecode, "corpus", "decode", path, err)
	}
	return Document{Path: path, Text: text, Bytes: len(data)}, nil
}

// Decode converts raw document bytes to text. UTF-8 input must be valid;
// other encodings are looked up by their WHATWG name or label.
func Decode(data []byte, encodingName string) (string, error) {
	enc, isUTF8, err := LookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	if isUTF8 {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid UTF-8 at byte %d", invalidOffset(data))
		}
		return string(data), nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", encodingName, err)
	}
	return string(bytes.TrimPrefix(decoded, utf8BOM)), nil
}

// LookupEncoding resolves an encoding label. It reports whether the label
// names UTF-8, which is validated rather than transcoded.
func LookupEncoding(name string) (encoding.Encoding, bool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, false, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		return nil, false, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return enc, canonical == "utf-8", nil
}

func invalidOffset(data []byte) int {
	offset := 0
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			return offset
		}
		offset += size
		data = data[size:]
	}
	return offset
}
