package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Encoding names a text encoding together with its codec.
type Encoding struct {
	Name string
	bom  []byte
	impl encoding.Encoding
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
)

var (
	// UTF8 is plain UTF-8; the writer emits no byte-order mark.
	UTF8 = Encoding{Name: "utf-8", impl: unicode.UTF8}
	// UTF8BOM is UTF-8 whose writer emits a byte-order mark.
	UTF8BOM = Encoding{Name: "utf-8", bom: bomUTF8, impl: unicode.UTF8BOM}
	// UTF16LE writes little-endian UTF-16 with a byte-order mark.
	UTF16LE = Encoding{Name: "utf-16", bom: bomUTF16LE, impl: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}
	// UTF16BE writes big-endian UTF-16 with a byte-order mark.
	UTF16BE = Encoding{Name: "utf-16BE", bom: bomUTF16BE, impl: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}
	// UTF32LE writes little-endian UTF-32 with a byte-order mark.
	UTF32LE = Encoding{Name: "utf-32", bom: bomUTF32LE, impl: utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)}
	// UTF32BE writes big-endian UTF-32 with a byte-order mark.
	UTF32BE = Encoding{Name: "utf-32BE", bom: bomUTF32BE, impl: utf32.UTF32(utf32.BigEndian, utf32.UseBOM)}
	// ANSI is the legacy fallback for files that are not valid UTF-8.
	ANSI = Encoding{Name: "windows-1252", impl: charmap.Windows1252}

	// DefaultOutput is used when no output encoding is configured.
	DefaultOutput = UTF8BOM
)

// codePages maps Windows code page numbers onto codecs.
var codePages = map[int]Encoding{
	437:   {Name: "ibm437", impl: charmap.CodePage437},
	850:   {Name: "ibm850", impl: charmap.CodePage850},
	852:   {Name: "ibm852", impl: charmap.CodePage852},
	855:   {Name: "ibm855", impl: charmap.CodePage855},
	858:   {Name: "ibm00858", impl: charmap.CodePage858},
	860:   {Name: "ibm860", impl: charmap.CodePage860},
	862:   {Name: "ibm862", impl: charmap.CodePage862},
	863:   {Name: "ibm863", impl: charmap.CodePage863},
	865:   {Name: "ibm865", impl: charmap.CodePage865},
	866:   {Name: "cp866", impl: charmap.CodePage866},
	874:   {Name: "windows-874", impl: charmap.Windows874},
	1200:  UTF16LE,
	1201:  UTF16BE,
	1250:  {Name: "windows-1250", impl: charmap.Windows1250},
	1251:  {Name: "windows-1251", impl: charmap.Windows1251},
	1252:  ANSI,
	1253:  {Name: "windows-1253", impl: charmap.Windows1253},
	1254:  {Name: "windows-1254", impl: charmap.Windows1254},
	1255:  {Name: "windows-1255", impl: charmap.Windows1255},
	1256:  {Name: "windows-1256", impl: charmap.Windows1256},
	1257:  {Name: "windows-1257", impl: charmap.Windows1257},
	1258:  {Name: "windows-1258", impl: charmap.Windows1258},
	12000: UTF32LE,
	12001: UTF32BE,
	20866: {Name: "koi8-r", impl: charmap.KOI8R},
	21866: {Name: "koi8-u", impl: charmap.KOI8U},
	28591: {Name: "iso-8859-1", impl: charmap.ISO8859_1},
	28592: {Name: "iso-8859-2", impl: charmap.ISO8859_2},
	28593: {Name: "iso-8859-3", impl: charmap.ISO8859_3},
	28594: {Name: "iso-8859-4", impl: charmap.ISO8859_4},
	28595: {Name: "iso-8859-5", impl: charmap.ISO8859_5},
	28596: {Name: "iso-8859-6", impl: charmap.ISO8859_6},
	28597: {Name: "iso-8859-7", impl: charmap.ISO8859_7},
	28598: {Name: "iso-8859-8", impl: charmap.ISO8859_8},
	28599: {Name: "iso-8859-9", impl: charmap.ISO8859_9},
	28603: {Name: "iso-8859-13", impl: charmap.ISO8859_13},
	28605: {Name: "iso-8859-15", impl: charmap.ISO8859_15},
	65001: UTF8BOM,
}

// SniffEncoding detects the encoding of raw file bytes. Byte-order marks
// win; otherwise valid UTF-8 is UTF-8 and anything else falls back to ANSI.
func SniffEncoding(data []byte) Encoding {
	// UTF-32LE проверяем раньше UTF-16LE: у них общий префикс FF FE.
	switch {
	case bytes.HasPrefix(data, bomUTF32LE):
		return UTF32LE
	case bytes.HasPrefix(data, bomUTF32BE):
		return UTF32BE
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	}
	if utf8.Valid(data) {
		return UTF8
	}
	return ANSI
}

// DetectEncoding sniffs the encoding of the file at path.
func DetectEncoding(path string) (Encoding, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return Encoding{}, err
	}
	return SniffEncoding(data), nil
}

// HasBOM reports whether the encoding carries a byte-order mark.
func (e Encoding) HasBOM() bool {
	return len(e.bom) > 0
}

// Decode converts raw bytes in encoding e into UTF-8, dropping the BOM.
func (e Encoding) Decode(data []byte) ([]byte, error) {
	if e.impl == nil {
		return nil, fmt.Errorf("encoding %q has no codec", e.Name)
	}
	data = bytes.TrimPrefix(data, e.bom)
	if e.impl == unicode.UTF8 || e.impl == unicode.UTF8BOM {
		return data, nil
	}
	out, _, err := transform.Bytes(e.decoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", e.Name, err)
	}
	return out, nil
}

func (e Encoding) decoder() transform.Transformer {
	// BOM уже срезан, поэтому декодер не должен его ждать.
	switch e.Name {
	case UTF16LE.Name:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case UTF16BE.Name:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case UTF32LE.Name:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()
	case UTF32BE.Name:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder()
	}
	return e.impl.NewDecoder()
}

// NewWriter wraps w with an encoder for e. Runes the encoding cannot
// represent are replaced instead of failing the write. Close must be called
// to flush the transformer.
func (e Encoding) NewWriter(w io.Writer) *transform.Writer {
	return transform.NewWriter(w, encoding.ReplaceUnsupported(e.impl.NewEncoder()))
}

// LookupEncoding resolves an encoding by Windows code page number or by name.
// An empty value yields DefaultOutput.
func LookupEncoding(value string) (Encoding, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultOutput, nil
	}
	if cp, err := strconv.Atoi(value); err == nil {
		enc, ok := codePages[cp]
		if !ok {
			return Encoding{}, fmt.Errorf("unsupported code page %d", cp)
		}
		return enc, nil
	}

	name := strings.ToLower(value)
	switch name {
	case "utf-8", "utf8":
		return UTF8BOM, nil
	case "utf-8-nobom", "utf8-nobom":
		return UTF8, nil
	case "utf-16", "utf-16le", "unicode":
		return UTF16LE, nil
	case "utf-16be", "unicodefffe":
		return UTF16BE, nil
	case "utf-32", "utf-32le":
		return UTF32LE, nil
	case "utf-32be":
		return UTF32BE, nil
	}

	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		canonical, nameErr := htmlindex.Name(enc)
		if nameErr != nil {
			canonical = name
		}
		return Encoding{Name: canonical, impl: enc}, nil
	}
	enc, err := ianaindex.IANA.Encoding(value)
	if err != nil || enc == nil {
		return Encoding{}, fmt.Errorf("unknown encoding %q", value)
	}
	return Encoding{Name: name, impl: enc}, nil
}
