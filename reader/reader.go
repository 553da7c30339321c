package reader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding identifies the character encoding a file was decoded from.
type Encoding int

const (
	// UTF8 indicates the content was valid UTF-8.
	UTF8 Encoding = iota
	// Windows1252 indicates the content was decoded as Windows-1252,
	// the superset of Latin-1 that legacy archive submissions use.
	Windows1252
)

// String returns the encoding name.
func (e Encoding) String() string {
	if e == Windows1252 {
		return "windows-1252"
	}
	return "UTF-8"
}

// Reader reads an archive data file and exposes its decoded lines.
type Reader struct {
	file     *os.File
	name     string
	size     int64
	data     []byte
	text     string
	encoding Encoding
}

// NewReader creates a Reader for the given file. The file's content is
// read and decoded immediately; the caller remains responsible for
// closing the file unless it was opened through Open.
func NewReader(file *os.File) (*Reader, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to start: %w", err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	r := &Reader{
		file: file,
		name: file.Name(),
		size: fileInfo.Size(),
		data: data,
	}
	r.text, r.encoding = decode(data)
	return r, nil
}

// Open opens a data file and returns a Reader that owns the underlying
// file handle.
func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// NewFromBytes creates a Reader over in-memory content. Close is a
// no-op for such readers.
func NewFromBytes(name string, data []byte) *Reader {
	r := &Reader{
		name: name,
		size: int64(len(data)),
		data: data,
	}
	r.text, r.encoding = decode(data)
	return r
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Name returns the file name the Reader was created from.
func (r *Reader) Name() string {
	return r.name
}

// Size returns the size of the raw content in bytes.
func (r *Reader) Size() int64 {
	return r.size
}

// Encoding returns the encoding the content was decoded from.
func (r *Reader) Encoding() Encoding {
	return r.encoding
}

// Bytes returns the raw undecoded content.
func (r *Reader) Bytes() []byte {
	return r.data
}

// Text returns the decoded content as a single string.
func (r *Reader) Text() string {
	return r.text
}

// Lines returns the decoded content split into lines. LF, CRLF, and
// lone CR all terminate a line; the terminators are not included. A
// trailing terminator does not produce an empty final line.
func (r *Reader) Lines() []string {
	return SplitLines(r.text)
}

// decode converts raw bytes to a string. Valid UTF-8 passes through
// unchanged apart from a leading byte order mark; anything else is
// treated as Windows-1252, where every byte maps to a code point, so
// decoding cannot fail.
func decode(data []byte) (string, Encoding) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), UTF8
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// Unreachable for this charmap; keep the raw bytes rather
		// than lose content.
		return string(data), Windows1252
	}
	return string(decoded), Windows1252
}

// SplitLines splits text into lines on LF, CRLF, or lone CR.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
