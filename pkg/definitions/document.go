package definitions

import (
	"bytes"
	"errors"
	"path"
	"strings"
)

// Encoding of a definitions payload. YAML is a superset of JSON, so the parser
// reads both the same way; the encoding only matters for error messages and
// tooling that wants to round-trip the file.
type Encoding string

const (
	EncodingYAML Encoding = "yaml"
	EncodingJSON Encoding = "json"
)

// Document is a raw definitions payload together with its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("definitions: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("definitions: document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the document origin.
func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Location returns the origin identifier, or "" for a zero Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Encoding guesses the payload encoding from the location extension, then
// from the first significant byte.
func (d Document) Encoding() Encoding {
	switch strings.ToLower(path.Ext(d.Location())) {
	case ".json":
		return EncodingJSON
	case ".yaml", ".yml":
		return EncodingYAML
	}
	trimmed := bytes.TrimSpace(d.raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return EncodingJSON
	}
	return EncodingYAML
}
