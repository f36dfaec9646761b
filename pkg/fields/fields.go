package fields

import (
	"github.com/goliatone/go-fieldschema/pkg/coreschema"
)

// Field is a serializer field descriptor. The set of implementations is
// closed: every variant embeds Base and is used through a pointer.
type Field interface {
	Common() *Base
	field()
}

// Base holds the attributes shared by every field kind.
type Base struct {
	// Label is the human readable name; nil means absent.
	Label Text
	// HelpText describes the field; nil means absent.
	HelpText Text
	// Style carries rendering hints.
	Style Style
	// Schema overrides introspection entirely when set.
	Schema coreschema.Node

	Required bool
	ReadOnly bool
}

// Common returns the shared attributes.
func (b *Base) Common() *Base { return b }

func (b *Base) field() {}

// LengthBounded is implemented by fields exposing string length limits.
type LengthBounded interface {
	LengthBounds() (min, max *int)
}

// NamedField pairs a serializer field with its declared name.
type NamedField struct {
	Name  string
	Field Field
}

// ListField holds a homogeneous list of Child values.
type ListField struct {
	Base
	Child     Field
	MinLength *int
	MaxLength *int
}

// ListSerializer wraps a serializer declared with many=true.
type ListSerializer struct {
	Base
	Child Field
}

// Serializer is a composite field with named children in declaration order.
type Serializer struct {
	Base
	Name   string
	Fields []NamedField
}

// NewSerializer returns an empty serializer called name.
func NewSerializer(name string) *Serializer {
	return &Serializer{Name: name}
}

// Add appends a named child and returns the serializer for chaining.
func (s *Serializer) Add(name string, f Field) *Serializer {
	s.Fields = append(s.Fields, NamedField{Name: name, Field: f})
	return s
}

// Field returns the child declared under name.
func (s *Serializer) Field(name string) (Field, bool) {
	for _, nf := range s.Fields {
		if nf.Name == name {
			return nf.Field, true
		}
	}
	return nil, false
}

// ManyRelatedField is a multi-valued relation.
type ManyRelatedField struct {
	Base
	ChildRelation Field
}

// RelatedKind distinguishes how a relation is represented on the wire.
type RelatedKind string

const (
	RelatedPrimaryKey          RelatedKind = "primary_key"
	RelatedHyperlinked         RelatedKind = "hyperlinked"
	RelatedHyperlinkedIdentity RelatedKind = "hyperlinked_identity"
	RelatedSlug                RelatedKind = "slug"
	RelatedString              RelatedKind = "string"
)

// RelatedField references a single related object.
type RelatedField struct {
	Base
	Kind RelatedKind
	// SlugField names the target attribute for slug relations.
	SlugField string
}

// MultipleChoiceField accepts a set of values drawn from Choices.
type MultipleChoiceField struct {
	Base
	Choices    Choices
	AllowEmpty bool
}

// ChoiceField accepts one value drawn from Choices.
type ChoiceField struct {
	Base
	Choices Choices
}

// FilePathField is a choice field whose choices are paths below Path.
type FilePathField struct {
	Base
	Path    string
	Choices Choices
}

// BooleanField holds true/false values.
type BooleanField struct {
	Base
}

// DecimalField holds fixed precision numbers.
type DecimalField struct {
	Base
	MaxDigits     *int
	DecimalPlaces *int
	MinValue      *float64
	MaxValue      *float64
}

// FloatField holds floating point numbers.
type FloatField struct {
	Base
	MinValue *float64
	MaxValue *float64
}

// IntegerField holds whole numbers.
type IntegerField struct {
	Base
	MinValue *int64
	MaxValue *int64
}

// UUIDFormat selects the textual encoding of a UUID.
type UUIDFormat string

const (
	UUIDHexVerbose UUIDFormat = "hex_verbose"
	UUIDHex        UUIDFormat = "hex"
	UUIDInt        UUIDFormat = "int"
	UUIDURN        UUIDFormat = "urn"
)

// UUIDField holds universally unique identifiers.
type UUIDField struct {
	Base
	Format UUIDFormat
}

// RegexField holds text constrained by a regular expression validator.
type RegexField struct {
	Base
	Validators []Validator
	MinLength  *int
	MaxLength  *int
}

// LengthBounds implements LengthBounded.
func (f *RegexField) LengthBounds() (min, max *int) { return f.MinLength, f.MaxLength }

// URLField holds absolute URLs.
type URLField struct {
	Base
	MinLength *int
	MaxLength *int
}

// LengthBounds implements LengthBounded.
func (f *URLField) LengthBounds() (min, max *int) { return f.MinLength, f.MaxLength }

// JSONField holds arbitrary JSON values.
type JSONField struct {
	Base
	Binary bool
}

// CharField holds free-form text.
type CharField struct {
	Base
	MinLength      *int
	MaxLength      *int
	TrimWhitespace bool
}

// LengthBounds implements LengthBounded.
func (f *CharField) LengthBounds() (min, max *int) { return f.MinLength, f.MaxLength }

// EmailField holds e-mail addresses.
type EmailField struct {
	Base
	MinLength *int
	MaxLength *int
}

// LengthBounds implements LengthBounded.
func (f *EmailField) LengthBounds() (min, max *int) { return f.MinLength, f.MaxLength }

// SlugField holds URL slugs.
type SlugField struct {
	Base
	MinLength    *int
	MaxLength    *int
	AllowUnicode bool
}

// LengthBounds implements LengthBounded.
func (f *SlugField) LengthBounds() (min, max *int) { return f.MinLength, f.MaxLength }

// FileField holds uploaded files. Only the file name length is bounded.
type FileField struct {
	Base
	MaxLength *int
}

// LengthBounds implements LengthBounded.
func (f *FileField) LengthBounds() (min, max *int) { return nil, f.MaxLength }

// DateField holds calendar dates.
type DateField struct {
	Base
	Format string
}

// DateTimeField holds timestamps.
type DateTimeField struct {
	Base
	Format string
}

// TimeField holds times of day.
type TimeField struct {
	Base
	Format string
}

// DurationField holds time spans.
type DurationField struct {
	Base
}

// DictField holds a mapping whose values follow Child.
type DictField struct {
	Base
	Child Field
}

// ReadOnlyField returns the attribute value untouched.
type ReadOnlyField struct {
	Base
}

// SerializerMethodField is computed by a serializer method.
type SerializerMethodField struct {
	Base
	MethodName string
}

// Custom covers field kinds outside the built-in taxonomy.
type Custom struct {
	Base
	Kind      string
	MinLength *int
	MaxLength *int
}

// LengthBounds implements LengthBounded.
func (f *Custom) LengthBounds() (min, max *int) { return f.MinLength, f.MaxLength }

// Int returns a pointer to v, for optional bounds.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v, for optional bounds.
func Int64(v int64) *int64 { return &v }

// Float returns a pointer to v, for optional bounds.
func Float(v float64) *float64 { return &v }
