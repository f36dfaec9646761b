package definitions

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/message/catalog"

	"github.com/goliatone/go-fieldschema/pkg/fields"
)

// Catalog is the parsed content of a definitions document: named serializers,
// the endpoints exposing them, and optional translations for lazy texts.
type Catalog struct {
	Title       string
	Description string
	Version     string
	URL         string
	Endpoints   []Endpoint

	serializers  map[string]*fields.Serializer
	translations catalog.Catalog
}

// Endpoint describes one API operation in terms of serializers.
type Endpoint struct {
	ID          string
	Path        string
	Method      string
	Description string
	Encoding    string
	Tags        []string
	// Request names the serializer describing the request body.
	Request string
	// Response names the serializer describing a successful response.
	Response string
	// Many wraps the response serializer in a list.
	Many bool
	// Query lists query string parameters.
	Query []fields.NamedField
	// Errors maps status codes to descriptions.
	Errors map[int]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{serializers: make(map[string]*fields.Serializer)}
}

// AddSerializer registers s under name. Names must be unique.
func (c *Catalog) AddSerializer(name string, s *fields.Serializer) error {
	if name == "" {
		return fmt.Errorf("definitions: serializer name is required")
	}
	if s == nil {
		return fmt.Errorf("definitions: serializer %q is nil", name)
	}
	if c.serializers == nil {
		c.serializers = make(map[string]*fields.Serializer)
	}
	if _, exists := c.serializers[name]; exists {
		return fmt.Errorf("definitions: duplicate serializer %q", name)
	}
	c.serializers[name] = s
	return nil
}

// Serializer looks a serializer up by name.
func (c *Catalog) Serializer(name string) (*fields.Serializer, bool) {
	if c == nil || c.serializers == nil {
		return nil, false
	}
	s, ok := c.serializers[name]
	return s, ok
}

// Names returns the serializer names in sorted order.
func (c *Catalog) Names() []string {
	if c == nil || len(c.serializers) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.serializers))
	for name := range c.serializers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetTranslations installs the message catalog used for translatable texts.
func (c *Catalog) SetTranslations(cat catalog.Catalog) {
	c.translations = cat
}

// Translations returns the message catalog, or nil when the document has no
// translations.
func (c *Catalog) Translations() catalog.Catalog {
	if c == nil {
		return nil
	}
	return c.translations
}

// Parser turns definitions documents into catalogs. The implementation lives
// under internal/definitions/parser.
type Parser interface {
	Parse(ctx context.Context, doc Document) (*Catalog, error)
}

// ParserOptions configures parsing.
type ParserOptions struct {
	// StrictTypes rejects field types outside the built-in taxonomy instead of
	// mapping them to fields.Custom.
	StrictTypes bool
}

// ParserOption mutates ParserOptions.
type ParserOption func(*ParserOptions)

// WithStrictTypes toggles rejection of unknown field types.
func WithStrictTypes(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.StrictTypes = enabled
	}
}

// NewParserOptions applies options and returns the configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
