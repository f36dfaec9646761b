package docgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/text/language"

	internalLoader "github.com/goliatone/go-fieldschema/internal/definitions/loader"
	internalParser "github.com/goliatone/go-fieldschema/internal/definitions/parser"
	"github.com/goliatone/go-fieldschema/pkg/coreschema"
	"github.com/goliatone/go-fieldschema/pkg/definitions"
	"github.com/goliatone/go-fieldschema/pkg/mapper"
	"github.com/goliatone/go-fieldschema/pkg/openapi"
)

// ErrSerializerNotFound is returned when a request names a serializer the
// catalog does not declare.
var ErrSerializerNotFound = errors.New("docgen: serializer not found")

// Option customises the generator configuration.
type Option func(*Generator)

// WithLoader injects a custom definitions loader.
func WithLoader(loader definitions.Loader) Option {
	return func(g *Generator) {
		g.loader = loader
	}
}

// WithParser injects a custom definitions parser.
func WithParser(parser definitions.Parser) Option {
	return func(g *Generator) {
		g.parser = parser
	}
}

// WithMapper injects a fixed field mapper. A fixed mapper ignores
// Request.Language and the catalog translations.
func WithMapper(m mapper.Mapper) Option {
	return func(g *Generator) {
		g.mapper = m
	}
}

// WithMapperOptions configures the mapper built for every request.
func WithMapperOptions(options ...mapper.Option) Option {
	return func(g *Generator) {
		g.mapperOptions = append(g.mapperOptions, options...)
	}
}

// WithEncoder injects the OpenAPI encoder.
func WithEncoder(encoder *openapi.Encoder) Option {
	return func(g *Generator) {
		g.encoder = encoder
	}
}

// Generator coordinates the pipeline from a definitions document to schema
// nodes and OpenAPI documents. Missing dependencies fall back to the built-in
// implementations.
type Generator struct {
	loader        definitions.Loader
	parser        definitions.Parser
	mapper        mapper.Mapper
	mapperOptions []mapper.Option
	encoder       *openapi.Encoder
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

// Request describes the inputs of a generation run.
type Request struct {
	// Source identifies where the definitions document lives. Optional when
	// Document is supplied.
	Source definitions.Source

	// Document allows callers to bypass the loader.
	Document *definitions.Document

	// Serializer selects the serializer rendered by Schema.
	Serializer string

	// Language selects the translation used for translatable labels and help
	// texts. The zero value leaves catalog keys untranslated.
	Language language.Tag
}

// Catalog loads and parses the definitions document named by req.
func (g *Generator) Catalog(ctx context.Context, req Request) (*definitions.Catalog, error) {
	if ctx == nil {
		return nil, errors.New("docgen: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := g.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	cat, err := g.parser.Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("docgen: parse definitions: %w", err)
	}
	return cat, nil
}

// Schema maps the serializer named by req.Serializer.
func (g *Generator) Schema(ctx context.Context, req Request) (coreschema.Node, error) {
	if req.Serializer == "" {
		return nil, errors.New("docgen: serializer name is required")
	}
	cat, err := g.Catalog(ctx, req)
	if err != nil {
		return nil, err
	}
	s, ok := cat.Serializer(req.Serializer)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSerializerNotFound, req.Serializer)
	}
	node, err := g.mapperFor(req, cat).Map(s)
	if err != nil {
		return nil, fmt.Errorf("docgen: map serializer %q: %w", req.Serializer, err)
	}
	return node, nil
}

// Document builds the OpenAPI document describing the catalog endpoints.
func (g *Generator) Document(ctx context.Context, req Request) (*openapi3.T, error) {
	cat, err := g.Catalog(ctx, req)
	if err != nil {
		return nil, err
	}

	links, err := buildLinks(cat, g.mapperFor(req, cat))
	if err != nil {
		return nil, err
	}
	doc, err := g.encoder.Encode(ctx, openapi.Document{
		Title:       cat.Title,
		Description: cat.Description,
		Version:     cat.Version,
		URL:         cat.URL,
		Links:       links,
	})
	if err != nil {
		return nil, fmt.Errorf("docgen: encode document: %w", err)
	}
	return doc, nil
}

// Generate builds the OpenAPI document and marshals it in format.
func (g *Generator) Generate(ctx context.Context, req Request, format openapi.Format) ([]byte, error) {
	doc, err := g.Document(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := openapi.Marshal(doc, format)
	if err != nil {
		return nil, fmt.Errorf("docgen: marshal document: %w", err)
	}
	return out, nil
}

func (g *Generator) resolveDocument(ctx context.Context, req Request) (definitions.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return definitions.Document{}, errors.New("docgen: source or document is required")
	}
	doc, err := g.loader.Load(ctx, req.Source)
	if err != nil {
		return definitions.Document{}, fmt.Errorf("docgen: load definitions: %w", err)
	}
	return doc, nil
}

func (g *Generator) mapperFor(req Request, cat *definitions.Catalog) mapper.Mapper {
	if g.mapper != nil {
		return g.mapper
	}
	options := append([]mapper.Option(nil), g.mapperOptions...)
	if req.Language != language.Und {
		options = append(options, mapper.WithLanguage(req.Language, cat.Translations()))
	}
	return mapper.New(options...)
}

func (g *Generator) applyDefaults() {
	if g.loader == nil {
		g.loader = internalLoader.New(definitions.NewLoaderOptions())
	}
	if g.parser == nil {
		g.parser = internalParser.New(definitions.NewParserOptions())
	}
	if g.encoder == nil {
		g.encoder = openapi.NewEncoder()
	}
}
