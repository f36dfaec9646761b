// Package fieldschema describes API serializers as schema nodes and OpenAPI
// documents. The root package re-exports the most common entry points; the
// building blocks live under pkg/.
package fieldschema

import (
	"context"

	"github.com/goliatone/go-fieldschema/pkg/coreschema"
	"github.com/goliatone/go-fieldschema/pkg/definitions"
	"github.com/goliatone/go-fieldschema/pkg/docgen"
	"github.com/goliatone/go-fieldschema/pkg/fields"
	"github.com/goliatone/go-fieldschema/pkg/mapper"
	"github.com/goliatone/go-fieldschema/pkg/openapi"
)

// Request aliases docgen.Request for callers using the top-level helpers.
type Request = docgen.Request

// FieldToSchema maps a single field with the default mapper. It panics on
// malformed descriptors.
func FieldToSchema(field fields.Field) coreschema.Node {
	return mapper.FieldToSchema(field)
}

// NewMapper returns a configurable field mapper.
func NewMapper(options ...mapper.Option) mapper.Mapper {
	return mapper.New(options...)
}

// NewGenerator exposes the docgen constructor from the top-level module.
func NewGenerator(options ...docgen.Option) *docgen.Generator {
	return docgen.New(options...)
}

// GenerateOpenAPI loads the definitions at source and renders the OpenAPI
// document describing its endpoints.
func GenerateOpenAPI(ctx context.Context, source definitions.Source, format openapi.Format, options ...docgen.Option) ([]byte, error) {
	return docgen.New(options...).Generate(ctx, docgen.Request{Source: source}, format)
}

// GenerateOpenAPIFromDocument renders an OpenAPI document from a pre-loaded
// definitions document, bypassing the loader stage.
func GenerateOpenAPIFromDocument(ctx context.Context, doc definitions.Document, format openapi.Format, options ...docgen.Option) ([]byte, error) {
	return docgen.New(options...).Generate(ctx, docgen.Request{Document: &doc}, format)
}

// SerializerSchema loads the definitions at source and maps the named
// serializer.
func SerializerSchema(ctx context.Context, source definitions.Source, serializer string, options ...docgen.Option) (coreschema.Node, error) {
	return docgen.New(options...).Schema(ctx, docgen.Request{Source: source, Serializer: serializer})
}
