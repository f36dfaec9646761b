package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// DefaultOpenAPIVersion is written to generated documents unless overridden.
const DefaultOpenAPIVersion = "3.0.3"

const successDescription = "Success"

var (
	// ErrInvalidLink reports a link lacking a URL or action.
	ErrInvalidLink = errors.New("openapi encoder: link requires url and action")
	// ErrUnsupportedAction reports an action that is not an HTTP method.
	ErrUnsupportedAction = errors.New("openapi encoder: unsupported action")
	// ErrDuplicateOperation reports two links sharing url and action.
	ErrDuplicateOperation = errors.New("openapi encoder: duplicate operation")
	// ErrMixedBody reports a link mixing form fields with a body field.
	ErrMixedBody = errors.New("openapi encoder: link mixes form and body fields")
)

// EncoderOptions configures document generation.
type EncoderOptions struct {
	// Version is the OpenAPI version string.
	Version string
	// Extensions are merged into the document root.
	Extensions map[string]any
	// Validate runs kin-openapi document validation after encoding.
	Validate bool
}

// EncoderOption mutates EncoderOptions.
type EncoderOption func(*EncoderOptions)

// WithOpenAPIVersion overrides the emitted OpenAPI version.
func WithOpenAPIVersion(version string) EncoderOption {
	return func(opts *EncoderOptions) {
		if strings.TrimSpace(version) != "" {
			opts.Version = strings.TrimSpace(version)
		}
	}
}

// WithExtensions merges custom root-level entries into the document. Later
// calls override earlier keys.
func WithExtensions(ext map[string]any) EncoderOption {
	return func(opts *EncoderOptions) {
		if len(ext) == 0 {
			return
		}
		if opts.Extensions == nil {
			opts.Extensions = make(map[string]any, len(ext))
		}
		for key, value := range ext {
			opts.Extensions[key] = value
		}
	}
}

// WithValidation toggles kin-openapi validation of the encoded document.
func WithValidation(enabled bool) EncoderOption {
	return func(opts *EncoderOptions) {
		opts.Validate = enabled
	}
}

// NewEncoderOptions applies options over the defaults.
func NewEncoderOptions(options ...EncoderOption) EncoderOptions {
	cfg := EncoderOptions{Version: DefaultOpenAPIVersion}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Encoder turns Documents into OpenAPI 3 documents.
type Encoder struct {
	options EncoderOptions
}

// NewEncoder constructs an Encoder.
func NewEncoder(options ...EncoderOption) *Encoder {
	return &Encoder{options: NewEncoderOptions(options...)}
}

// Encode builds the OpenAPI document for doc.
func (e *Encoder) Encode(ctx context.Context, doc Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &openapi3.T{
		OpenAPI: e.options.Version,
		Info: &openapi3.Info{
			Title:       doc.Title,
			Description: doc.Description,
			Version:     doc.Version,
		},
		Paths: openapi3.NewPaths(),
	}
	if server := serverURL(doc.URL); server != "" {
		out.Servers = openapi3.Servers{&openapi3.Server{URL: server}}
	}

	for _, link := range doc.Links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.addLink(out.Paths, link); err != nil {
			return nil, err
		}
	}

	if len(e.options.Extensions) > 0 {
		out.Extensions = make(map[string]any, len(e.options.Extensions))
		for key, value := range e.options.Extensions {
			out.Extensions[key] = value
		}
	}

	if e.options.Validate {
		if err := out.Validate(ctx); err != nil {
			return nil, fmt.Errorf("openapi encoder: validate: %w", err)
		}
	}
	return out, nil
}

func (e *Encoder) addLink(paths *openapi3.Paths, link Link) error {
	if strings.TrimSpace(link.URL) == "" || strings.TrimSpace(link.Action) == "" {
		return fmt.Errorf("%w (url=%q action=%q)", ErrInvalidLink, link.URL, link.Action)
	}
	method, ok := httpMethod(link.Action)
	if !ok {
		return fmt.Errorf("%w %q on %s", ErrUnsupportedAction, link.Action, link.URL)
	}

	item := paths.Value(link.URL)
	if item == nil {
		item = &openapi3.PathItem{}
		paths.Set(link.URL, item)
	}
	if item.GetOperation(method) != nil {
		return fmt.Errorf("%w %s %s", ErrDuplicateOperation, method, link.URL)
	}

	op, err := operation(link, method)
	if err != nil {
		return err
	}
	item.SetOperation(method, op)
	return nil
}

func operation(link Link, method string) (*openapi3.Operation, error) {
	opID := strings.TrimSpace(link.ID)
	if opID == "" {
		opID = strings.ToLower(method) + ":" + link.URL
	}
	op := &openapi3.Operation{
		OperationID: opID,
		Summary:     link.URL,
		Description: strings.TrimSpace(link.Description),
	}
	if len(link.Tags) > 0 {
		op.Tags = append([]string(nil), link.Tags...)
	}

	params, body, err := parameters(link)
	if err != nil {
		return nil, err
	}
	op.Parameters = params
	op.RequestBody = body
	op.Responses = responses(link)
	return op, nil
}

func parameters(link Link) (openapi3.Parameters, *openapi3.RequestBodyRef, error) {
	var (
		params   openapi3.Parameters
		form     *openapi3.Schema
		required []string
		body     *openapi3.RequestBodyRef
	)

	encoding := link.Encoding
	if encoding == "" {
		encoding = EncodingJSON
	}

	for _, field := range link.Fields {
		schema := SchemaFromNode(field.Schema)
		description := fieldDescription(field)

		switch field.Location {
		case LocationForm:
			if body != nil {
				return nil, nil, fmt.Errorf("%w on %s", ErrMixedBody, link.URL)
			}
			if form == nil {
				form = openapi3.NewObjectSchema()
			}
			if form.Properties == nil {
				form.Properties = make(openapi3.Schemas)
			}
			form.Properties[field.Name] = openapi3.NewSchemaRef("", schema)
			if field.Required {
				required = append(required, field.Name)
			}
		case LocationBody:
			if form != nil || body != nil {
				return nil, nil, fmt.Errorf("%w on %s", ErrMixedBody, link.URL)
			}
			bodySchema := &openapi3.Schema{}
			if encoding == EncodingOctetStream {
				bodySchema = openapi3.NewStringSchema()
				bodySchema.Format = "binary"
			}
			body = requestBody(encoding, bodySchema, field.Required, description)
		default:
			in := string(field.Location)
			if in == "" {
				in = openapi3.ParameterInQuery
			}
			param := &openapi3.Parameter{
				Name:        field.Name,
				In:          in,
				Description: description,
				Required:    field.Required || in == openapi3.ParameterInPath,
				Schema:      openapi3.NewSchemaRef("", schema),
			}
			params = append(params, &openapi3.ParameterRef{Value: param})
		}
	}

	if form != nil {
		form.Required = required
		body = requestBody(encoding, form, len(required) > 0, "")
	}
	return params, body, nil
}

func requestBody(encoding string, schema *openapi3.Schema, required bool, description string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Description: description,
			Required:    required,
			Content: openapi3.Content{
				encoding: &openapi3.MediaType{Schema: openapi3.NewSchemaRef("", schema)},
			},
		},
	}
}

func responses(link Link) *openapi3.Responses {
	description := successDescription
	success := &openapi3.Response{Description: &description}
	if link.Response != nil {
		success.Content = openapi3.NewContentWithJSONSchema(SchemaFromNode(link.Response))
	}
	out := openapi3.NewResponses(openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: success}))

	codes := make([]int, 0, len(link.Errors))
	for code := range link.Errors {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		text := link.Errors[code]
		if text == "" {
			text = http.StatusText(code)
		}
		out.Set(strconv.Itoa(code), &openapi3.ResponseRef{Value: &openapi3.Response{Description: &text}})
	}
	return out
}

// fieldDescription prefers the field's own description over its schema's.
func fieldDescription(field LinkField) string {
	if field.Description != "" {
		return field.Description
	}
	if field.Schema != nil {
		return field.Schema.Meta().Description
	}
	return ""
}

func httpMethod(action string) (string, bool) {
	method := strings.ToUpper(strings.TrimSpace(action))
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete,
		http.MethodPatch, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodConnect:
		return method, true
	default:
		return "", false
	}
}

func serverURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}
	server := url.URL{Scheme: parsed.Scheme, Host: parsed.Host, Path: strings.TrimSuffix(parsed.Path, "/")}
	return server.String()
}
