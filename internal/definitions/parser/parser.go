package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldschema/pkg/definitions"
	"github.com/goliatone/go-fieldschema/pkg/fields"
)

// Parser implements definitions.Parser on top of yaml.v3. JSON documents are
// read through the same decoder.
type Parser struct {
	options definitions.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ definitions.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options definitions.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Parse decodes doc and builds the serializer catalog it declares.
func (p *Parser) Parse(ctx context.Context, doc definitions.Document) (*definitions.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("definitions parser: document payload is empty")
	}

	var spec fileSpec
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("definitions parser: document payload is empty")
		}
		return nil, fmt.Errorf("definitions parser: decode %s: %w", doc.Encoding(), err)
	}

	b := &builder{
		strict:    p.options.StrictTypes,
		canonical: make(map[string]*fields.Serializer, len(spec.Serializers)),
	}
	cat, err := b.build(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("definitions parser: %w", err)
	}
	return cat, nil
}

// builder turns decoded specs into field trees. Serializers are created in
// two passes so references, including self references, share the canonical
// children slice.
type builder struct {
	strict    bool
	canonical map[string]*fields.Serializer
	pending   []reference
}

type reference struct {
	target *fields.Serializer
	name   string
}

func (b *builder) build(ctx context.Context, spec fileSpec) (*definitions.Catalog, error) {
	cat := definitions.NewCatalog()
	cat.Title = spec.Title
	cat.Description = spec.Description
	cat.Version = spec.Version
	cat.URL = spec.URL

	names := make([]string, 0, len(spec.Serializers))
	for name := range spec.Serializers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := fields.NewSerializer(name)
		b.canonical[name] = s
		if err := cat.AddSerializer(name, s); err != nil {
			return nil, err
		}
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		def := spec.Serializers[name]
		s := b.canonical[name]
		s.Label = text(def.Label, def.Translate)
		s.HelpText = text(def.HelpText, def.Translate)
		children, err := b.children(def.Fields, name)
		if err != nil {
			return nil, err
		}
		s.Fields = children
	}

	endpoints, err := b.endpoints(spec.Endpoints)
	if err != nil {
		return nil, err
	}
	cat.Endpoints = endpoints

	for _, ref := range b.pending {
		ref.target.Fields = b.canonical[ref.name].Fields
	}

	if len(spec.Translations) > 0 {
		msgs, err := translations(spec.Translations)
		if err != nil {
			return nil, err
		}
		cat.SetTranslations(msgs)
	}
	return cat, nil
}

func (b *builder) children(specs []fieldSpec, owner string) ([]fields.NamedField, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]fields.NamedField, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for i, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("serializer %q: field %d: name is required", owner, i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("serializer %q: duplicate field %q", owner, name)
		}
		seen[name] = struct{}{}

		f, err := b.field(spec)
		if err != nil {
			return nil, fmt.Errorf("serializer %q: field %q: %w", owner, name, err)
		}
		out = append(out, fields.NamedField{Name: name, Field: f})
	}
	return out, nil
}

func (b *builder) endpoints(specs []endpointSpec) ([]definitions.Endpoint, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]definitions.Endpoint, 0, len(specs))
	for i, spec := range specs {
		path := strings.TrimSpace(spec.Path)
		if path == "" {
			return nil, fmt.Errorf("endpoint %d: path is required", i)
		}
		method := strings.ToUpper(strings.TrimSpace(spec.Method))
		if method == "" {
			method = http.MethodGet
		}
		if !knownMethod(method) {
			return nil, fmt.Errorf("endpoint %q: unsupported method %q", path, spec.Method)
		}
		for _, ref := range []string{spec.Request, spec.Response} {
			if ref == "" {
				continue
			}
			if _, ok := b.canonical[ref]; !ok {
				return nil, fmt.Errorf("endpoint %q: unknown serializer %q", path, ref)
			}
		}
		query, err := b.children(spec.Query, method+" "+path)
		if err != nil {
			return nil, err
		}
		errs, err := statusErrors(spec.Errors)
		if err != nil {
			return nil, fmt.Errorf("endpoint %q: %w", path, err)
		}
		out = append(out, definitions.Endpoint{
			ID:          spec.ID,
			Path:        path,
			Method:      method,
			Description: spec.Description,
			Encoding:    spec.Encoding,
			Tags:        append([]string(nil), spec.Tags...),
			Request:     spec.Request,
			Response:    spec.Response,
			Many:        spec.Many,
			Query:       query,
			Errors:      errs,
		})
	}
	return out, nil
}

func statusErrors(raw map[string]string) (map[int]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[int]string, len(raw))
	for key, desc := range raw {
		code, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || code < 100 || code > 599 {
			return nil, fmt.Errorf("invalid status code %q", key)
		}
		out[code] = desc
	}
	return out, nil
}

func knownMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

func translations(specs map[string]map[string]string) (catalog.Catalog, error) {
	cb := catalog.NewBuilder()
	langs := make([]string, 0, len(specs))
	for lang := range specs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("translations: language %q: %w", lang, err)
		}
		for key, msg := range specs[lang] {
			if err := cb.SetString(tag, key, fields.EscapeFormat(msg)); err != nil {
				return nil, fmt.Errorf("translations: %s %q: %w", lang, key, err)
			}
		}
	}
	return cb, nil
}
