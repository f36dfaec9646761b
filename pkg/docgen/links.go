package docgen

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/goliatone/go-fieldschema/pkg/coreschema"
	"github.com/goliatone/go-fieldschema/pkg/definitions"
	"github.com/goliatone/go-fieldschema/pkg/fields"
	"github.com/goliatone/go-fieldschema/pkg/mapper"
	"github.com/goliatone/go-fieldschema/pkg/openapi"
)

var pathParam = regexp.MustCompile(`\{([^{}/]+)\}`)

func buildLinks(cat *definitions.Catalog, m mapper.Mapper) ([]openapi.Link, error) {
	if len(cat.Endpoints) == 0 {
		return nil, nil
	}
	links := make([]openapi.Link, 0, len(cat.Endpoints))
	for _, ep := range cat.Endpoints {
		link, err := buildLink(cat, m, ep)
		if err != nil {
			return nil, fmt.Errorf("docgen: endpoint %s %s: %w", ep.Method, ep.Path, err)
		}
		links = append(links, link)
	}
	return links, nil
}

func buildLink(cat *definitions.Catalog, m mapper.Mapper, ep definitions.Endpoint) (openapi.Link, error) {
	link := openapi.Link{
		ID:          ep.ID,
		URL:         ep.Path,
		Action:      strings.ToLower(ep.Method),
		Encoding:    ep.Encoding,
		Description: ep.Description,
		Tags:        ep.Tags,
		Errors:      ep.Errors,
	}

	request, err := lookup(cat, ep.Request)
	if err != nil {
		return openapi.Link{}, err
	}
	response, err := lookup(cat, ep.Response)
	if err != nil {
		return openapi.Link{}, err
	}

	for _, name := range PathParams(ep.Path) {
		field := openapi.LinkField{Name: name, Location: openapi.LocationPath, Required: true}
		if f, ok := firstField(name, request, response); ok {
			node, err := m.Map(f)
			if err != nil {
				return openapi.Link{}, fmt.Errorf("path parameter %q: %w", name, err)
			}
			field.Schema = node
		} else {
			field.Schema = coreschema.String{}
		}
		link.Fields = append(link.Fields, field)
	}

	for _, nf := range ep.Query {
		node, err := m.Map(nf.Field)
		if err != nil {
			return openapi.Link{}, fmt.Errorf("query parameter %q: %w", nf.Name, err)
		}
		link.Fields = append(link.Fields, openapi.LinkField{
			Name:     nf.Name,
			Location: openapi.LocationQuery,
			Required: nf.Field.Common().Required,
			Schema:   node,
		})
	}

	if request != nil && acceptsBody(ep.Method) {
		for _, nf := range request.Fields {
			common := nf.Field.Common()
			if common.ReadOnly {
				continue
			}
			node, err := m.Map(nf.Field)
			if err != nil {
				return openapi.Link{}, fmt.Errorf("request field %q: %w", nf.Name, err)
			}
			link.Fields = append(link.Fields, openapi.LinkField{
				Name:     nf.Name,
				Location: openapi.LocationForm,
				Required: common.Required && ep.Method != http.MethodPatch,
				Schema:   node,
			})
		}
	}

	if response != nil {
		node, err := m.Map(response)
		if err != nil {
			return openapi.Link{}, fmt.Errorf("response: %w", err)
		}
		if ep.Many {
			node = coreschema.Array{Items: node}
		}
		link.Response = node
	}
	return link, nil
}

// PathParams returns the names of the {param} segments of path in order.
func PathParams(path string) []string {
	matches := pathParam.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match[1])
	}
	return names
}

// acceptsBody reports whether request serializers contribute form fields.
// Only methods that write data carry a body.
func acceptsBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

func lookup(cat *definitions.Catalog, name string) (*fields.Serializer, error) {
	if name == "" {
		return nil, nil
	}
	s, ok := cat.Serializer(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSerializerNotFound, name)
	}
	return s, nil
}

func firstField(name string, serializers ...*fields.Serializer) (fields.Field, bool) {
	for _, s := range serializers {
		if s == nil {
			continue
		}
		if f, ok := s.Field(name); ok {
			return f, true
		}
	}
	return nil, false
}
