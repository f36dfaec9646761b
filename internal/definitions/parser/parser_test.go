package parser

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goliatone/go-fieldschema/pkg/coreschema"
	"github.com/goliatone/go-fieldschema/pkg/definitions"
	"github.com/goliatone/go-fieldschema/pkg/fields"
	"github.com/goliatone/go-fieldschema/pkg/testsupport"
)

func parseFixture(t *testing.T, opts ...definitions.ParserOption) *definitions.Catalog {
	t.Helper()

	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "snippets.yaml"))
	cat, err := New(definitions.NewParserOptions(opts...)).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cat
}

func parseString(t *testing.T, payload string, opts ...definitions.ParserOption) (*definitions.Catalog, error) {
	t.Helper()

	doc := definitions.MustNewDocument(definitions.SourceFromFile("inline.yaml"), []byte(payload))
	return New(definitions.NewParserOptions(opts...)).Parse(context.Background(), doc)
}

func TestParseCatalogMetadata(t *testing.T) {
	cat := parseFixture(t)

	if cat.Title != "Pastebin API" || cat.Version != "1.0" || cat.URL != "https://api.example.com/" {
		t.Fatalf("unexpected metadata: %+v", cat)
	}
	if diff := cmp.Diff([]string{"Category", "Snippet", "User"}, cat.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSnippetFields(t *testing.T) {
	cat := parseFixture(t)
	snippet, ok := cat.Serializer("Snippet")
	if !ok {
		t.Fatalf("Snippet serializer missing")
	}

	var names []string
	for _, nf := range snippet.Fields {
		names = append(names, nf.Name)
	}
	want := []string{"id", "title", "code", "linenos", "language", "style", "owner", "tags", "rating"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	id, _ := snippet.Field("id")
	if f, ok := id.(*fields.IntegerField); !ok || !f.ReadOnly {
		t.Fatalf("id = %#v, want read-only integer", id)
	}

	title, _ := snippet.Field("title")
	char, ok := title.(*fields.CharField)
	if !ok {
		t.Fatalf("title = %T, want *fields.CharField", title)
	}
	if char.MaxLength == nil || *char.MaxLength != 100 {
		t.Fatalf("title max length = %v, want 100", char.MaxLength)
	}
	if _, ok := char.Label.(fields.Translatable); !ok {
		t.Fatalf("title label = %T, want translatable", char.Label)
	}

	code, _ := snippet.Field("code")
	if got := code.Common().Style.Get(fields.StyleBaseTemplate); got != fields.TemplateTextarea {
		t.Fatalf("code template = %q", got)
	}
	if !code.Common().Required {
		t.Fatalf("code should be required")
	}

	style, _ := snippet.Field("style")
	choice, ok := style.(*fields.ChoiceField)
	if !ok {
		t.Fatalf("style = %T, want *fields.ChoiceField", style)
	}
	wantChoices := fields.Choices{{Key: "friendly", Label: "Friendly"}, {Key: "monokai", Label: "Monokai"}}
	if diff := cmp.Diff(wantChoices, choice.Choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}

	tags, _ := snippet.Field("tags")
	list, ok := tags.(*fields.ListField)
	if !ok {
		t.Fatalf("tags = %T, want *fields.ListField", tags)
	}
	if _, ok := list.Child.(*fields.SlugField); !ok {
		t.Fatalf("tags child = %T, want *fields.SlugField", list.Child)
	}

	rating, _ := snippet.Field("rating")
	dec, ok := rating.(*fields.DecimalField)
	if !ok || dec.MaxValue == nil || *dec.MaxValue != 5 || dec.MinValue == nil || *dec.MinValue != 0 {
		t.Fatalf("rating = %#v", rating)
	}
}

func TestParseReferencesShareCanonicalChildren(t *testing.T) {
	cat := parseFixture(t)
	snippet, _ := cat.Serializer("Snippet")
	user, _ := cat.Serializer("User")

	owner, _ := snippet.Field("owner")
	ref, ok := owner.(*fields.Serializer)
	if !ok {
		t.Fatalf("owner = %T, want *fields.Serializer", owner)
	}
	if ref == user {
		t.Fatalf("reference should not alias the canonical serializer")
	}
	if !ref.ReadOnly || user.ReadOnly {
		t.Fatalf("field attributes should stay on the reference")
	}
	if len(ref.Fields) != len(user.Fields) || len(ref.Fields) == 0 {
		t.Fatalf("reference fields = %d, want %d", len(ref.Fields), len(user.Fields))
	}

	snippets, _ := user.Field("snippets")
	many, ok := snippets.(*fields.ManyRelatedField)
	if !ok {
		t.Fatalf("snippets = %T, want *fields.ManyRelatedField", snippets)
	}
	if rel := many.ChildRelation.(*fields.RelatedField); rel.Kind != fields.RelatedHyperlinked {
		t.Fatalf("relation kind = %q", rel.Kind)
	}

	username, _ := user.Field("username")
	if _, ok := username.(*fields.RegexField); !ok {
		t.Fatalf("username = %T, want *fields.RegexField", username)
	}
}

func TestParseSelfReferenceFormsCycle(t *testing.T) {
	cat := parseFixture(t)
	category, _ := cat.Serializer("Category")

	children, _ := category.Field("children")
	list, ok := children.(*fields.ListSerializer)
	if !ok {
		t.Fatalf("children = %T, want *fields.ListSerializer", children)
	}
	nested := list.Child.(*fields.Serializer)
	again, ok := nested.Field("children")
	if !ok || again != children {
		t.Fatalf("nested children should point back at the same list field")
	}
}

func TestParseEndpoints(t *testing.T) {
	cat := parseFixture(t)
	if len(cat.Endpoints) != 3 {
		t.Fatalf("endpoints = %d, want 3", len(cat.Endpoints))
	}

	list := cat.Endpoints[0]
	if list.Method != "GET" || list.Response != "Snippet" || !list.Many {
		t.Fatalf("unexpected list endpoint: %+v", list)
	}
	if len(list.Query) != 1 || list.Query[0].Name != "page" {
		t.Fatalf("query = %+v", list.Query)
	}
	if diff := cmp.Diff(map[int]string{400: "Bad page"}, list.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	read := cat.Endpoints[2]
	if read.Method != "GET" {
		t.Fatalf("default method = %q, want GET", read.Method)
	}
	if _, ok := read.Errors[404]; !ok {
		t.Fatalf("404 error missing: %+v", read.Errors)
	}
}

func TestParseTranslations(t *testing.T) {
	cat := parseFixture(t)
	if cat.Translations() == nil {
		t.Fatalf("expected translations")
	}

	printer := message.NewPrinter(language.Spanish, message.Catalog(cat.Translations()))
	snippet, _ := cat.Serializer("Snippet")
	title, _ := snippet.Field("title")
	if got := title.Common().Label.Resolve(printer); got != "Título" {
		t.Fatalf("label = %q, want Título", got)
	}
}

func TestParseListWithoutChild(t *testing.T) {
	cat, err := parseString(t, "serializers:\n  A:\n    fields:\n      - name: tags\n        type: list\n        max_length: 5\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a, _ := cat.Serializer("A")
	tags, _ := a.Field("tags")
	list, ok := tags.(*fields.ListField)
	if !ok {
		t.Fatalf("tags = %T, want *fields.ListField", tags)
	}
	if list.Child != nil {
		t.Fatalf("child = %T, want nil", list.Child)
	}
	if list.MaxLength == nil || *list.MaxLength != 5 {
		t.Fatalf("max length = %v, want 5", list.MaxLength)
	}
}

func TestParseSchemaOverride(t *testing.T) {
	cat, err := parseString(t, `
serializers:
  Point:
    fields:
      - name: location
        type: json
        schema:
          type: object
          title: Location
          properties:
            - name: lat
              type: number
            - name: lng
              type: number
      - name: level
        type: custom_level
        schema:
          type: enum
          enum: [1, 2, 3]
`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	point, _ := cat.Serializer("Point")

	location, _ := point.Field("location")
	want := coreschema.Object{
		Title: "Location",
		Properties: coreschema.Properties{
			{Name: "lat", Schema: coreschema.Number{}},
			{Name: "lng", Schema: coreschema.Number{}},
		},
	}
	if diff := cmp.Diff(want, location.Common().Schema); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}

	level, _ := point.Field("level")
	custom, ok := level.(*fields.Custom)
	if !ok || custom.Kind != "custom_level" {
		t.Fatalf("level = %#v, want custom field", level)
	}
	if diff := cmp.Diff(coreschema.Enum{Values: []any{1, 2, 3}}, custom.Schema); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSONDocument(t *testing.T) {
	doc := definitions.MustNewDocument(definitions.SourceFromFile("api.json"), []byte(`{
  "serializers": {"Ping": {"fields": [{"name": "ok", "type": "boolean"}]}},
  "endpoints": [{"path": "/ping/", "response": "Ping", "errors": {"503": "Down"}}]
}`))
	cat, err := New(definitions.NewParserOptions()).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cat.Endpoints[0].Errors[503] != "Down" {
		t.Fatalf("errors = %+v", cat.Endpoints[0].Errors)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		opts    []definitions.ParserOption
		want    string
	}{
		{
			name:    "unknown key",
			payload: "serializers:\n  A:\n    fields:\n      - name: x\n        colour: red\n",
			want:    "colour",
		},
		{
			name:    "missing field name",
			payload: "serializers:\n  A:\n    fields:\n      - type: char\n",
			want:    "name is required",
		},
		{
			name:    "duplicate field",
			payload: "serializers:\n  A:\n    fields:\n      - name: x\n      - name: x\n",
			want:    `duplicate field "x"`,
		},
		{
			name:    "unknown reference",
			payload: "serializers:\n  A:\n    fields:\n      - name: x\n        type: serializer\n        serializer: B\n",
			want:    `unknown serializer "B"`,
		},
		{
			name:    "bad regex",
			payload: "serializers:\n  A:\n    fields:\n      - name: x\n        type: regex\n        pattern: \"(\"\n",
			want:    "compile regex",
		},
		{
			name:    "fractional integer bound",
			payload: "serializers:\n  A:\n    fields:\n      - name: x\n        type: integer\n        max_value: 1.5\n",
			want:    "whole number",
		},
		{
			name:    "integer bound above int64",
			payload: "serializers:\n  A:\n    fields:\n      - name: x\n        type: integer\n        max_value: 1e30\n",
			want:    "max_value must be a whole number within the int64 range",
		},
		{
			name:    "integer bound below int64",
			payload: "serializers:\n  A:\n    fields:\n      - name: x\n        type: integer\n        min_value: -1e19\n",
			want:    "min_value must be a whole number within the int64 range",
		},
		{
			name:    "strict types",
			payload: "serializers:\n  A:\n    fields:\n      - name: x\n        type: markdown\n",
			opts:    []definitions.ParserOption{definitions.WithStrictTypes(true)},
			want:    `unknown field type "markdown"`,
		},
		{
			name:    "endpoint without path",
			payload: "endpoints:\n  - method: get\n",
			want:    "path is required",
		},
		{
			name:    "endpoint unknown serializer",
			payload: "endpoints:\n  - path: /x/\n    response: Missing\n",
			want:    `unknown serializer "Missing"`,
		},
		{
			name:    "endpoint bad method",
			payload: "endpoints:\n  - path: /x/\n    method: fetch\n",
			want:    "unsupported method",
		},
		{
			name:    "bad status code",
			payload: "endpoints:\n  - path: /x/\n    errors:\n      teapot: brew\n",
			want:    "invalid status code",
		},
		{
			name:    "bad language",
			payload: "translations:\n  \"not a tag!\":\n    a: b\n",
			want:    "language",
		},
		{
			name:    "bad schema type",
			payload: "serializers:\n  A:\n    fields:\n      - name: x\n        schema:\n          type: tuple\n",
			want:    `unknown schema type "tuple"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseString(t, tc.payload, tc.opts...)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want substring %q", err, tc.want)
			}
			if !strings.HasPrefix(err.Error(), "definitions parser:") {
				t.Fatalf("error %q lacks package prefix", err)
			}
		})
	}
}

func TestParseHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := definitions.MustNewDocument(definitions.SourceFromFile("a.yaml"), []byte("title: x\n"))
	if _, err := New(definitions.NewParserOptions()).Parse(ctx, doc); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
