package validation

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldschema/pkg/definitions"
)

func validate(t *testing.T, raw string, opts Options) Result {
	t.Helper()
	return ValidateDefinitions(context.Background(), definitions.SourceFromFS("defs.yaml"), []byte(raw), opts)
}

func TestValidateDefinitions_Valid(t *testing.T) {
	result := validate(t, `
serializers:
  Snippet:
    fields:
      - name: title
        label: snippet.title
        translate: true
translations:
  es:
    snippet.title: Título
`, Options{})
	if !result.Valid {
		t.Fatalf("expected definitions to be valid: %#v", result.Issues)
	}
}

func TestValidateDefinitions_ParseErrorFieldPath(t *testing.T) {
	result := validate(t, `
serializers:
  Snippet:
    fields:
      - name: count
        type: integer
        max_value: 1.5
`, Options{})
	if result.Valid {
		t.Fatalf("expected definitions to be invalid")
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %#v, want one", result.Issues)
	}
	issue := result.Issues[0]
	if issue.Field != "Snippet.count" {
		t.Fatalf("field = %q, want Snippet.count", issue.Field)
	}
	if strings.HasPrefix(issue.Message, "definitions parser:") {
		t.Fatalf("message should drop the package prefix: %q", issue.Message)
	}
}

func TestValidateDefinitions_Recursive(t *testing.T) {
	raw := `
serializers:
  Category:
    fields:
      - name: children
        type: serializer
        serializer: Category
        many: true
`
	result := validate(t, raw, Options{})
	if result.Valid {
		t.Fatalf("expected recursive serializer to be reported")
	}
	want := Issue{
		Path:    "children[].children",
		Field:   "Category.children[].children",
		Message: "recursive field structure",
	}
	if diff := cmp.Diff([]Issue{want}, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	if result := validate(t, raw, Options{AllowRecursive: true}); !result.Valid {
		t.Fatalf("recursive serializers should be allowed: %#v", result.Issues)
	}
}

func TestValidateDefinitions_MissingTranslation(t *testing.T) {
	result := validate(t, `
serializers:
  Snippet:
    label: snippet.label
    translate: true
    fields:
      - name: title
        label: snippet.title
        translate: true
translations:
  es:
    snippet.label: Fragmento
`, Options{})
	if result.Valid {
		t.Fatalf("expected missing translation to be reported")
	}
	want := []Issue{{Field: "Snippet.title", Message: "missing es translation for snippet.title"}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateDefinitions_EmptyDocument(t *testing.T) {
	result := validate(t, "   ", Options{})
	if result.Valid || len(result.Issues) != 1 || result.Issues[0].Message != "document is empty" {
		t.Fatalf("result = %#v", result)
	}
}

func TestValidateDefinitions_TranslationEqualToKey(t *testing.T) {
	result := validate(t, `
serializers:
  Snippet:
    fields:
      - name: code
        label: Code
        translate: true
      - name: discount
        label: Discount %
        translate: true
translations:
  fr:
    Code: Code
    Discount %: Remise %
`, Options{})
	if !result.Valid {
		t.Fatalf("identical and percent translations should count as present: %#v", result.Issues)
	}
}

func TestValidateDefinitions_MissingPercentKey(t *testing.T) {
	result := validate(t, `
serializers:
  Snippet:
    fields:
      - name: discount
        label: Discount %
        translate: true
translations:
  fr:
    Other: Autre
`, Options{})
	want := []Issue{{Field: "Snippet.discount", Message: "missing fr translation for Discount %"}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}
