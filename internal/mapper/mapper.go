package mapper

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-fieldschema/pkg/coreschema"
	"github.com/goliatone/go-fieldschema/pkg/fields"
)

var (
	// ErrNilField reports a nil descriptor where a field was required.
	ErrNilField = errors.New("field mapper: field is nil")
	// ErrMissingChild reports a ListSerializer without a child serializer.
	ErrMissingChild = errors.New("field mapper: container field has no child")
	// ErrRecursiveField reports a field structure that contains itself.
	ErrRecursiveField = errors.New("field mapper: recursive field structure")
)

// Mapper converts field descriptors into schema nodes. It holds no mutable
// state and may be shared between goroutines.
type Mapper struct {
	opts Options
}

// New creates a Mapper with the supplied options.
func New(options Options) *Mapper {
	return &Mapper{opts: options}
}

// Map returns the schema node describing field. Missing optional attributes
// never fail; only contract violations (nil descriptors, recursive
// structures) produce errors.
func (m *Mapper) Map(field fields.Field) (coreschema.Node, error) {
	w := walker{opts: m.opts}
	if !m.opts.DisableCycleDetection {
		w.active = make(map[fields.Field]struct{})
	}
	return w.node(field, "")
}

type walker struct {
	opts   Options
	active map[fields.Field]struct{}
}

func (w *walker) node(field fields.Field, path string) (coreschema.Node, error) {
	if isNil(field) {
		return nil, wrapPath(ErrNilField, path)
	}

	base := field.Common()
	if base.Schema != nil {
		return base.Schema, nil
	}

	title := w.text(base.Label)
	description := w.text(base.HelpText)

	switch f := field.(type) {
	case *fields.ListField:
		if isNil(f.Child) {
			// An unvalidated list documents its items as plain strings.
			return coreschema.Array{Title: title, Description: description, Items: coreschema.String{}}, nil
		}
		return w.array(f, f.Child, title, description, path)
	case *fields.ListSerializer:
		return w.array(f, f.Child, title, description, path)
	case *fields.Serializer:
		return w.object(f, title, description, path)
	case *fields.ManyRelatedField:
		return coreschema.Array{
			Title:       title,
			Description: description,
			Items:       coreschema.String{},
		}, nil
	case *fields.RelatedField:
		return coreschema.String{Title: title, Description: description}, nil
	case *fields.MultipleChoiceField:
		return coreschema.Array{
			Title:       title,
			Description: description,
			Items:       coreschema.Enum{Values: f.Choices.Keys()},
		}, nil
	case *fields.ChoiceField:
		return coreschema.Enum{Title: title, Description: description, Values: f.Choices.Keys()}, nil
	case *fields.FilePathField:
		return coreschema.Enum{Title: title, Description: description, Values: f.Choices.Keys()}, nil
	case *fields.BooleanField:
		return coreschema.Boolean{Title: title, Description: description}, nil
	case *fields.DecimalField:
		return coreschema.Number{
			Title:       title,
			Description: description,
			Minimum:     cloneFloat(f.MinValue),
			Maximum:     cloneFloat(f.MaxValue),
		}, nil
	case *fields.FloatField:
		return coreschema.Number{
			Title:       title,
			Description: description,
			Minimum:     cloneFloat(f.MinValue),
			Maximum:     cloneFloat(f.MaxValue),
		}, nil
	case *fields.IntegerField:
		return coreschema.Integer{
			Title:       title,
			Description: description,
			Minimum:     cloneInt64(f.MinValue),
			Maximum:     cloneInt64(f.MaxValue),
		}, nil
	case *fields.UUIDField:
		return coreschema.String{
			Title:       title,
			Description: description,
			Pattern:     uuidPattern(f.Format),
		}, nil
	case *fields.RegexField:
		return coreschema.String{
			Title:       title,
			Description: description,
			Pattern:     regexPattern(f.Validators),
			MaxLength:   cloneInt(f.MaxLength),
			MinLength:   cloneInt(f.MinLength),
		}, nil
	case *fields.URLField:
		return coreschema.String{
			Title:       title,
			Description: description,
			Pattern:     URLPattern,
			MaxLength:   cloneInt(f.MaxLength),
			MinLength:   cloneInt(f.MinLength),
		}, nil
	case *fields.JSONField:
		return coreschema.Object{Title: title, Description: description}, nil
	}

	return fallback(field, base, title, description), nil
}

func (w *walker) array(owner, child fields.Field, title, description, path string) (coreschema.Node, error) {
	if isNil(child) {
		return nil, wrapPath(ErrMissingChild, path)
	}
	leave, err := w.enter(owner, path)
	if err != nil {
		return nil, err
	}
	defer leave()

	items, err := w.node(child, path+"[]")
	if err != nil {
		return nil, err
	}
	return coreschema.Array{Title: title, Description: description, Items: items}, nil
}

func (w *walker) object(s *fields.Serializer, title, description, path string) (coreschema.Node, error) {
	leave, err := w.enter(s, path)
	if err != nil {
		return nil, err
	}
	defer leave()

	var props coreschema.Properties
	if len(s.Fields) > 0 {
		props = make(coreschema.Properties, 0, len(s.Fields))
	}
	for _, nf := range s.Fields {
		child, err := w.node(nf.Field, childPath(path, nf.Name))
		if err != nil {
			return nil, err
		}
		props = append(props, coreschema.Property{Name: nf.Name, Schema: child})
	}
	return coreschema.Object{Title: title, Description: description, Properties: props}, nil
}

// enter marks a container as being on the current descent path.
func (w *walker) enter(container fields.Field, path string) (func(), error) {
	if w.active == nil {
		return func() {}, nil
	}
	if _, seen := w.active[container]; seen {
		return nil, wrapPath(ErrRecursiveField, path)
	}
	w.active[container] = struct{}{}
	return func() { delete(w.active, container) }, nil
}

func fallback(field fields.Field, base *fields.Base, title, description string) coreschema.Node {
	node := coreschema.String{Title: title, Description: description}
	if bounded, ok := field.(fields.LengthBounded); ok {
		minLength, maxLength := bounded.LengthBounds()
		node.MinLength = cloneInt(minLength)
		node.MaxLength = cloneInt(maxLength)
	}
	if base.Style.Get(fields.StyleBaseTemplate) == fields.TemplateTextarea {
		node.Format = TextareaFormat
	}
	return node
}

func (w *walker) text(t fields.Text) string {
	if t == nil {
		return ""
	}
	out := t.Resolve(w.opts.Printer)
	if w.opts.Sanitizer != nil {
		out = stripHTML(w.opts.Sanitizer, out)
	}
	return out
}

const maxStripPasses = 8

// stripHTML sanitizes and unescapes until the text is stable, so entity
// encoded markup cannot come back as live tags. Text still changing after
// maxStripPasses is returned sanitized and escaped.
func stripHTML(policy *bluemonday.Policy, s string) string {
	for i := 0; i < maxStripPasses; i++ {
		next := html.UnescapeString(policy.Sanitize(s))
		if next == s {
			return strings.TrimSpace(next)
		}
		s = next
	}
	return strings.TrimSpace(policy.Sanitize(s))
}

func wrapPath(err error, path string) error {
	if path == "" {
		return err
	}
	return fmt.Errorf("%w at %q", err, path)
}

func childPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// isNil also catches typed nil pointers stored in the interface.
func isNil(field fields.Field) bool {
	if field == nil {
		return true
	}
	v := reflect.ValueOf(field)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
