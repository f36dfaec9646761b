package parser

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-fieldschema/pkg/coreschema"
	"github.com/goliatone/go-fieldschema/pkg/fields"
)

func text(value string, translate bool) fields.Text {
	if value == "" {
		return nil
	}
	if translate {
		return fields.Translate(value)
	}
	return fields.Plain(value)
}

func (b *builder) base(spec fieldSpec) (fields.Base, error) {
	base := fields.Base{
		Label:    text(spec.Label, spec.Translate),
		HelpText: text(spec.HelpText, spec.Translate),
		Required: spec.Required,
		ReadOnly: spec.ReadOnly,
	}
	if len(spec.Style) > 0 {
		base.Style = make(fields.Style, len(spec.Style))
		for k, v := range spec.Style {
			base.Style[k] = v
		}
	}
	if spec.Schema != nil {
		node, err := schemaNode(*spec.Schema)
		if err != nil {
			return fields.Base{}, fmt.Errorf("schema: %w", err)
		}
		base.Schema = node
	}
	return base, nil
}

// field builds the descriptor for one spec. Type names follow the snake_case
// spelling of the serializer field classes.
func (b *builder) field(spec fieldSpec) (fields.Field, error) {
	base, err := b.base(spec)
	if err != nil {
		return nil, err
	}
	kind := strings.ToLower(strings.TrimSpace(spec.Type))

	switch kind {
	case "", "char", "string":
		return &fields.CharField{Base: base, MinLength: spec.MinLength, MaxLength: spec.MaxLength, TrimWhitespace: true}, nil
	case "email":
		return &fields.EmailField{Base: base, MinLength: spec.MinLength, MaxLength: spec.MaxLength}, nil
	case "slug":
		return &fields.SlugField{Base: base, MinLength: spec.MinLength, MaxLength: spec.MaxLength}, nil
	case "url":
		return &fields.URLField{Base: base, MinLength: spec.MinLength, MaxLength: spec.MaxLength}, nil
	case "regex":
		if spec.Pattern == "" {
			return nil, errors.New("regex fields need a pattern")
		}
		f, err := fields.NewRegexField(spec.Pattern)
		if err != nil {
			return nil, err
		}
		f.Base = base
		f.MinLength = spec.MinLength
		f.MaxLength = spec.MaxLength
		return f, nil
	case "uuid":
		format := fields.UUIDFormat(spec.Format)
		if format == "" {
			format = fields.UUIDHexVerbose
		}
		return &fields.UUIDField{Base: base, Format: format}, nil
	case "integer", "int":
		min, err := wholeNumber(spec.MinValue, "min_value")
		if err != nil {
			return nil, err
		}
		max, err := wholeNumber(spec.MaxValue, "max_value")
		if err != nil {
			return nil, err
		}
		return &fields.IntegerField{Base: base, MinValue: min, MaxValue: max}, nil
	case "float":
		return &fields.FloatField{Base: base, MinValue: spec.MinValue, MaxValue: spec.MaxValue}, nil
	case "decimal":
		return &fields.DecimalField{
			Base:          base,
			MaxDigits:     spec.MaxDigits,
			DecimalPlaces: spec.DecimalPlaces,
			MinValue:      spec.MinValue,
			MaxValue:      spec.MaxValue,
		}, nil
	case "boolean", "bool":
		return &fields.BooleanField{Base: base}, nil
	case "choice":
		choices, err := parseChoices(spec.Choices)
		if err != nil {
			return nil, err
		}
		return &fields.ChoiceField{Base: base, Choices: choices}, nil
	case "multiple_choice":
		choices, err := parseChoices(spec.Choices)
		if err != nil {
			return nil, err
		}
		return &fields.MultipleChoiceField{Base: base, Choices: choices, AllowEmpty: !spec.Required}, nil
	case "file_path":
		choices, err := parseChoices(spec.Choices)
		if err != nil {
			return nil, err
		}
		return &fields.FilePathField{Base: base, Path: spec.Path, Choices: choices}, nil
	case "related", "many_related":
		child := &fields.RelatedField{Kind: relatedKind(spec.Relation)}
		if child.Kind == fields.RelatedSlug {
			child.SlugField = "slug"
		}
		if kind == "many_related" || spec.Many {
			return &fields.ManyRelatedField{Base: base, ChildRelation: child}, nil
		}
		child.Base = base
		return child, nil
	case "list":
		f := &fields.ListField{Base: base, MinLength: spec.MinLength, MaxLength: spec.MaxLength}
		if spec.Child != nil {
			child, err := b.field(*spec.Child)
			if err != nil {
				return nil, fmt.Errorf("child: %w", err)
			}
			f.Child = child
		}
		return f, nil
	case "dict":
		f := &fields.DictField{Base: base}
		if spec.Child != nil {
			child, err := b.field(*spec.Child)
			if err != nil {
				return nil, fmt.Errorf("child: %w", err)
			}
			f.Child = child
		}
		return f, nil
	case "serializer", "nested":
		return b.nested(spec, base)
	case "json":
		return &fields.JSONField{Base: base}, nil
	case "date":
		return &fields.DateField{Base: base, Format: spec.Format}, nil
	case "datetime":
		return &fields.DateTimeField{Base: base, Format: spec.Format}, nil
	case "time":
		return &fields.TimeField{Base: base, Format: spec.Format}, nil
	case "duration":
		return &fields.DurationField{Base: base}, nil
	case "file", "image":
		return &fields.FileField{Base: base, MaxLength: spec.MaxLength}, nil
	case "read_only":
		return &fields.ReadOnlyField{Base: base}, nil
	case "method":
		return &fields.SerializerMethodField{Base: base}, nil
	}

	if b.strict {
		return nil, fmt.Errorf("unknown field type %q", spec.Type)
	}
	return &fields.Custom{Base: base, Kind: kind, MinLength: spec.MinLength, MaxLength: spec.MaxLength}, nil
}

// nested builds a serializer field either inline from spec.Fields or as a
// reference to a named serializer. References get their own Serializer value,
// so field level attributes stay local, and pick up the canonical children
// once every serializer is populated.
func (b *builder) nested(spec fieldSpec, base fields.Base) (fields.Field, error) {
	var s *fields.Serializer
	switch {
	case spec.Serializer != "" && len(spec.Fields) > 0:
		return nil, errors.New("nested serializer declares both serializer and fields")
	case spec.Serializer != "":
		if _, ok := b.canonical[spec.Serializer]; !ok {
			return nil, fmt.Errorf("unknown serializer %q", spec.Serializer)
		}
		s = fields.NewSerializer(spec.Serializer)
		b.pending = append(b.pending, reference{target: s, name: spec.Serializer})
	default:
		children, err := b.children(spec.Fields, spec.Name)
		if err != nil {
			return nil, err
		}
		s = &fields.Serializer{Name: spec.Name, Fields: children}
	}

	if spec.Many {
		return &fields.ListSerializer{Base: base, Child: s}, nil
	}
	s.Base = base
	return s, nil
}

func relatedKind(raw string) fields.RelatedKind {
	switch fields.RelatedKind(strings.ToLower(raw)) {
	case fields.RelatedHyperlinked:
		return fields.RelatedHyperlinked
	case fields.RelatedHyperlinkedIdentity:
		return fields.RelatedHyperlinkedIdentity
	case fields.RelatedSlug:
		return fields.RelatedSlug
	case fields.RelatedString:
		return fields.RelatedString
	default:
		return fields.RelatedPrimaryKey
	}
}

func wholeNumber(v *float64, key string) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	if *v != math.Trunc(*v) || math.IsInf(*v, 0) {
		return nil, fmt.Errorf("%s must be a whole number, got %v", key, *v)
	}
	if *v >= 1<<63 || *v < -(1<<63) {
		return nil, fmt.Errorf("%s must be a whole number within the int64 range, got %v", key, *v)
	}
	return fields.Int64(int64(*v)), nil
}

// parseChoices accepts scalars or {value, label} mappings.
func parseChoices(raw []any) (fields.Choices, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(fields.Choices, 0, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case map[string]any:
			key, ok := v["value"]
			if !ok {
				return nil, fmt.Errorf("choice %d: value is required", i)
			}
			label := fmt.Sprint(key)
			if l, ok := v["label"]; ok {
				label = fmt.Sprint(l)
			}
			out = append(out, fields.Choice{Key: key, Label: label})
		case []any, map[any]any:
			return nil, fmt.Errorf("choice %d: unsupported value %v", i, v)
		default:
			out = append(out, fields.Choice{Key: v, Label: fmt.Sprint(v)})
		}
	}
	return out, nil
}

func schemaNode(spec schemaSpec) (coreschema.Node, error) {
	switch strings.ToLower(spec.Type) {
	case coreschema.TypeString, "":
		return coreschema.String{
			Title:       spec.Title,
			Description: spec.Description,
			Format:      spec.Format,
			Pattern:     spec.Pattern,
			MinLength:   spec.MinLength,
			MaxLength:   spec.MaxLength,
		}, nil
	case coreschema.TypeNumber:
		return coreschema.Number{
			Title:       spec.Title,
			Description: spec.Description,
			Minimum:     spec.Minimum,
			Maximum:     spec.Maximum,
		}, nil
	case coreschema.TypeInteger:
		min, err := wholeNumber(spec.Minimum, "minimum")
		if err != nil {
			return nil, err
		}
		max, err := wholeNumber(spec.Maximum, "maximum")
		if err != nil {
			return nil, err
		}
		return coreschema.Integer{Title: spec.Title, Description: spec.Description, Minimum: min, Maximum: max}, nil
	case coreschema.TypeBoolean:
		return coreschema.Boolean{Title: spec.Title, Description: spec.Description}, nil
	case "enum":
		return coreschema.Enum{Title: spec.Title, Description: spec.Description, Values: append([]any(nil), spec.Enum...)}, nil
	case coreschema.TypeArray:
		arr := coreschema.Array{Title: spec.Title, Description: spec.Description}
		if spec.Items != nil {
			items, err := schemaNode(*spec.Items)
			if err != nil {
				return nil, fmt.Errorf("items: %w", err)
			}
			arr.Items = items
		}
		return arr, nil
	case coreschema.TypeObject:
		obj := coreschema.Object{Title: spec.Title, Description: spec.Description}
		if len(spec.Properties) > 0 {
			obj.Properties = make(coreschema.Properties, 0, len(spec.Properties))
			for _, prop := range spec.Properties {
				if prop.Name == "" {
					return nil, errors.New("object property name is required")
				}
				node, err := schemaNode(prop.schemaSpec)
				if err != nil {
					return nil, fmt.Errorf("property %q: %w", prop.Name, err)
				}
				obj.Properties = append(obj.Properties, coreschema.Property{Name: prop.Name, Schema: node})
			}
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unknown schema type %q", spec.Type)
	}
}
