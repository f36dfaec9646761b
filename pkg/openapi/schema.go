package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-fieldschema/pkg/coreschema"
)

// SchemaFromNode converts a coreschema node into a kin-openapi schema. A nil
// node yields an empty schema, which accepts any value. Property order is not
// preserved because kin-openapi stores properties in a map.
func SchemaFromNode(node coreschema.Node) *openapi3.Schema {
	switch n := node.(type) {
	case nil:
		return &openapi3.Schema{}
	case *coreschema.String:
		return SchemaFromNode(derefOr(n))
	case *coreschema.Number:
		return SchemaFromNode(derefOr(n))
	case *coreschema.Integer:
		return SchemaFromNode(derefOr(n))
	case *coreschema.Boolean:
		return SchemaFromNode(derefOr(n))
	case *coreschema.Enum:
		return SchemaFromNode(derefOr(n))
	case *coreschema.Array:
		return SchemaFromNode(derefOr(n))
	case *coreschema.Object:
		return SchemaFromNode(derefOr(n))
	case coreschema.String:
		schema := openapi3.NewStringSchema()
		schema.Format = n.Format
		schema.Pattern = n.Pattern
		if n.MinLength != nil && *n.MinLength > 0 {
			schema.MinLength = uint64(*n.MinLength)
		}
		if n.MaxLength != nil && *n.MaxLength >= 0 {
			value := uint64(*n.MaxLength)
			schema.MaxLength = &value
		}
		return withMeta(schema, n.Meta())
	case coreschema.Number:
		schema := openapi3.NewFloat64Schema()
		schema.Min = copyFloat(n.Minimum)
		schema.Max = copyFloat(n.Maximum)
		return withMeta(schema, n.Meta())
	case coreschema.Integer:
		schema := openapi3.NewIntegerSchema()
		if n.Minimum != nil {
			value := float64(*n.Minimum)
			schema.Min = &value
		}
		if n.Maximum != nil {
			value := float64(*n.Maximum)
			schema.Max = &value
		}
		return withMeta(schema, n.Meta())
	case coreschema.Boolean:
		return withMeta(openapi3.NewBoolSchema(), n.Meta())
	case coreschema.Enum:
		schema := &openapi3.Schema{Type: &openapi3.Types{enumType(n.Values)}}
		if len(n.Values) > 0 {
			schema.Enum = append([]any(nil), n.Values...)
		}
		return withMeta(schema, n.Meta())
	case coreschema.Array:
		schema := openapi3.NewArraySchema()
		schema.Items = openapi3.NewSchemaRef("", SchemaFromNode(n.Items))
		return withMeta(schema, n.Meta())
	case coreschema.Object:
		schema := openapi3.NewObjectSchema()
		for _, prop := range n.Properties {
			if schema.Properties == nil {
				schema.Properties = make(openapi3.Schemas, len(n.Properties))
			}
			schema.Properties[prop.Name] = openapi3.NewSchemaRef("", SchemaFromNode(prop.Schema))
		}
		return withMeta(schema, n.Meta())
	default:
		return withMeta(openapi3.NewStringSchema(), node.Meta())
	}
}

func withMeta(schema *openapi3.Schema, meta coreschema.Meta) *openapi3.Schema {
	schema.Title = meta.Title
	schema.Description = meta.Description
	return schema
}

// enumType infers the JSON type of an enum from its values. Mixed or empty
// sets are documented as strings.
func enumType(values []any) string {
	if len(values) == 0 {
		return openapi3.TypeString
	}
	kind := ""
	for _, value := range values {
		var current string
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			current = openapi3.TypeInteger
		case float32, float64:
			current = openapi3.TypeNumber
		case bool:
			current = openapi3.TypeBoolean
		default:
			return openapi3.TypeString
		}
		switch {
		case kind == "":
			kind = current
		case kind == current:
		case kind == openapi3.TypeInteger && current == openapi3.TypeNumber,
			kind == openapi3.TypeNumber && current == openapi3.TypeInteger:
			kind = openapi3.TypeNumber
		default:
			return openapi3.TypeString
		}
	}
	return kind
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func derefOr[T any](p *T) coreschema.Node {
	if p == nil {
		return nil
	}
	node, _ := any(*p).(coreschema.Node)
	return node
}
