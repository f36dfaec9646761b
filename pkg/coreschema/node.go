package coreschema

// Type names reported by TypeName. They match the JSON Schema/OpenAPI
// primitive names so encoders can use them directly.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Node is a schema description for a single field. The set of implementations
// is closed; use a type switch to inspect a node.
type Node interface {
	// Meta returns the title and description shared by every node kind.
	Meta() Meta
	node()
}

// Meta carries the human readable attributes common to all nodes.
type Meta struct {
	Title       string
	Description string
}

// String describes textual values.
type String struct {
	Title       string
	Description string
	Format      string
	Pattern     string
	MinLength   *int
	MaxLength   *int
}

// Number describes decimal or floating point values.
type Number struct {
	Title       string
	Description string
	Minimum     *float64
	Maximum     *float64
}

// Integer describes whole numbers.
type Integer struct {
	Title       string
	Description string
	Minimum     *int64
	Maximum     *int64
}

// Boolean describes true/false values.
type Boolean struct {
	Title       string
	Description string
}

// Enum restricts values to an ordered set.
type Enum struct {
	Title       string
	Description string
	Values      []any
}

// Array describes a list whose elements follow Items. Items may be nil when
// the element shape is unknown.
type Array struct {
	Title       string
	Description string
	Items       Node
}

// Object describes a mapping of named properties. A nil Properties slice
// means the object is schema-agnostic.
type Object struct {
	Title       string
	Description string
	Properties  Properties
}

func (n String) Meta() Meta  { return Meta{Title: n.Title, Description: n.Description} }
func (n Number) Meta() Meta  { return Meta{Title: n.Title, Description: n.Description} }
func (n Integer) Meta() Meta { return Meta{Title: n.Title, Description: n.Description} }
func (n Boolean) Meta() Meta { return Meta{Title: n.Title, Description: n.Description} }
func (n Enum) Meta() Meta    { return Meta{Title: n.Title, Description: n.Description} }
func (n Array) Meta() Meta   { return Meta{Title: n.Title, Description: n.Description} }
func (n Object) Meta() Meta  { return Meta{Title: n.Title, Description: n.Description} }

func (String) node()  {}
func (Number) node()  {}
func (Integer) node() {}
func (Boolean) node() {}
func (Enum) node()    {}
func (Array) node()   {}
func (Object) node()  {}

// Property pairs an object property name with its schema.
type Property struct {
	Name   string
	Schema Node
}

// Properties is an ordered list of object properties. Order follows the
// declaration order of the source fields.
type Properties []Property

// Lookup returns the schema registered under name.
func (p Properties) Lookup(name string) (Node, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// Names returns property names in declaration order.
func (p Properties) Names() []string {
	if len(p) == 0 {
		return nil
	}
	names := make([]string, 0, len(p))
	for _, prop := range p {
		names = append(names, prop.Name)
	}
	return names
}

// TypeName reports the documentation type for a node. Enums and unknown
// nodes report "string".
func TypeName(n Node) string {
	switch n.(type) {
	case String, *String:
		return TypeString
	case Integer, *Integer:
		return TypeInteger
	case Number, *Number:
		return TypeNumber
	case Boolean, *Boolean:
		return TypeBoolean
	case Array, *Array:
		return TypeArray
	case Object, *Object:
		return TypeObject
	default:
		return TypeString
	}
}
