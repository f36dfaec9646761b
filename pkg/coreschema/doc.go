// Package coreschema defines the schema nodes produced from serializer fields.
// The vocabulary is intentionally small (String, Number, Integer, Boolean,
// Enum, Array, Object) and mirrors what documentation layers consume. Every
// node carries a title and description, either of which may be empty.
package coreschema
