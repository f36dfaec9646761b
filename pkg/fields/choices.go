package fields

import (
	"fmt"
	"regexp"
)

// Choice is one allowed value of a choice field.
type Choice struct {
	Key   any
	Label string
}

// Choices is an ordered set of allowed values.
type Choices []Choice

// NewChoices builds choices whose labels are the keys' string form.
func NewChoices(keys ...any) Choices {
	out := make(Choices, 0, len(keys))
	for _, key := range keys {
		out = append(out, Choice{Key: key, Label: fmt.Sprint(key)})
	}
	return out
}

// Keys returns the choice keys in declaration order. Duplicate keys keep
// their first position.
func (c Choices) Keys() []any {
	if len(c) == 0 {
		return nil
	}
	keys := make([]any, 0, len(c))
	seen := make(map[any]struct{}, len(c))
	for _, choice := range c {
		if isComparable(choice.Key) {
			if _, dup := seen[choice.Key]; dup {
				continue
			}
			seen[choice.Key] = struct{}{}
		}
		keys = append(keys, choice.Key)
	}
	return keys
}

func isComparable(v any) bool {
	switch v.(type) {
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

// Validator is a constraint attached to a field. Only the descriptor is
// modelled; nothing here validates data.
type Validator interface {
	Name() string
}

// RegexValidator requires values to match Regex.
type RegexValidator struct {
	Regex   *regexp.Regexp
	Message string
	Inverse bool
}

// Name implements Validator.
func (RegexValidator) Name() string { return "regex" }

// MinLengthValidator requires at least Limit characters.
type MinLengthValidator struct {
	Limit int
}

// Name implements Validator.
func (MinLengthValidator) Name() string { return "min_length" }

// MaxLengthValidator allows at most Limit characters.
type MaxLengthValidator struct {
	Limit int
}

// Name implements Validator.
func (MaxLengthValidator) Name() string { return "max_length" }

// NewRegexField returns a RegexField validated by pattern. It returns an error
// when pattern does not compile.
func NewRegexField(pattern string) (*RegexField, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("fields: compile regex %q: %w", pattern, err)
	}
	return &RegexField{Validators: []Validator{RegexValidator{Regex: re}}}, nil
}

// MustNewRegexField panics if pattern does not compile. Useful for tests and
// package-level declarations.
func MustNewRegexField(pattern string) *RegexField {
	f, err := NewRegexField(pattern)
	if err != nil {
		panic(err)
	}
	return f
}
