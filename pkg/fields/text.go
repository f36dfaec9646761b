package fields

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"
)

// Text is a lazily resolved piece of user-facing text such as a label or help
// text. Resolution happens when a schema is built so translatable strings pick
// up the printer (and therefore the language) active at that point. A nil
// Text means the attribute is absent.
type Text interface {
	Resolve(p *message.Printer) string
}

// Plain is literal text that never changes with the language.
type Plain string

// Resolve returns the literal value.
func (t Plain) Resolve(*message.Printer) string {
	return string(t)
}

// Translatable is a catalog key resolved through an x/text printer. Args are
// substituted the same way message.Printer.Sprintf does.
type Translatable struct {
	Key  string
	Args []any
}

// Translate returns a Translatable for key.
func Translate(key string, args ...any) Translatable {
	return Translatable{Key: key, Args: args}
}

// Resolve looks the key up in the printer's catalog. Without a printer the
// key is formatted as is. A key without Args is never treated as a format,
// so a missing "Discount %" resolves to itself.
func (t Translatable) Resolve(p *message.Printer) string {
	if len(t.Args) == 0 {
		if p == nil {
			return t.Key
		}
		return p.Sprintf(message.Key(t.Key, EscapeFormat(t.Key)))
	}
	if p == nil {
		return fmt.Sprintf(t.Key, t.Args...)
	}
	return p.Sprintf(t.Key, t.Args...)
}

// EscapeFormat doubles every '%' so s prints literally through a printf
// style formatter. Catalog messages for keys without Args should be stored
// escaped.
func EscapeFormat(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

// TextFunc defers text computation until resolution.
type TextFunc func(p *message.Printer) string

// Resolve invokes the function. A nil function resolves to "".
func (f TextFunc) Resolve(p *message.Printer) string {
	if f == nil {
		return ""
	}
	return f(p)
}

// Style holds rendering hints attached to a field (for example which
// template renders it).
type Style map[string]string

const (
	// StyleBaseTemplate names the template used to render the input.
	StyleBaseTemplate = "base_template"
	// TemplateTextarea marks multi-line text inputs.
	TemplateTextarea = "textarea.html"
)

// Get returns the hint stored under key. It is safe on a nil Style.
func (s Style) Get(key string) string {
	if s == nil {
		return ""
	}
	return s[key]
}
