package validation

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	internalParser "github.com/goliatone/go-fieldschema/internal/definitions/parser"
	"github.com/goliatone/go-fieldschema/pkg/definitions"
	"github.com/goliatone/go-fieldschema/pkg/fields"
	"github.com/goliatone/go-fieldschema/pkg/mapper"
)

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes for a definitions document.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Options configures validation behaviour.
type Options struct {
	// Parser overrides the built-in definitions parser.
	Parser definitions.Parser
	// AllowRecursive skips the check that every serializer maps without
	// running into itself.
	AllowRecursive bool
}

// ValidateDefinitions parses raw and reports problems that would surface
// later while generating documentation: parse errors, serializers that cannot
// be mapped, and translatable texts missing from a declared language.
func ValidateDefinitions(ctx context.Context, src definitions.Source, raw []byte, opts Options) Result {
	result := Result{Valid: true}
	if src == nil {
		src = definitions.SourceFromFS("definitions.yaml")
	}

	doc, err := definitions.NewDocument(src, raw)
	if err != nil {
		return invalid(issueFromError(err))
	}

	parser := opts.Parser
	if parser == nil {
		parser = internalParser.New(definitions.NewParserOptions())
	}
	cat, err := parser.Parse(ctx, doc)
	if err != nil {
		return invalid(issueFromError(err))
	}

	m := mapper.New()
	for _, name := range cat.Names() {
		s, _ := cat.Serializer(name)
		if _, err := m.Map(s); err != nil {
			if opts.AllowRecursive && errors.Is(err, mapper.ErrRecursiveField) {
				continue
			}
			result.Issues = append(result.Issues, mappingIssue(name, err))
		}
	}

	result.Issues = append(result.Issues, translationIssues(cat)...)
	result.Valid = len(result.Issues) == 0
	return result
}

func invalid(issue Issue) Result {
	return Result{Valid: false, Issues: []Issue{issue}}
}

var pathSuffix = regexp.MustCompile(` at "([^"]*)"$`)

func mappingIssue(serializer string, err error) Issue {
	msg := strings.TrimSpace(err.Error())
	path := ""
	if match := pathSuffix.FindStringSubmatch(msg); match != nil {
		path = match[1]
		msg = strings.TrimSuffix(msg, match[0])
	}
	msg = strings.TrimPrefix(msg, "field mapper: ")

	field := serializer
	if path != "" {
		field = serializer + "." + path
	}
	return Issue{Path: path, Field: field, Message: msg}
}

var quoted = regexp.MustCompile(`(serializer|field) "([^"]+)"`)

// issueFromError turns a parser error into an issue. Serializer and field
// names quoted in the message become the dotted field path.
func issueFromError(err error) Issue {
	if err == nil {
		return Issue{Message: "unknown error"}
	}
	msg := strings.TrimSpace(err.Error())
	msg = strings.TrimPrefix(msg, "definitions parser: ")
	msg = strings.TrimPrefix(msg, "definitions: ")

	var parts []string
	for _, match := range quoted.FindAllStringSubmatch(msg, -1) {
		parts = append(parts, match[2])
	}
	return Issue{Field: strings.Join(parts, "."), Message: msg}
}

// translationIssues reports translatable keys that a declared language does
// not define.
func translationIssues(cat *definitions.Catalog) []Issue {
	translations := cat.Translations()
	if translations == nil || len(translations.Languages()) == 0 {
		return nil
	}
	c := &translationChecker{
		tags:     translations.Languages(),
		printers: make(map[language.Tag]*message.Printer),
		seen:     make(map[fields.Field]struct{}),
	}
	for _, tag := range c.tags {
		c.printers[tag] = message.NewPrinter(tag, message.Catalog(translations))
	}

	for _, name := range cat.Names() {
		s, _ := cat.Serializer(name)
		c.check(name, s.Label, s.HelpText)
		for _, nf := range s.Fields {
			c.visit(name+"."+nf.Name, nf.Field)
		}
	}
	return c.issues
}

type translationChecker struct {
	tags     []language.Tag
	printers map[language.Tag]*message.Printer
	seen     map[fields.Field]struct{}
	issues   []Issue
}

func (c *translationChecker) visit(path string, f fields.Field) {
	if f == nil {
		return
	}
	if _, ok := c.seen[f]; ok {
		return
	}
	c.seen[f] = struct{}{}

	base := f.Common()
	c.check(path, base.Label, base.HelpText)

	switch v := f.(type) {
	case *fields.Serializer:
		for _, nf := range v.Fields {
			c.visit(path+"."+nf.Name, nf.Field)
		}
	case *fields.ListSerializer:
		c.visit(path+"[]", v.Child)
	case *fields.ListField:
		c.visit(path+"[]", v.Child)
	case *fields.DictField:
		c.visit(path+"{}", v.Child)
	}
}

// notFound is printed by the catalog lookup when neither the key nor the
// fallback exist. It contains no format verbs.
const notFound = "\x00missing translation\x00"

// check flags keys the catalog has no message for in a declared language.
func (c *translationChecker) check(path string, texts ...fields.Text) {
	for _, t := range texts {
		key, ok := t.(fields.Translatable)
		if !ok {
			continue
		}
		for _, tag := range c.tags {
			if c.printers[tag].Sprintf(message.Key(key.Key, notFound)) == notFound {
				c.issues = append(c.issues, Issue{
					Field:   path,
					Message: "missing " + tag.String() + " translation for " + key.Key,
				})
			}
		}
	}
}
