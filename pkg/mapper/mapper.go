package mapper

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/goliatone/go-fieldschema/internal/mapper"
	"github.com/goliatone/go-fieldschema/pkg/coreschema"
	"github.com/goliatone/go-fieldschema/pkg/fields"
)

// Patterns surfaced in generated documentation. They are part of the output
// contract and must not change.
const (
	URLPattern            = mapper.URLPattern
	UUIDHexVerbosePattern = mapper.UUIDHexVerbosePattern
	UUIDHexPattern        = mapper.UUIDHexPattern
	UUIDURNPattern        = mapper.UUIDURNPattern
	TextareaFormat        = mapper.TextareaFormat
)

// Contract violations reported by Map.
var (
	ErrNilField       = mapper.ErrNilField
	ErrMissingChild   = mapper.ErrMissingChild
	ErrRecursiveField = mapper.ErrRecursiveField
)

// Mapper converts serializer fields into schema nodes.
type Mapper interface {
	Map(field fields.Field) (coreschema.Node, error)
}

// Option configures the mapper behaviour.
type Option func(*mapperOptions)

type mapperOptions struct {
	printer   *message.Printer
	sanitizer *bluemonday.Policy
	noCycles  bool
}

// WithPrinter resolves translatable labels and help texts through printer.
func WithPrinter(printer *message.Printer) Option {
	return func(opts *mapperOptions) {
		opts.printer = printer
	}
}

// WithLanguage resolves translatable text for tag. When cat is nil the
// x/text default catalog is used.
func WithLanguage(tag language.Tag, cat catalog.Catalog) Option {
	return func(opts *mapperOptions) {
		if cat != nil {
			opts.printer = message.NewPrinter(tag, message.Catalog(cat))
			return
		}
		opts.printer = message.NewPrinter(tag)
	}
}

// WithHTMLSanitizer filters titles and descriptions through policy.
func WithHTMLSanitizer(policy *bluemonday.Policy) Option {
	return func(opts *mapperOptions) {
		opts.sanitizer = policy
	}
}

// WithStrippedHTML removes every HTML tag from titles and descriptions.
func WithStrippedHTML() Option {
	return WithHTMLSanitizer(strictPolicy())
}

// WithCycleDetection toggles detection of self-referencing field structures.
// It is enabled by default; disabling it recurses without bound on cyclic
// input.
func WithCycleDetection(enabled bool) Option {
	return func(opts *mapperOptions) {
		opts.noCycles = !enabled
	}
}

// New returns a Mapper backed by the internal implementation.
func New(options ...Option) Mapper {
	cfg := mapperOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return mapper.New(mapper.Options{
		Printer:               cfg.printer,
		Sanitizer:             cfg.sanitizer,
		DisableCycleDetection: cfg.noCycles,
	})
}

var defaultMapper = New()

// FieldToSchema maps field with the default configuration. It panics on
// contract violations (see Map); use New(...).Map to receive them as errors.
func FieldToSchema(field fields.Field) coreschema.Node {
	node, err := defaultMapper.Map(field)
	if err != nil {
		panic(err)
	}
	return node
}

var (
	strictPolicyOnce sync.Once
	strictPolicyVal  *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicyVal = bluemonday.StrictPolicy()
	})
	return strictPolicyVal
}
