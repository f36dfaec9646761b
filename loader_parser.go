package fieldschema

import (
	internalLoader "github.com/goliatone/go-fieldschema/internal/definitions/loader"
	internalParser "github.com/goliatone/go-fieldschema/internal/definitions/parser"
	"github.com/goliatone/go-fieldschema/pkg/definitions"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...definitions.LoaderOption) definitions.Loader {
	cfg := definitions.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...definitions.ParserOption) definitions.Parser {
	cfg := definitions.NewParserOptions(options...)
	return internalParser.New(cfg)
}
