package mapper

import (
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/message"
)

// Options configures the behaviour of the Mapper. Options are constructed by
// the public adapter in pkg/mapper and passed into New.
type Options struct {
	// Printer resolves translatable labels and help texts. Nil resolves keys
	// verbatim.
	Printer *message.Printer
	// Sanitizer, when set, is applied to every resolved title/description.
	Sanitizer *bluemonday.Policy
	// DisableCycleDetection restores unbounded recursion for callers that
	// guarantee acyclic input.
	DisableCycleDetection bool
}
