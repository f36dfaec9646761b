package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-fieldschema/pkg/definitions"
)

// Loader implements definitions.Loader. Each source kind has its own fetch
// strategy; kinds the options leave disabled fail with
// definitions.ErrSourceDisabled.
type Loader struct {
	fs       fs.FS
	http     *http.Client
	timeout  time.Duration
	maxBytes int64
}

var _ definitions.Loader = (*Loader)(nil)

type fetchFunc func(ctx context.Context, location string) ([]byte, error)

// New constructs a Loader from resolved options.
func New(options definitions.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = definitions.DefaultMaxBytes
	}

	return &Loader{
		fs:       options.FileSystem,
		http:     client,
		timeout:  timeout,
		maxBytes: maxBytes,
	}
}

// Load reads the document identified by src and sniffs its encoding.
func (l *Loader) Load(ctx context.Context, src definitions.Source) (definitions.Document, error) {
	if src == nil {
		return definitions.Document{}, errors.New("definitions loader: source is nil")
	}

	fetch, err := l.strategy(src.Kind())
	if err != nil {
		return definitions.Document{}, fmt.Errorf("definitions loader: %s: %w", src.Location(), err)
	}
	data, err := fetch(ctx, src.Location())
	if err != nil {
		return definitions.Document{}, fmt.Errorf("definitions loader: %s %s: %w", src.Kind(), src.Location(), err)
	}

	return definitions.NewDocument(src, data)
}

func (l *Loader) strategy(kind definitions.SourceKind) (fetchFunc, error) {
	switch kind {
	case definitions.SourceKindFile:
		return loadFile, nil
	case definitions.SourceKindFS:
		if l.fs == nil {
			return nil, fmt.Errorf("%w: %s (no filesystem configured)", definitions.ErrSourceDisabled, kind)
		}
		return func(ctx context.Context, name string) ([]byte, error) {
			return loadFromFS(ctx, l.fs, name)
		}, nil
	case definitions.SourceKindURL:
		if l.http == nil {
			return nil, fmt.Errorf("%w: %s (http support disabled)", definitions.ErrSourceDisabled, kind)
		}
		return func(ctx context.Context, url string) ([]byte, error) {
			return loadHTTP(ctx, l.http, url, l.timeout, l.maxBytes)
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", definitions.ErrUnsupportedSource, kind)
	}
}
