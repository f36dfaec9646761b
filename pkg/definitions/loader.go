package definitions

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches definitions documents. The implementation lives under
// internal/definitions/loader.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Loader errors, matched with errors.Is.
var (
	// ErrSourceDisabled reports a source kind the loader was not configured
	// for (no fs.FS, or HTTP left off).
	ErrSourceDisabled = errors.New("definitions: source kind not enabled")
	// ErrUnsupportedSource reports a Source with an unknown kind.
	ErrUnsupportedSource = errors.New("definitions: unsupported source kind")
	// ErrUnexpectedStatus reports a non-2xx answer for a remote document.
	ErrUnexpectedStatus = errors.New("definitions: unexpected status")
	// ErrDocumentTooLarge reports a remote document above the MaxBytes cap.
	ErrDocumentTooLarge = errors.New("definitions: document too large")
)

// LoaderOptions configures source resolution. HTTP stays disabled unless a
// client is injected or the fallback is enabled, so loading is offline by
// default.
type LoaderOptions struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
	// MaxBytes caps remote payloads; zero means DefaultMaxBytes.
	MaxBytes int64
}

// DefaultMaxBytes bounds remote documents.
const DefaultMaxBytes int64 = 8 << 20

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem enables fs.FS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL sources through client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client and timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithMaxBytes caps the size of remote documents.
func WithMaxBytes(limit int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxBytes = limit
	}
}

// NewLoaderOptions applies options and returns the resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	return cfg
}
