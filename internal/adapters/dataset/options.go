package dataset

import (
	"net/http"
	"time"

	"github.com/okian/podium/pkg/logger"
)

// Option configures an Accessor.
type Option func(*Accessor)

// WithPath reads the dataset from a file. Empty paths are ignored.
func WithPath(path string) Option {
	return func(a *Accessor) {
		if path != "" {
			a.source = File{Path: path}
		}
	}
}

// WithURL fetches the dataset over HTTP using client (nil means a client
// bounded only by the fetch timeout). Empty URLs are ignored.
func WithURL(url string, client *http.Client) Option {
	return func(a *Accessor) {
		if url != "" {
			a.source = HTTP{URL: url, Client: client}
		}
	}
}

// WithTimeout bounds each fetch. Non-positive values disable the bound.
func WithTimeout(d time.Duration) Option {
	return func(a *Accessor) {
		a.timeout = d
	}
}

// WithLogger sets the accessor's logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Accessor) {
		if l != nil {
			a.logger = l
		}
	}
}
