package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
)

//go:embed assets/olympic.json
var defaultDataset []byte

// Source yields the raw JSON document holding the record set.
type Source interface {
	// Name identifies the source in logs and spans.
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Embedded serves the dataset compiled into the binary.
type Embedded struct{}

func (Embedded) Name() string { return "embedded" }

func (Embedded) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(defaultDataset)), nil
}

// File reads the dataset from a path on disk.
type File struct {
	Path string
}

func (f File) Name() string { return "file:" + f.Path }

func (f File) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(f.Path)
}

// HTTP fetches the dataset with a GET request.
type HTTP struct {
	URL    string
	Client *http.Client
}

func (h HTTP) Name() string { return "http:" + h.URL }

func (h HTTP) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
