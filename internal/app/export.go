package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel/attribute"

	"github.com/okian/podium/pkg/logger"
)

// Export renders the dashboard and every country once and writes each
// drawn surface into dir. It returns the written paths in render order.
// Charts that could not be drawn are skipped.
func (s *Service) Export(ctx context.Context, dir string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "service.Export")
	defer span.End()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	home, err := s.Home(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	var written []string
	write := func(name string, c Chart) error {
		if !c.Available() {
			s.logger.Warn(ctx, "skipping export of undrawn chart", logger.String("name", name))
			return nil
		}
		path := filepath.Join(dir, name+extension(c.Content.MediaType))
		if err := os.WriteFile(path, c.Content.Bytes, 0o644); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := write("home", home.Chart); err != nil {
		return written, err
	}
	for _, name := range home.Medals.Labels {
		page, err := s.Country(ctx, name)
		if err != nil {
			if errors.Is(err, ErrCountryNotFound) {
				continue
			}
			return written, fmt.Errorf("export %s: %w", name, err)
		}
		if err := write("country-"+slug(name), page.Chart); err != nil {
			return written, err
		}
	}
	// The exported charts are files now; nothing stays bound.
	s.home.OnTeardown(ctx)
	s.country.OnTeardown(ctx)

	span.SetAttributes(attribute.Int("export.files", len(written)))
	s.logger.Info(ctx, "charts exported", logger.String("dir", dir), logger.Int("files", len(written)))
	return written, nil
}

func extension(mediaType string) string {
	switch {
	case strings.HasPrefix(mediaType, "image/svg"):
		return ".svg"
	case strings.HasPrefix(mediaType, "image/png"):
		return ".png"
	case strings.HasPrefix(mediaType, "text/html"):
		return ".html"
	default:
		return ".bin"
	}
}

// slug turns a country name into a file-name-safe token.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
