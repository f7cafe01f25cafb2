// Package loader fetches the named JSON resources the dashboard is built
// from, either over HTTP or from a local directory.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/okian/medailles/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// Loader reads one JSON resource by relative path into v.
type Loader interface {
	Load(ctx context.Context, path string, v any) error
}

// New picks an HTTP loader for http(s) sources and a directory loader otherwise.
func New(source string, opts ...Option) (Loader, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty", ErrSource)
	}
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return NewHTTP(u, opts...), nil
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSource, source)
	}
	return NewFS(os.DirFS(source)), nil
}

// LoadJSON is a typed wrapper around Loader.Load.
func LoadJSON[T any](ctx context.Context, l Loader, path string) (T, error) {
	var v T
	err := l.Load(ctx, path, &v)
	return v, err
}

// LoadComparison fetches every year's day-aligned file concurrently and waits
// for all of them. Any single failure fails the whole group.
func LoadComparison(ctx context.Context, l Loader, years []int, name func(year int) string) (model.DaysByYear, error) {
	results := make([][]model.DayRecord, len(years))
	g, gctx := errgroup.WithContext(ctx)
	for i, year := range years {
		g.Go(func() error {
			rows, err := LoadJSON[[]model.DayRecord](gctx, l, name(year))
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(model.DaysByYear, len(years))
	for i, year := range years {
		out[year] = results[i]
	}
	return out, nil
}

func decode(path string, r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return nil
}

func loadError(path string, detail string) error {
	if detail == "" {
		return fmt.Errorf("%w: impossible de charger %s", ErrLoad, path)
	}
	return fmt.Errorf("%w: impossible de charger %s (%s)", ErrLoad, path, detail)
}
