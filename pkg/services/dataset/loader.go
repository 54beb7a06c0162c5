package dataset

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// DefaultSourceURL is the public Superstore sample the dashboard ships with.
const DefaultSourceURL = "https://raw.githubusercontent.com/atharvayeola/superstore-analytics-pipeline/main/superstore.csv"

type Loader interface {
	Load(ctx context.Context) (domain.Dataset, error)
	Source() string
}

type LoaderFunc func(ctx context.Context) (domain.Dataset, error)

type funcLoader struct {
	source string
	fn     LoaderFunc
}

// NewLoaderFunc adapts a plain function to a Loader.
func NewLoaderFunc(source string, fn LoaderFunc) Loader {
	return &funcLoader{source: source, fn: fn}
}

func (l *funcLoader) Load(ctx context.Context) (domain.Dataset, error) {
	return l.fn(ctx)
}

func (l *funcLoader) Source() string {
	return l.source
}

type fileLoader struct {
	path     string
	encoding string
}

func NewFileLoader(path, encoding string) Loader {
	return &fileLoader{path: path, encoding: encoding}
}

func (l *fileLoader) Load(ctx context.Context) (domain.Dataset, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open dataset file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", l.path).Msg("failed to close dataset file")
		}
	}()

	return ParseCSV(ctx, f, l.encoding)
}

func (l *fileLoader) Source() string {
	return l.path
}

type httpLoader struct {
	url      string
	encoding string
	client   *http.Client
}

func NewHTTPLoader(url, encoding string, client *http.Client) Loader {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &httpLoader{url: url, encoding: encoding, client: client}
}

func (l *httpLoader) Load(ctx context.Context) (domain.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Dataset{}, fmt.Errorf("fetch dataset: unexpected status %s", resp.Status)
	}

	return ParseCSV(ctx, resp.Body, l.encoding)
}

func (l *httpLoader) Source() string {
	return l.url
}
