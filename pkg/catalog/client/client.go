package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/diwise/catalog-aggregator/pkg/catalog/errors"
	"github.com/diwise/catalog-aggregator/pkg/catalog/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate moq -rm -out pagewalker_mock.go . PageWalker

// PageWalker materializes a complete collection from a cursor paginated resource.
type PageWalker interface {
	FetchAll(ctx context.Context, startURL string) (types.Collection, error)
}

const (
	DefaultTimeout  time.Duration = 10 * time.Second
	DefaultMaxPages int           = 100
)

func Debug(enabled bool) func(*walker) {
	return func(w *walker) {
		w.debug = enabled
	}
}

// Timeout sets the time limit for each individual page fetch
func Timeout(d time.Duration) func(*walker) {
	return func(w *walker) {
		if d > 0 {
			w.timeout = d
		}
	}
}

func MaxPages(n int) func(*walker) {
	return func(w *walker) {
		if n > 0 {
			w.maxPages = n
		}
	}
}

func WithHTTPClient(c *http.Client) func(*walker) {
	return func(w *walker) {
		w.httpClient = c
	}
}

func NewPageWalker(options ...func(*walker)) PageWalker {
	w := &walker{
		timeout:  DefaultTimeout,
		maxPages: DefaultMaxPages,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(w)
	}

	return w
}

const (
	TraceAttributeStartURL  string = "start-url"
	TraceAttributePageURL   string = "page-url"
	TraceAttributePageCount string = "page-count"
)

var tracer = otel.Tracer("catalog-aggregator/page-walker")

type walker struct {
	httpClient *http.Client
	timeout    time.Duration
	maxPages   int
	debug      bool
}

func (w walker) FetchAll(ctx context.Context, startURL string) (types.Collection, error) {
	var err error

	ctx, span := tracer.Start(ctx, "fetch-all",
		trace.WithAttributes(attribute.String(TraceAttributeStartURL, startURL)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	collection := types.Collection{}
	visited := map[string]struct{}{}

	pageURL := startURL
	pageCount := 0

	for {
		if _, seen := visited[pageURL]; seen {
			err = errors.NewCursorLoopError(pageURL)
			return nil, err
		}
		visited[pageURL] = struct{}{}

		if pageCount == w.maxPages {
			err = errors.NewTooManyPagesError(w.maxPages)
			return nil, err
		}

		var page *types.Page
		page, err = w.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		pageCount++
		collection = append(collection, page.Results...)

		if !page.HasNext() {
			break
		}

		pageURL, err = resolveCursor(pageURL, *page.Next)
		if err != nil {
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int(TraceAttributePageCount, pageCount))
	log.Debug("fetched all pages", "url", startURL, "pages", pageCount, "count", len(collection))

	return collection, nil
}

func (w walker) fetchPage(ctx context.Context, pageURL string) (*types.Page, error) {
	var err error

	ctx, span := tracer.Start(ctx, "fetch-page",
		trace.WithAttributes(attribute.String(TraceAttributePageURL, pageURL)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	response, responseBody, err := w.callUpstream(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		contentType := response.Header.Get("Content-Type")
		err = fmt.Errorf("upstream returned status code %d (content-type: %s) (%w)", response.StatusCode, contentType, errors.ErrUpstream)
		return nil, err
	}

	page, err := types.NewPageFromJSON(responseBody)
	if err != nil {
		if w.debug && len(responseBody) < 1000 {
			err = fmt.Errorf("unmarshaling of %s failed with err %s (%w)", string(responseBody), err.Error(), errors.ErrUpstream)
		} else {
			err = fmt.Errorf("failed to decode page from %s: %s (%w)", pageURL, err.Error(), errors.ErrUpstream)
		}

		return nil, err
	}

	return page, nil
}

func (w walker) callUpstream(ctx context.Context, endpoint string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrUpstream)
	}

	req.Header.Add("Accept", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrUpstream)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrUpstream)
	}

	if w.debug && resp.StatusCode >= http.StatusBadRequest {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		log := logging.GetFromContext(ctx)
		log.Error("request failed", "request", string(reqbytes), "response", string(respbytes))
	}

	return resp, respBody, nil
}

// resolveCursor allows upstreams to return next cursors relative to the current page
func resolveCursor(current, next string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("invalid page url %s: %s (%w)", current, err.Error(), errors.ErrUpstream)
	}

	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("invalid next cursor %s: %s (%w)", next, err.Error(), errors.ErrUpstream)
	}

	return base.ResolveReference(ref).String(), nil
}
