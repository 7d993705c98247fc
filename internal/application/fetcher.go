package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

const maxFetchBodyBytes = 16 << 20

// Fetcher performs the HTTP requests scripts ask for. Non-2xx responses are
// returned as data and redirects are never followed.
type Fetcher struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		RequestTimeout: timeout,
	}
}

type Header struct {
	Name  string
	Value string
}

type FetchRequest struct {
	Method  string
	URL     string
	Headers []Header
	Body    []byte
}

type FetchResponse struct {
	Status     int
	StatusText string
	Headers    []Header
	Body       []byte
}

// FoldHeaders merges repeated names into one value joined with ", ", keeping
// first-seen order.
func FoldHeaders(headers []Header) []Header {
	index := map[string]int{}
	folded := make([]Header, 0, len(headers))
	for _, h := range headers {
		if i, ok := index[h.Name]; ok {
			folded[i].Value += ", " + h.Value
			continue
		}
		index[h.Name] = len(folded)
		folded = append(folded, h)
	}
	return folded
}

func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.Do(ctx, FetchRequest{Method: http.MethodGet, URL: url})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (f *Fetcher) Do(ctx context.Context, req FetchRequest) (FetchResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	if strings.TrimSpace(req.URL) == "" {
		return FetchResponse{}, errors.New("url is required")
	}

	requestCtx, cancel := f.requestContext(ctx)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(requestCtx, method, req.URL, body)
	if err != nil {
		return FetchResponse{}, fmt.Errorf("create request: %w", err)
	}
	for _, h := range FoldHeaders(req.Headers) {
		httpReq.Header.Set(h.Name, h.Value)
	}

	resp, err := f.httpClient().Do(httpReq)
	if err != nil {
		return FetchResponse{}, fmt.Errorf("%s %s: %w", method, req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBodyBytes))
	if err != nil {
		return FetchResponse{}, fmt.Errorf("read response body: %w", err)
	}

	return FetchResponse{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Headers:    responseHeaders(resp.Header),
		Body:       data,
	}, nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func responseHeaders(header http.Header) []Header {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Header, 0, len(names))
	for _, name := range names {
		out = append(out, Header{Name: strings.ToLower(name), Value: strings.Join(header.Values(name), ", ")})
	}
	return out
}

func (f *Fetcher) httpClient() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return http.DefaultClient
}

func (f *Fetcher) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := f.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}
