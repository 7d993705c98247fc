package browserless

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/ports"
)

const (
	screenshotPath    = "/screenshot"
	maxImageBytes     = 32 << 20
	maxErrorBodyBytes = 4 << 10
	defaultSelector   = "body"
)

// blockAll aborts every request the page would make, navigations included.
const blockAll = ".*"

// Client renders markup through a browserless screenshot endpoint.
type Client struct {
	Endpoint       string
	Token          string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.Renderer = (*Client)(nil)

func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{Endpoint: endpoint, Token: token, RequestTimeout: timeout}
}

type screenshotRequest struct {
	HTML                 string            `json:"html"`
	Selector             string            `json:"selector"`
	SetJavaScriptEnabled bool              `json:"setJavaScriptEnabled"`
	RejectRequestPattern []string          `json:"rejectRequestPattern"`
	Options              screenshotOptions `json:"options"`
}

type screenshotOptions struct {
	Type           string `json:"type"`
	OmitBackground bool   `json:"omitBackground"`
}

func (c *Client) Render(ctx context.Context, req ports.RenderRequest) ([]byte, error) {
	endpoint, err := c.screenshotURL()
	if err != nil {
		return nil, err
	}

	selector := strings.TrimSpace(req.Selector)
	if selector == "" {
		selector = defaultSelector
	}

	payload, err := json.Marshal(screenshotRequest{
		HTML:                 req.Markup,
		Selector:             selector,
		SetJavaScriptEnabled: false,
		RejectRequestPattern: []string{blockAll},
		Options:              screenshotOptions{Type: "png", OmitBackground: true},
	})
	if err != nil {
		return nil, fmt.Errorf("encode render request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "image/png")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("render markup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if isSizeFailure(string(detail)) {
			return nil, domain.ErrRenderSize
		}
		return nil, fmt.Errorf("render markup: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	image, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read rendered image: %w", err)
	}

	config, err := png.DecodeConfig(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("decode rendered image: %w", err)
	}
	if config.Width == 0 || config.Height == 0 {
		return nil, domain.ErrRenderSize
	}

	return image, nil
}

// isSizeFailure recognises the browser's refusal to capture an element with
// an empty box.
func isSizeFailure(detail string) bool {
	lower := strings.ToLower(detail)
	for _, marker := range []string{"not visible", "0 width", "0 height", "zero width", "zero height"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (c *Client) screenshotURL() (string, error) {
	if c.Endpoint == "" {
		return "", errors.New("render endpoint is required")
	}

	parsed, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parse render endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("render endpoint must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("render endpoint host is required")
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + screenshotPath
	if c.Token != "" {
		query := parsed.Query()
		query.Set("token", c.Token)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}
