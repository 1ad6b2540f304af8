// Package nlu talks to the external language service that classifies user
// turns and renders outcomes back into prose.
package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/pkg/config"
	"hotel-concierge/internal/pkg/errs"
	"hotel-concierge/internal/usecase/dispatch"

	"golang.org/x/time/rate"
)

const (
	classifyPath = "/v1/classify"
	renderPath   = "/v1/render"
)

// Client implements dispatch.Classifier and dispatch.Renderer over HTTP.
type Client struct {
	baseURL     string
	apiKey      string
	defaultLang string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
}

func NewClient(cfg config.NLUConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		defaultLang: cfg.DefaultLang,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(limit, burst),
		logger:      logger,
	}
}

func (c *Client) Classify(ctx context.Context, text string, history []intent.Message) (intent.Classification, error) {
	var resp classification
	body := classifyRequest{Text: text, History: encodeHistory(history)}
	if err := c.post(ctx, classifyPath, body, &resp); err != nil {
		return intent.Classification{}, err
	}
	cls, err := resp.toDomain()
	if err != nil {
		return intent.Classification{}, errs.Mark(errs.Wrap(err, "decode classification"), errs.ErrUnclassifiable)
	}
	return cls, nil
}

func (c *Client) Render(ctx context.Context, outcome dispatch.Outcome, language string) (string, error) {
	if language == "" {
		language = c.defaultLang
	}
	var resp renderResponse
	body := renderRequest{Language: language, Outcome: encodeOutcome(outcome)}
	if err := c.post(ctx, renderPath, body, &resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := errs.FromContext(ctx); ctxErr != nil {
			return ctxErr
		}
		return errs.Wrap(err, "nlu rate limit")
	}

	data, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "encode nlu request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return errs.Wrap(err, "build nlu request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := errs.FromContext(ctx); ctxErr != nil {
			return ctxErr
		}
		return errs.Wrapf(err, "nlu %s", path)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "nlu call",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(started)))

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return errs.Mark(errs.Newf("nlu %s: %s", path, readSnippet(resp.Body)), errs.ErrUnclassifiable)
	case resp.StatusCode >= 300:
		return errs.Newf("nlu %s: http %d: %s", path, resp.StatusCode, readSnippet(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrapf(err, "decode nlu %s response", path)
	}
	return nil
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "empty body"
	}
	return fmt.Sprintf("%q", s)
}
