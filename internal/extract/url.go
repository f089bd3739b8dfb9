// Package extract turns heterogeneous inputs (URLs, images) into plain text.
// All strategies are best-effort: expected failures (network errors,
// malformed HTML, unreadable images) degrade to an empty string, which the
// input validator then rejects.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/skanaga/veracity/internal/model"
	"github.com/skanaga/veracity/internal/util"
)

// nonContentSelector matches elements stripped before text extraction.
const nonContentSelector = "script, style, nav, footer, header"

// URLExtractor fetches a page and reduces it to readable article text.
type URLExtractor struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
	maxTextChars int
	robots       *util.RobotsChecker // nil unless robots compliance is enabled
}

// NewURLExtractor creates a URL extractor from the HTTP configuration.
func NewURLExtractor(cfg model.HTTPConfig) *URLExtractor {
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &URLExtractor{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		maxTextChars: cfg.MaxTextChars,
		robots:       robots,
	}
}

// Extract fetches rawURL and returns its visible text with non-content
// elements removed, whitespace runs collapsed to single spaces, and the
// result truncated to the configured character cap. Any non-200 status,
// network error, or robots denial yields an empty string and the error
// that caused it; callers treat empty output as invalid input rather
// than a fatal condition.
func (e *URLExtractor) Extract(ctx context.Context, rawURL string) (string, error) {
	if e.robots != nil {
		allowed, err := e.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return "", fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return "", fmt.Errorf("robots.txt disallows %s", rawURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body := io.LimitReader(resp.Body, e.maxBodyBytes)
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find(nonContentSelector).Remove()

	text := strings.Join(strings.Fields(doc.Text()), " ")
	return truncateRunes(text, e.maxTextChars), nil
}

// truncateRunes caps s at n characters without splitting a multi-byte rune.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
