package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

// DefaultUserAgent mimics a desktop browser; most boards reject bare clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

const maxPageBytes = 5 << 20

var _ port.Scraper = (*HTTPScraper)(nil)

// HTTPScraper fetches pages with a plain HTTP GET.
type HTTPScraper struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewHTTPScraper creates an HTTPScraper. A nil client gets a 15s timeout.
func NewHTTPScraper(client *http.Client, userAgent string, logger *slog.Logger) *HTTPScraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPScraper{client: client, userAgent: userAgent, logger: logger}
}

func (s *HTTPScraper) Scrape(ctx context.Context, url string) (model.Posting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Posting{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return model.Posting{}, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return model.Posting{}, fmt.Errorf("failed to fetch page: status %d", resp.StatusCode)
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return model.Posting{}, fmt.Errorf("failed to read page: %w", err)
	}

	posting, err := Extract(url, page)
	if err != nil {
		s.logger.Warn("scrape yielded no usable posting", "url", url, "error", err)
		return posting, err
	}
	s.logger.Debug("scraped posting", "url", url, "title", posting.Title, "company", posting.Company)
	return posting, nil
}
