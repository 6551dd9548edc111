package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

var _ port.Scraper = (*ChromeScraper)(nil)

// ChromeScraper renders pages in headless Chrome before extraction, for
// boards that build the description client-side.
type ChromeScraper struct {
	userAgent string
	settle    time.Duration
	logger    *slog.Logger
}

// NewChromeScraper creates a ChromeScraper. Each Scrape starts its own
// browser and tears it down afterwards.
func NewChromeScraper(userAgent string, logger *slog.Logger) *ChromeScraper {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChromeScraper{userAgent: userAgent, settle: 2 * time.Second, logger: logger}
}

func (s *ChromeScraper) Scrape(ctx context.Context, url string) (model.Posting, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(s.userAgent),
		chromedp.DisableGPU,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var page string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.settle),
		chromedp.OuterHTML("html", &page, chromedp.ByQuery),
	)
	if err != nil {
		return model.Posting{}, fmt.Errorf("failed to render page: %w", err)
	}

	posting, err := Extract(url, []byte(page))
	if err != nil {
		s.logger.Warn("rendered page yielded no usable posting", "url", url, "error", err)
		return posting, err
	}
	return posting, nil
}
