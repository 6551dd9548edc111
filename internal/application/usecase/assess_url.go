package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/service"
)

// AssessURL is the use case for scoring a posting given only its URL.
type AssessURL struct {
	assess    *AssessPosting
	scraper   port.Scraper
	blacklist *service.BlacklistRegistry
	logger    *slog.Logger
}

// NewAssessURL creates a new AssessURL use case.
func NewAssessURL(
	assess *AssessPosting,
	scraper port.Scraper,
	blacklist *service.BlacklistRegistry,
	logger *slog.Logger,
) *AssessURL {
	return &AssessURL{
		assess:    assess,
		scraper:   scraper,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Execute scrapes the page and assesses what it finds. A blacklisted URL is
// assessed without fetching it.
func (uc *AssessURL) Execute(ctx context.Context, req dto.AssessURLRequest) (dto.AssessmentResponse, error) {
	rawURL := strings.TrimSpace(req.URL)
	if _, err := model.ParseURL(rawURL); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	check, err := uc.blacklist.Check(ctx, rawURL, "")
	if err != nil {
		uc.logger.Warn("blacklist pre-check failed", "url", rawURL, "error", err)
	}
	if check.IsBlacklisted {
		return uc.assess.assess(ctx, model.SourceURL, model.Posting{URL: rawURL}), nil
	}

	if uc.scraper == nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %v", ErrInsufficientInput, port.ErrNotConfigured)
	}
	scraped, err := uc.scraper.Scrape(ctx, rawURL)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: failed to scrape %s: %v", ErrInsufficientInput, rawURL, err)
	}
	if strings.TrimSpace(scraped.Title) == "" && strings.TrimSpace(scraped.Description) == "" {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: no posting content found at %s", ErrInsufficientInput, rawURL)
	}

	posting, err := model.NewPosting(scraped.Title, scraped.Description, scraped.Company, rawURL)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %v", ErrInsufficientInput, err)
	}
	posting.Location = strings.TrimSpace(scraped.Location)

	resp := uc.assess.assess(ctx, model.SourceURL, posting)
	resp.ScrapedData = &posting
	return resp, nil
}
