package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/domain/service"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// CheckBlacklist is the use case for a direct blacklist lookup.
type CheckBlacklist struct {
	blacklist *service.BlacklistRegistry
}

// NewCheckBlacklist creates a new CheckBlacklist use case.
func NewCheckBlacklist(blacklist *service.BlacklistRegistry) *CheckBlacklist {
	return &CheckBlacklist{blacklist: blacklist}
}

// Execute looks up a URL and/or company.
func (uc *CheckBlacklist) Execute(ctx context.Context, req dto.CheckBlacklistRequest) (dto.CheckBlacklistResponse, error) {
	if strings.TrimSpace(req.URL) == "" && strings.TrimSpace(req.Company) == "" {
		return dto.CheckBlacklistResponse{}, fmt.Errorf("%w: a url or company is required", ErrInvalidInput)
	}
	check, err := uc.blacklist.Check(ctx, req.URL, req.Company)
	if err != nil {
		return dto.CheckBlacklistResponse{}, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return dto.FromBlacklistCheck(check), nil
}

// BlacklistOverview is the use case for blacklist stats plus recent entries.
type BlacklistOverview struct {
	blacklist *service.BlacklistRegistry
}

// NewBlacklistOverview creates a new BlacklistOverview use case.
func NewBlacklistOverview(blacklist *service.BlacklistRegistry) *BlacklistOverview {
	return &BlacklistOverview{blacklist: blacklist}
}

// Execute returns registry stats and up to Limit recent entries.
func (uc *BlacklistOverview) Execute(ctx context.Context, req dto.BlacklistOverviewRequest) (dto.BlacklistOverviewResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	limit = min(limit, maxRecentLimit)

	stats, err := uc.blacklist.Stats(ctx)
	if err != nil {
		return dto.BlacklistOverviewResponse{}, err
	}
	recent, err := uc.blacklist.Recent(ctx, limit)
	if err != nil {
		return dto.BlacklistOverviewResponse{}, err
	}
	return dto.BlacklistOverviewResponse{
		Stats:  stats,
		Recent: dto.FromBlacklistEntries(recent),
	}, nil
}
