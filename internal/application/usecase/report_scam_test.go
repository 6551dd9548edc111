package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/application/usecase"
	"github.com/jobguard/jobguard/internal/domain/event"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/service"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
	"github.com/jobguard/jobguard/pkg/events"
	"github.com/jobguard/jobguard/pkg/observability"
)

type reportFixture struct {
	reports   *mockReportRepository
	blacklist *mockBlacklistRepository
	publisher *mockEventPublisher
}

func newReportScam(f *reportFixture) *usecase.ReportScam {
	if f.reports == nil {
		f.reports = &mockReportRepository{}
	}
	if f.blacklist == nil {
		f.blacklist = &mockBlacklistRepository{}
	}
	if f.publisher == nil {
		f.publisher = &mockEventPublisher{}
	}
	registryService := service.NewBlacklistRegistry(f.blacklist, registry.Default())
	return usecase.NewReportScam(f.reports, registryService, f.publisher, nil, observability.NopLogger())
}

func TestReportScam_Execute(t *testing.T) {
	t.Run("stores, blacklists and publishes", func(t *testing.T) {
		f := &reportFixture{}
		uc := newReportScam(f)

		resp, err := uc.Execute(context.Background(), dto.ReportScamRequest{
			URL:     "https://scam-jobs.xyz/apply",
			Company: "Quick Cash Inc",
			Details: "asked for a deposit",
		})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"URL: scam-jobs.xyz/apply",
			"Domain: scam-jobs.xyz",
			"Company: Quick Cash Inc",
		}, resp.BlacklistResult.Added)

		require.Len(t, f.reports.saved, 1)
		assert.Equal(t, "Anonymous", f.reports.saved[0].Reporter)
		assert.Equal(t, model.ReportStatusPending, f.reports.saved[0].Status)

		for _, e := range f.blacklist.upserted {
			assert.Equal(t, valueobject.RiskLevelMedium, e.Severity)
		}

		require.Len(t, f.publisher.publishedEvents, 1)
		evt, ok := f.publisher.publishedEvents[0].(event.ScamReported)
		require.True(t, ok)
		assert.Equal(t, resp.ReportID, evt.AggregateID())
		assert.Equal(t, "medium", evt.Severity)
	})

	t.Run("severity is honoured only for privileged callers", func(t *testing.T) {
		tests := []struct {
			name       string
			privileged bool
			expected   valueobject.RiskLevel
		}{
			{"privileged", true, valueobject.RiskLevelCritical},
			{"unprivileged", false, valueobject.RiskLevelMedium},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := &reportFixture{}
				_, err := newReportScam(f).Execute(context.Background(), dto.ReportScamRequest{
					Company:    "Quick Cash Inc",
					Severity:   "critical",
					Privileged: tt.privileged,
				})
				require.NoError(t, err)

				require.Len(t, f.blacklist.upserted, 1)
				assert.Equal(t, tt.expected, f.blacklist.upserted[0].Severity)
			})
		}
	})

	t.Run("unknown severity is invalid", func(t *testing.T) {
		_, err := newReportScam(&reportFixture{}).Execute(context.Background(), dto.ReportScamRequest{
			Company:    "Quick Cash Inc",
			Severity:   "apocalyptic",
			Privileged: true,
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})

	t.Run("needs a url or company", func(t *testing.T) {
		_, err := newReportScam(&reportFixture{}).Execute(context.Background(), dto.ReportScamRequest{Details: "scam"})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})

	t.Run("blacklist failure is returned", func(t *testing.T) {
		f := &reportFixture{blacklist: &mockBlacklistRepository{
			upsertFunc: func(context.Context, model.BlacklistEntry) (bool, error) {
				return false, errors.New("database is locked")
			},
		}}

		_, err := newReportScam(f).Execute(context.Background(), dto.ReportScamRequest{Company: "Quick Cash Inc"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add report to blacklist")
	})

	t.Run("publish failure is tolerated", func(t *testing.T) {
		f := &reportFixture{publisher: &mockEventPublisher{
			publishFunc: func(context.Context, ...events.DomainEvent) error { return errors.New("nats: no servers") },
		}}

		_, err := newReportScam(f).Execute(context.Background(), dto.ReportScamRequest{Company: "Quick Cash Inc"})
		assert.NoError(t, err)
	})
}
