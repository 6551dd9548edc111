package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

// DomainInspector answers the two network questions both the URL analyzer and
// the company verifier ask: does a host resolve, and how old is a domain.
// Every failure degrades to "unknown".
type DomainInspector struct {
	resolver port.Resolver
	registry port.DomainRegistry
	reg      *registry.Registry
	timeout  time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewDomainInspector creates a DomainInspector. timeout bounds each lookup.
func NewDomainInspector(
	resolver port.Resolver,
	domainRegistry port.DomainRegistry,
	reg *registry.Registry,
	timeout time.Duration,
	logger *slog.Logger,
) *DomainInspector {
	return &DomainInspector{
		resolver: resolver,
		registry: domainRegistry,
		reg:      reg,
		timeout:  timeout,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the time source.
func (p *DomainInspector) WithClock(now func() time.Time) *DomainInspector {
	p.now = now
	return p
}

// Resolves returns true or false when the answer is known, nil otherwise.
func (p *DomainInspector) Resolves(ctx context.Context, host string) *bool {
	if p.resolver == nil || host == "" {
		return nil
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	_, err := p.resolver.Resolve(ctx, host)
	switch {
	case err == nil:
		return boolPtr(true)
	case errors.Is(err, port.ErrDomainNotFound):
		return boolPtr(false)
	default:
		if !errors.Is(err, port.ErrNotConfigured) {
			p.logger.Debug("dns lookup inconclusive", "host", host, "error", err)
		}
		return nil
	}
}

// Age looks up the registration date of domain and buckets it.
func (p *DomainInspector) Age(ctx context.Context, domain string) model.DomainAge {
	age := model.DomainAge{Domain: domain, Unknown: true, Details: "Domain age unknown"}
	if p.registry == nil || domain == "" {
		return age
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	reg, err := p.registry.Registration(ctx, domain)
	if err != nil {
		if !errors.Is(err, port.ErrNotConfigured) {
			p.logger.Warn("domain registration lookup failed", "domain", domain, "error", err)
		}
		return age
	}
	if reg == nil || reg.CreatedAt.IsZero() {
		age.Details = "Could not retrieve creation date"
		return age
	}

	created := reg.CreatedAt.UTC()
	days := int(p.now().Sub(created).Hours() / 24)
	if days < 0 {
		days = 0
	}
	age.Unknown = false
	age.AgeDays = &days
	age.CreatedAt = &created
	age.Registrar = reg.Registrar

	switch {
	case days < 30:
		age.IsNew = true
		age.RiskLevel = valueobject.RiskLevelCritical
		age.Details = fmt.Sprintf("Extremely new domain, created only %d days ago", days)
	case days < 90:
		age.IsNew = true
		age.RiskLevel = valueobject.RiskLevelHigh
		age.Details = fmt.Sprintf("Very new domain, created %d days ago", days)
	case days < 365:
		age.RiskLevel = valueobject.RiskLevelMedium
		age.Details = fmt.Sprintf("Domain is less than 1 year old (%d days)", days)
	default:
		age.RiskLevel = valueobject.RiskLevelLow
		age.Details = fmt.Sprintf("Established domain (%d+ years)", days/365)
	}

	if p.isBudgetRegistrar(reg.Registrar) {
		age.Details += " (budget registrar often used by scammers)"
		if age.RiskLevel.Equal(valueobject.RiskLevelLow) {
			age.RiskLevel = valueobject.RiskLevelMedium
		}
	}
	return age
}

func (p *DomainInspector) isBudgetRegistrar(registrar string) bool {
	registrar = strings.ToLower(registrar)
	if registrar == "" {
		return false
	}
	for _, r := range p.reg.BudgetRegistrars() {
		if strings.Contains(registrar, r) {
			return true
		}
	}
	return false
}

func (p *DomainInspector) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, p.timeout)
}

func boolPtr(b bool) *bool { return &b }
