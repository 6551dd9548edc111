package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

var _ port.DomainRegistry = (*RDAPRegistry)(nil)

// RDAPRegistry implements port.DomainRegistry with RDAP, the JSON successor to WHOIS.
type RDAPRegistry struct {
	client  doer
	baseURL string
	enabled bool
}

// NewRDAPRegistry creates a registry client. A disabled registry returns
// ErrNotConfigured.
func NewRDAPRegistry(client *http.Client, baseURL string, enabled bool) *RDAPRegistry {
	return &RDAPRegistry{client: client, baseURL: strings.TrimRight(baseURL, "/"), enabled: enabled}
}

type rdapDomain struct {
	Events []struct {
		Action string `json:"eventAction"`
		Date   string `json:"eventDate"`
	} `json:"events"`
	Entities []struct {
		Roles      []string          `json:"roles"`
		VCardArray []json.RawMessage `json:"vcardArray"`
	} `json:"entities"`
}

// Registration returns the creation date and registrar, or nil, nil when
// the registry has no registration event.
func (r *RDAPRegistry) Registration(ctx context.Context, domain string) (*model.DomainRegistration, error) {
	if !r.enabled {
		return nil, port.ErrNotConfigured
	}

	endpoint := r.baseURL + "/domain/" + domain
	body, err := fetch(ctx, r.client, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/rdap+json")
		return req, nil
	})
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("rdap lookup %s: %w", domain, err)
	}

	var doc rdapDomain
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("rdap decode: %w", err)
	}

	reg := &model.DomainRegistration{Domain: domain}
	for _, e := range doc.Events {
		if e.Action != "registration" {
			continue
		}
		created, err := time.Parse(time.RFC3339, e.Date)
		if err != nil {
			return nil, fmt.Errorf("rdap registration date %q: %w", e.Date, err)
		}
		reg.CreatedAt = created.UTC()
	}
	if reg.CreatedAt.IsZero() {
		return nil, nil
	}

	for _, ent := range doc.Entities {
		for _, role := range ent.Roles {
			if role == "registrar" {
				reg.Registrar = vcardName(ent.VCardArray)
			}
		}
	}
	return reg, nil
}

// vcardName extracts "fn" from a jCard: ["vcard", [["fn", {}, "text", "Name"], ...]].
func vcardName(vcard []json.RawMessage) string {
	if len(vcard) < 2 {
		return ""
	}
	var props [][]any
	if err := json.Unmarshal(vcard[1], &props); err != nil {
		return ""
	}
	for _, p := range props {
		if len(p) >= 4 && p[0] == "fn" {
			if name, ok := p[3].(string); ok {
				return name
			}
		}
	}
	return ""
}
