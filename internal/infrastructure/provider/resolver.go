package provider

import (
	"context"
	"errors"
	"net"

	"github.com/jobguard/jobguard/internal/domain/port"
)

var _ port.Resolver = (*NetResolver)(nil)

// hostLookuper is satisfied by *net.Resolver.
type hostLookuper interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// NetResolver implements port.Resolver with the system DNS resolver.
type NetResolver struct {
	resolver hostLookuper
}

// NewNetResolver wraps net.DefaultResolver.
func NewNetResolver() *NetResolver {
	return &NetResolver{resolver: net.DefaultResolver}
}

// Resolve maps NXDOMAIN to port.ErrDomainNotFound; every other failure
// means the answer is unknown.
func (r *NetResolver) Resolve(ctx context.Context, host string) ([]string, error) {
	addrs, err := r.resolver.LookupHost(ctx, host)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, port.ErrDomainNotFound
		}
		return nil, err
	}
	return addrs, nil
}
