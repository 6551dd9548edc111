package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jobguard/jobguard/internal/domain/port"
)

const duckDuckGoBaseURL = "https://html.duckduckgo.com"

var (
	_ port.CompanySearcher = (*GoogleSearcher)(nil)
	_ port.CompanySearcher = (*DuckDuckGoSearcher)(nil)
	_ port.CompanySearcher = (*FallbackSearcher)(nil)
	_ port.CompanySearcher = UnconfiguredSearcher{}
)

// GoogleSearcher implements port.CompanySearcher with Google Programmable Search.
type GoogleSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearcher creates a searcher for the engine cx. Extra options,
// such as an endpoint override, are passed to the API client.
func NewGoogleSearcher(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*GoogleSearcher, error) {
	if apiKey == "" || cx == "" {
		return nil, port.ErrNotConfigured
	}
	svc, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("customsearch: create service: %w", err)
	}
	return &GoogleSearcher{svc: svc, cx: cx}, nil
}

// SearchWebsite returns the first result link.
func (g *GoogleSearcher) SearchWebsite(ctx context.Context, company string) (string, error) {
	res, err := g.svc.Cse.List().
		Cx(g.cx).
		Q(company + " company official website").
		Num(3).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("customsearch: %w", err)
	}
	for _, item := range res.Items {
		if item.Link != "" {
			return item.Link, nil
		}
	}
	return "", nil
}

// DuckDuckGoSearcher implements port.CompanySearcher with the keyless
// DuckDuckGo HTML endpoint.
type DuckDuckGoSearcher struct {
	client    doer
	baseURL   string
	userAgent string
}

// NewDuckDuckGoSearcher creates a keyless searcher.
func NewDuckDuckGoSearcher(client *http.Client, userAgent string) *DuckDuckGoSearcher {
	return &DuckDuckGoSearcher{client: client, baseURL: duckDuckGoBaseURL, userAgent: userAgent}
}

// WithBaseURL points the searcher at another host.
func (d *DuckDuckGoSearcher) WithBaseURL(u string) *DuckDuckGoSearcher {
	d.baseURL = u
	return d
}

// SearchWebsite posts the query and returns the first organic result.
func (d *DuckDuckGoSearcher) SearchWebsite(ctx context.Context, company string) (string, error) {
	form := url.Values{"q": {company + " official site"}}.Encode()
	body, err := fetch(ctx, d.client, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/html/", strings.NewReader(form))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("User-Agent", d.userAgent)
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("duckduckgo search: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("duckduckgo parse: %w", err)
	}
	return firstResultLink(doc), nil
}

// firstResultLink finds the first <a class="result__a"> and unwraps the
// redirect DuckDuckGo puts around result links.
func firstResultLink(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "result__a") {
		return unwrapRedirect(attr(n, "href"))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if link := firstResultLink(c); link != "" {
			return link
		}
	}
	return ""
}

func unwrapRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// FallbackSearcher tries each searcher in order and returns the first
// website found. Unconfigured searchers are skipped silently.
type FallbackSearcher struct {
	searchers []port.CompanySearcher
	logger    *slog.Logger
}

// NewFallbackSearcher chains searchers.
func NewFallbackSearcher(logger *slog.Logger, searchers ...port.CompanySearcher) *FallbackSearcher {
	return &FallbackSearcher{searchers: searchers, logger: logger}
}

func (f *FallbackSearcher) SearchWebsite(ctx context.Context, company string) (string, error) {
	var errs []error
	configured := false
	for _, s := range f.searchers {
		website, err := s.SearchWebsite(ctx, company)
		switch {
		case errors.Is(err, port.ErrNotConfigured):
			continue
		case err != nil:
			configured = true
			f.logger.DebugContext(ctx, "company search failed", slog.String("error", err.Error()))
			errs = append(errs, err)
			continue
		}
		configured = true
		if website != "" {
			return website, nil
		}
	}
	if !configured {
		return "", port.ErrNotConfigured
	}
	return "", errors.Join(errs...)
}

// UnconfiguredSearcher is used when web search is disabled.
type UnconfiguredSearcher struct{}

func (UnconfiguredSearcher) SearchWebsite(context.Context, string) (string, error) {
	return "", port.ErrNotConfigured
}
