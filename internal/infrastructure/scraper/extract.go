// Package scraper turns job pages into postings.
package scraper

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/jaytaylor/html2text"
	"golang.org/x/net/html"

	"github.com/jobguard/jobguard/internal/domain/model"
)

// ErrInsufficientText is returned when a page yields too little description,
// which usually means an anti-bot wall.
var ErrInsufficientText = errors.New("insufficient text extracted from page")

const (
	minDescription  = 50
	defaultLocation = "Remote / Not Specified"
)

var (
	descriptionSelectors = []string{
		"show-more-less-html__markup",
		"jobsearch-jobDescriptionText",
		"jobDescriptionText",
		"jobDescriptionContent",
	}
	containerPattern = regexp.MustCompile(`(?i)job[-_]?description|details|content|body`)
	locationPattern  = regexp.MustCompile(`(?i)location`)
	whitespace       = regexp.MustCompile(`\s+`)
	jobBoards        = []string{"linkedin", "indeed", "glassdoor", "monster", "ziprecruiter"}
	skippedElements  = map[string]bool{"script": true, "style": true, "nav": true, "header": true, "footer": true, "noscript": true}
)

// Extract parses a job page. The posting URL is set to pageURL.
func Extract(pageURL string, page []byte) (model.Posting, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return model.Posting{}, err
	}

	ld := findJobPosting(doc)
	p := model.Posting{
		URL:         pageURL,
		Title:       extractTitle(doc, ld),
		Company:     extractCompany(doc, ld, pageURL),
		Description: extractDescription(doc, ld),
		Location:    extractLocation(doc, ld),
	}
	if len(p.Description) < minDescription {
		return p, ErrInsufficientText
	}
	return p, nil
}

type jobPostingLD struct {
	Type               any             `json:"@type"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	HiringOrganization json.RawMessage `json:"hiringOrganization"`
	JobLocation        json.RawMessage `json:"jobLocation"`
}

func (j jobPostingLD) isJobPosting() bool {
	switch t := j.Type.(type) {
	case string:
		return t == "JobPosting"
	case []any:
		for _, v := range t {
			if v == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func (j jobPostingLD) organization() string {
	var org struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(j.HiringOrganization, &org); err == nil && org.Name != "" {
		return org.Name
	}
	var name string
	if err := json.Unmarshal(j.HiringOrganization, &name); err == nil {
		return name
	}
	return ""
}

func (j jobPostingLD) locality() string {
	type place struct {
		Address struct {
			Locality string `json:"addressLocality"`
		} `json:"address"`
	}
	var one place
	if err := json.Unmarshal(j.JobLocation, &one); err == nil && one.Address.Locality != "" {
		return one.Address.Locality
	}
	var many []place
	if err := json.Unmarshal(j.JobLocation, &many); err == nil && len(many) > 0 {
		return many[0].Address.Locality
	}
	return ""
}

// findJobPosting returns the first schema.org JobPosting in a JSON-LD script.
func findJobPosting(doc *html.Node) *jobPostingLD {
	var found *jobPostingLD
	walk(doc, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type != html.ElementNode || n.Data != "script" || attr(n, "type") != "application/ld+json" {
			return true
		}
		raw := []byte(textContent(n))
		var single jobPostingLD
		if err := json.Unmarshal(raw, &single); err == nil && single.isJobPosting() {
			found = &single
			return false
		}
		var list []jobPostingLD
		if err := json.Unmarshal(raw, &list); err == nil {
			for i := range list {
				if list[i].isJobPosting() {
					found = &list[i]
					return false
				}
			}
		}
		return false
	})
	return found
}

func extractTitle(doc *html.Node, ld *jobPostingLD) string {
	if h1 := findFirst(doc, func(n *html.Node) bool { return isElement(n, "h1") }); h1 != nil {
		if t := clean(textContent(h1)); t != "" {
			return t
		}
	}
	if ld != nil && ld.Title != "" {
		return clean(ld.Title)
	}
	return pageTitle(doc)
}

func extractCompany(doc *html.Node, ld *jobPostingLD, pageURL string) string {
	company := ""
	if ld != nil {
		company = clean(ld.organization())
	}
	if company == "" {
		company = metaContent(doc, "property", "og:site_name")
	}
	if company == "" {
		if u, err := url.Parse(pageURL); err == nil {
			label := strings.Split(strings.TrimPrefix(u.Hostname(), "www."), ".")[0]
			if label != "" {
				company = strings.ToUpper(label[:1]) + label[1:]
			}
		}
	}

	lower := strings.ToLower(company)
	for _, board := range jobBoards {
		if !strings.Contains(lower, board) {
			continue
		}
		title := pageTitle(doc)
		if _, after, ok := strings.Cut(title, " at "); ok {
			after, _, _ = strings.Cut(after, "|")
			after, _, _ = strings.Cut(after, "-")
			return strings.TrimSpace(after)
		}
		if parts := strings.Split(title, " | "); len(parts) >= 2 {
			return strings.TrimSpace(parts[1])
		}
		break
	}
	return company
}

func extractDescription(doc *html.Node, ld *jobPostingLD) string {
	for _, sel := range descriptionSelectors {
		node := findFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && (hasClass(n, sel) || attr(n, "id") == sel)
		})
		if node != nil {
			return nodeText(node)
		}
	}

	if ld != nil && ld.Description != "" {
		if text, err := html2text.FromString(ld.Description, html2text.Options{OmitLinks: true, TextOnly: true}); err == nil {
			return clean(text)
		}
	}

	var best *html.Node
	bestLen := 0
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return false
		}
		if n.Type == html.ElementNode && (n.Data == "div" || n.Data == "section" || n.Data == "article" || n.Data == "main") &&
			containerPattern.MatchString(attr(n, "class")) {
			if l := len(textContent(n)); l > bestLen {
				best, bestLen = n, l
			}
		}
		return true
	})
	if best != nil {
		return nodeText(best)
	}

	if body := findFirst(doc, func(n *html.Node) bool { return isElement(n, "body") }); body != nil {
		return nodeText(body)
	}
	return ""
}

func extractLocation(doc *html.Node, ld *jobPostingLD) string {
	if loc := metaContent(doc, "property", "og:locality"); loc != "" {
		return loc
	}
	if loc := metaContent(doc, "name", "geo.placename"); loc != "" {
		return loc
	}
	if ld != nil {
		if loc := clean(ld.locality()); loc != "" {
			return loc
		}
	}
	span := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "span") && (hasClass(n, "topcard__dot-recolor") || locationPattern.MatchString(attr(n, "class")))
	})
	if span != nil {
		if loc := clean(textContent(span)); loc != "" {
			return loc
		}
	}
	return defaultLocation
}

// nodeText renders the subtree without scripts and converts it to plain text.
func nodeText(n *html.Node) string {
	var buf bytes.Buffer
	stripped := cloneWithout(n)
	if err := html.Render(&buf, stripped); err != nil {
		return clean(textContent(n))
	}
	text, err := html2text.FromString(buf.String(), html2text.Options{OmitLinks: true, TextOnly: true})
	if err != nil {
		return clean(textContent(n))
	}
	return clean(text)
}

func cloneWithout(n *html.Node) *html.Node {
	c := &html.Node{Type: n.Type, DataAtom: n.DataAtom, Data: n.Data, Namespace: n.Namespace, Attr: n.Attr}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && skippedElements[child.Data] {
			continue
		}
		c.AppendChild(cloneWithout(child))
	}
	return c
}

func pageTitle(doc *html.Node) string {
	if t := findFirst(doc, func(n *html.Node) bool { return isElement(n, "title") }); t != nil {
		return clean(textContent(t))
	}
	return ""
}

func metaContent(doc *html.Node, key, value string) string {
	m := findFirst(doc, func(n *html.Node) bool { return isElement(n, "meta") && attr(n, key) == value })
	if m == nil {
		return ""
	}
	return clean(attr(m, "content"))
}

func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		return true
	})
	return b.String()
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
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

func clean(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
