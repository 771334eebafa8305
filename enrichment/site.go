package enrichment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	// DefaultSiteTimeout bounds a single site fetch.
	DefaultSiteTimeout = 10 * time.Second

	siteUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxSiteBody       = 2 << 20
	maxMainContent    = 10
	minMainContentLen = 20
)

// HTTPSiteExtractor fetches a page and pulls out its title, meta tags and
// the first substantial headings and paragraphs.
type HTTPSiteExtractor struct {
	client *http.Client
	now    func() time.Time
}

func NewSiteExtractor(timeout time.Duration) *HTTPSiteExtractor {
	if timeout <= 0 {
		timeout = DefaultSiteTimeout
	}
	return &HTTPSiteExtractor{
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

func (e *HTTPSiteExtractor) Extract(ctx context.Context, url string) (WebsiteData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return WebsiteData{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", siteUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := e.client.Do(req)
	if err != nil {
		return WebsiteData{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return WebsiteData{}, fmt.Errorf("HTTP %s", resp.Status)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxSiteBody))
	if err != nil {
		return WebsiteData{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	data := parsePage(doc)
	data.URL = url
	scraped := e.now().UTC()
	data.ScrapedAt = &scraped
	return data, nil
}

func parsePage(doc *html.Node) WebsiteData {
	var data WebsiteData
	titleSeen := false

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if !titleSeen {
					titleSeen = true
					data.Title = strings.TrimSpace(textContent(n))
				}
			case "meta":
				switch strings.ToLower(attr(n, "name")) {
				case "description":
					if data.Description == "" {
						data.Description = attr(n, "content")
					}
				case "keywords":
					if data.Keywords == "" {
						data.Keywords = attr(n, "content")
					}
				}
			case "h1", "h2", "h3", "p":
				text := strings.TrimSpace(textContent(n))
				if utf8.RuneCountInString(text) > minMainContentLen && len(data.MainContent) < maxMainContent {
					data.MainContent = append(data.MainContent, text)
				}
			case "script", "style", "noscript":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return data
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
