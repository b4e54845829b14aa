package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ovoitenko/pagelens/internal/cache"
	"github.com/ovoitenko/pagelens/internal/model"
	"github.com/ovoitenko/pagelens/internal/util"
	"github.com/ovoitenko/pagelens/internal/worker"
)

// Payload caps keep snapshots bounded on media-heavy pages.
const (
	maxImages      = 50
	maxLinks       = 100
	maxLinkTextLen = 100
)

// Producer fetches a webpage and captures it as a fixed-shape snapshot.
type Producer struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64

	robots  *robotsChecker  // nil when robots.txt checking is disabled
	limiter *worker.Limiter // nil when rate limiting is disabled
	store   cache.Cache     // nil when caching is disabled
	ttl     time.Duration
}

// NewProducer creates a snapshot producer. store and limiter may be nil.
func NewProducer(cfg model.HTTPConfig, cacheCfg model.CacheConfig, store cache.Cache, limiter *worker.Limiter) *Producer {
	var robots *robotsChecker
	if cfg.RespectRobots {
		robots = newRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	if !cacheCfg.Enabled {
		store = nil
	}

	return &Producer{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc("", ""),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		limiter:   limiter,
		store:     store,
		ttl:       cacheCfg.DiskTTL,
	}
}

// Snapshot fetches the page at rawURL and captures it. Cached snapshots
// are returned without a network round trip.
func (p *Producer) Snapshot(ctx context.Context, rawURL string) (*model.PageSnapshot, error) {
	key := cache.Key(rawURL)
	if p.store != nil {
		if data, found := p.store.Get(key); found {
			var snap model.PageSnapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				return &snap, nil
			}
			// Corrupt entry: drop it and refetch
			_ = p.store.Delete(key)
		}
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	if p.robots != nil && !p.robots.allowed(ctx, rawURL) {
		return nil, fmt.Errorf("fetch %s: disallowed by robots.txt", rawURL)
	}

	body, finalURL, err := p.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	snap, err := Capture(body, finalURL)
	if err != nil {
		return nil, err
	}

	if p.store != nil {
		if data, err := json.Marshal(snap); err == nil {
			_ = p.store.Set(key, data, p.ttl)
		}
	}

	return snap, nil
}

// fetch retrieves the page body, bounded by maxBytes, and reports the
// final URL after redirects.
func (p *Producer) fetch(ctx context.Context, rawURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes))
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}

	return string(body), resp.Request.URL.String(), nil
}

// Capture parses HTML and builds the snapshot record for the given URL.
func Capture(htmlContent, pageURL string) (*model.PageSnapshot, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	base, _ := url.Parse(pageURL)

	c := &collector{
		base:      base,
		headings:  make(map[string]int),
		openGraph: make(map[string]string),
	}
	c.walk(doc)

	allText := strings.TrimSpace(c.text.String())

	snap := &model.PageSnapshot{
		URL:       pageURL,
		Title:     c.title,
		Timestamp: time.Now().UTC(),
		Text: model.PageText{
			AllText:    allText,
			TextLength: len(allText),
			WordCount:  len(strings.Fields(allText)),
		},
		Images: c.images,
		Links:  c.links,
		Metadata: model.PageMetadata{
			Description: c.description,
			Keywords:    c.keywords,
			Author:      c.author,
			OpenGraph:   c.openGraph,
		},
		Structure: model.PageStructure{
			Headings:   c.headings,
			Paragraphs: c.paragraphs,
			Lists:      c.lists,
			Tables:     c.tables,
			Forms:      c.forms,
		},
		Language: c.language,
	}
	return snap, nil
}

// collector accumulates snapshot fields during a single tree walk.
type collector struct {
	base *url.URL

	title   string
	inTitle bool
	text    strings.Builder

	images []model.PageImage
	links  []model.PageLink

	description string
	keywords    string
	author      string
	openGraph   map[string]string

	headings   map[string]int
	paragraphs int
	lists      int
	tables     int
	forms      int

	language string
}

func (c *collector) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "iframe":
			return
		case "html":
			if lang := attr(n, "lang"); lang != "" {
				c.language = lang
			}
		case "title":
			if c.title == "" {
				c.title = strings.TrimSpace(textContent(n))
			}
			// Title text is not page body text
			return
		case "meta":
			c.collectMeta(n)
		case "img":
			c.collectImage(n)
		case "a":
			c.collectLink(n)
		case "h1", "h2", "h3", "h4", "h5", "h6":
			c.headings[n.Data]++
		case "p":
			c.paragraphs++
		case "ul", "ol":
			c.lists++
		case "table":
			c.tables++
		case "form":
			c.forms++
		}
	}

	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			c.text.WriteString(text)
			c.text.WriteString(" ")
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}
}

func (c *collector) collectMeta(n *html.Node) {
	content := attr(n, "content")
	if content == "" {
		return
	}

	switch attr(n, "name") {
	case "description":
		c.description = content
	case "keywords":
		c.keywords = content
	case "author":
		c.author = content
	}

	if prop := attr(n, "property"); strings.HasPrefix(prop, "og:") {
		c.openGraph[prop] = content
	}
}

func (c *collector) collectImage(n *html.Node) {
	if len(c.images) >= maxImages {
		return
	}

	src := attr(n, "src")
	if src == "" {
		src = attr(n, "data-src")
	}
	if src == "" {
		return
	}
	if c.base != nil {
		if resolved, err := c.base.Parse(src); err == nil {
			src = resolved.String()
		}
	}

	c.images = append(c.images, model.PageImage{
		Src:    src,
		Alt:    attr(n, "alt"),
		Width:  atoiOrZero(attr(n, "width")),
		Height: atoiOrZero(attr(n, "height")),
	})
}

func (c *collector) collectLink(n *html.Node) {
	if len(c.links) >= maxLinks {
		return
	}

	href := attr(n, "href")
	if href == "" || strings.HasPrefix(href, "#") {
		return
	}

	resolved := href
	external := false
	if c.base != nil {
		u, err := c.base.Parse(href)
		if err != nil {
			return
		}
		resolved = u.String()
		external = u.Host != c.base.Host
	}

	text := strings.TrimSpace(textContent(n))
	if len(text) > maxLinkTextLen {
		text = text[:maxLinkTextLen]
	}

	c.links = append(c.links, model.PageLink{
		Href:       resolved,
		Text:       text,
		IsExternal: external,
	})
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
