package tool

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ai "github.com/cmathias/agentloop"
)

// SearchToolOption configures the web search tool.
type SearchToolOption func(*searchToolConfig)

type searchToolConfig struct {
	client     *http.Client
	newsURL    string
	wikiURL    string
	maxResults int
	timeout    time.Duration
}

// WithSearchHTTPClient sets a custom HTTP client.
func WithSearchHTTPClient(c *http.Client) SearchToolOption {
	return func(cfg *searchToolConfig) {
		cfg.client = c
	}
}

// WithNewsURL overrides the news feed endpoint (used in tests).
func WithNewsURL(u string) SearchToolOption {
	return func(cfg *searchToolConfig) {
		cfg.newsURL = u
	}
}

// WithWikiURL overrides the encyclopedia summary endpoint (used in tests).
func WithWikiURL(u string) SearchToolOption {
	return func(cfg *searchToolConfig) {
		cfg.wikiURL = u
	}
}

// WithMaxResults caps the number of results returned. Default is 3.
func WithMaxResults(n int) SearchToolOption {
	return func(cfg *searchToolConfig) {
		cfg.maxResults = n
	}
}

func applySearchOpts(opts []SearchToolOption) *searchToolConfig {
	cfg := &searchToolConfig{
		newsURL:    "https://news.google.com/rss/search",
		wikiURL:    "https://en.wikipedia.org/api/rest_v1/page/summary",
		maxResults: 3,
		timeout:    10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{Timeout: cfg.timeout}
	}
	return cfg
}

// searchArgs defines arguments for the web search tool.
type searchArgs struct {
	Query      string `json:"query" desc:"Search query" required:"true"`
	MaxResults int    `json:"max_results" desc:"Maximum number of results" default:"3"`
}

// rssFeed models the subset of the RSS document the tool reads.
type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title  string `xml:"title"`
	Source string `xml:"source"`
}

type wikiSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// NewWebSearchTool creates the web_search tool. It queries the Google News
// RSS feed and falls back to the Wikipedia summary API when the feed yields
// too few results. Failures are reported as result text, never as errors.
func NewWebSearchTool(opts ...SearchToolOption) Registration {
	cfg := applySearchOpts(opts)

	return Registration{
		Tool: ai.Tool{
			Name:        "web_search",
			Description: "Search the web for news and information. Args: query (required)",
			Parameters:  ai.MustSchemaFor[searchArgs](),
			Source:      "Google News + Wikipedia",
			SourceURL:   "https://news.google.com",
		},
		Handler: func(ctx context.Context, call ai.ToolCall) (string, error) {
			var args searchArgs
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return fmt.Sprintf("Error: invalid search arguments: %v", err), nil
			}
			return cfg.search(ctx, args), nil
		},
	}
}

func (cfg *searchToolConfig) search(ctx context.Context, args searchArgs) string {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return "Error: query is required"
	}

	maxResults := cfg.maxResults
	if args.MaxResults > 0 && args.MaxResults < maxResults {
		maxResults = args.MaxResults
	}

	results := cfg.searchNews(ctx, query, maxResults)

	// The feed can be thin for non-news queries; pad with an encyclopedia
	// summary before giving up.
	if len(results) < 2 {
		if summary := cfg.searchWiki(ctx, query); summary != "" {
			results = append(results, summary)
		}
	}

	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q.", query)
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return fmt.Sprintf("**Search: %q**\n\n%s", query, strings.Join(results, "\n\n---\n\n"))
}

func (cfg *searchToolConfig) searchNews(ctx context.Context, query string, maxResults int) []string {
	feedURL := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", cfg.newsURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "agentloop/1.0")

	resp, err := cfg.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil
	}

	var results []string
	for _, item := range feed.Channel.Items {
		if len(results) >= maxResults {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		if source := strings.TrimSpace(item.Source); source != "" {
			results = append(results, fmt.Sprintf("**%s**\n_%s_", title, source))
		} else {
			results = append(results, fmt.Sprintf("**%s**", title))
		}
	}
	return results
}

func (cfg *searchToolConfig) searchWiki(ctx context.Context, query string) string {
	page := url.PathEscape(strings.ReplaceAll(query, " ", "_"))
	summary, err := fetchJSON[wikiSummary](ctx, cfg.client, cfg.wikiURL+"/"+page)
	if err != nil {
		return ""
	}
	if len(summary.Extract) < 50 {
		return ""
	}

	extract := summary.Extract
	if len(extract) > 300 {
		extract = extract[:300] + "..."
	}
	return fmt.Sprintf("**%s** (Wikipedia)\n%s", summary.Title, extract)
}
