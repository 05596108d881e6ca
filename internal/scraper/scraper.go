// Package scraper fetches display metadata (title, description, preview
// image) for a saved link.
//
// Scraping is strictly best-effort: a site that is down, slow, or hostile
// must never block or fail the save of a bookmark. Callers get zero-value
// Metadata on any failure and decide for themselves what to show.
package scraper

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

// Some sites serve an empty page or a block page to obviously non-browser
// user agents. A plain browser UA gets the same HTML a person would see.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// maxBodyBytes caps how much of a page is read. Titles and meta tags live
// in <head>; a megabyte is generous.
const maxBodyBytes = 1 << 20

// Metadata is what a page says about itself.
type Metadata struct {
	Title       string
	Description string
	Image       string
}

// Scraper fetches link metadata over HTTP.
type Scraper struct {
	client *resty.Client
	logger *slog.Logger
}

// New creates a Scraper whose requests are bounded by timeout.
func New(timeout time.Duration, logger *slog.Logger) *Scraper {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetDoNotParseResponse(true)

	return &Scraper{client: client, logger: logger}
}

// Fetch returns whatever metadata the page at link exposes. It never
// returns an error — failures are logged at debug level and yield empty
// Metadata, because a bookmark is worth saving whether or not its preview
// could be fetched.
func (s *Scraper) Fetch(ctx context.Context, link string) Metadata {
	resp, err := s.client.R().SetContext(ctx).Get(link)
	if err != nil {
		s.logger.Debug("metadata fetch failed",
			slog.String("link", link),
			slog.String("error", err.Error()),
		)
		return Metadata{}
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		s.logger.Debug("metadata fetch non-2xx",
			slog.String("link", link),
			slog.Int("status", resp.StatusCode()),
		)
		return Metadata{}
	}

	return parse(io.LimitReader(body, maxBodyBytes))
}

// parse walks the HTML token stream and picks up <title>,
// <meta name="description">, and the og: equivalents. og: values win over
// the plain ones when both are present, matching what link previews
// everywhere display. The tokenizer's error token covers both EOF and
// malformed input; whatever was collected by then stands.
func parse(r io.Reader) Metadata {
	var meta Metadata
	var inTitle bool

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return meta

		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			switch token.Data {
			case "title":
				inTitle = true
			case "meta":
				name, property, content := metaAttrs(token)
				switch {
				case property == "og:title" && content != "":
					meta.Title = content
				case property == "og:description" && content != "":
					meta.Description = content
				case property == "og:image" && content != "":
					meta.Image = content
				case name == "description" && meta.Description == "":
					meta.Description = content
				}
			case "body":
				// Everything we want sits in <head>; stop early.
				return meta
			}

		case html.EndTagToken:
			if z.Token().Data == "title" {
				inTitle = false
			}

		case html.TextToken:
			if inTitle && meta.Title == "" {
				meta.Title = strings.TrimSpace(z.Token().Data)
			}
		}
	}
}

func metaAttrs(token html.Token) (name, property, content string) {
	for _, attr := range token.Attr {
		switch attr.Key {
		case "name":
			name = strings.ToLower(attr.Val)
		case "property":
			property = strings.ToLower(attr.Val)
		case "content":
			content = strings.TrimSpace(attr.Val)
		}
	}
	return name, property, content
}
