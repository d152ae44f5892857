// Package scraper is the page-scraping fallback used when tool-based
// extraction fails for image posts, or when a client explicitly asks to
// resolve an "image" format.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/unisave/unisave/internal/utils"
)

const defaultTimeout = 15 * time.Second

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// sharedDataRe matches Instagram's embedded page-state assignment. It is
// an inline script, so it cannot be reached through element selection.
var sharedDataRe = regexp.MustCompile(`window\._sharedData\s*=\s*(\{.+?\});`)

// Result is the extracted media candidate. Title may be empty.
type Result struct {
	ImageURL string
	Title    string
}

// ImageScraper is the capability the resolver and the Instagram handler
// depend on; tests substitute a stub.
type ImageScraper interface {
	ScrapeImage(ctx context.Context, pageURL string) (*Result, error)
}

type Scraper struct {
	client *http.Client
}

func New(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Scraper{
		client: &http.Client{Timeout: timeout},
	}
}

// ScrapeImage fetches the page and probes, in order, Open Graph and
// Twitter meta tags, JSON-LD blocks, and Instagram's embedded page-state
// blob. Finding no candidate is a hard failure: there is no further
// fallback behind this one.
func (s *Scraper) ScrapeImage(ctx context.Context, pageURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, utils.NewScrapeError("Could not extract image URL")
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, utils.NewUpstreamTimeoutError()
		}
		utils.LogError(ctx, "Page fetch failed", err, utils.Fields{"url": pageURL})
		return nil, utils.NewScrapeError("Could not extract image URL")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewScrapeError(fmt.Sprintf("Page fetch returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.NewScrapeError("Could not extract image URL")
	}

	result := extract(body)
	if result.ImageURL == "" {
		return nil, utils.NewScrapeError("No image URL found in page")
	}

	utils.LogInfo(ctx, "Found image via page scrape", utils.Fields{
		"url": truncateForLog(result.ImageURL),
	})
	return result, nil
}

func extract(body []byte) *Result {
	result := &Result{}

	doc, docErr := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if docErr == nil {
		result.ImageURL = metaContent(doc, "og:image")
		if result.ImageURL == "" {
			result.ImageURL = metaContent(doc, "twitter:image")
		}
		if result.ImageURL == "" {
			result.ImageURL = metaContent(doc, "twitter:image:src")
		}
		result.Title = metaContent(doc, "og:title")

		if result.ImageURL == "" || result.Title == "" {
			probeJSONLD(doc, result)
		}
	}

	if result.ImageURL == "" || result.Title == "" {
		probeSharedData(body, result)
	}

	result.ImageURL = html.UnescapeString(result.ImageURL)
	result.Title = html.UnescapeString(result.Title)
	return result
}

func metaContent(doc *goquery.Document, property string) string {
	sel := fmt.Sprintf(`meta[property="%s"], meta[name="%s"]`, property, property)
	content, _ := doc.Find(sel).First().Attr("content")
	return content
}

// probeJSONLD reads the first linked-data block's image and name fields.
func probeJSONLD(doc *goquery.Document, result *Result) {
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var block struct {
			Image json.RawMessage `json:"image"`
			Name  string          `json:"name"`
		}
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			return true
		}
		if result.ImageURL == "" && len(block.Image) > 0 {
			result.ImageURL = firstImage(block.Image)
		}
		if result.Title == "" {
			result.Title = block.Name
		}
		return result.ImageURL == "" || result.Title == ""
	})
}

// firstImage handles JSON-LD's image field being either a string or a
// list of strings.
func firstImage(raw json.RawMessage) string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

// probeSharedData digs the post media out of Instagram's _sharedData blob.
func probeSharedData(body []byte, result *Result) {
	matches := sharedDataRe.FindSubmatch(body)
	if len(matches) < 2 {
		return
	}

	var shared struct {
		EntryData struct {
			PostPage []struct {
				GraphQL struct {
					ShortcodeMedia struct {
						DisplayURL         string `json:"display_url"`
						EdgeMediaToCaption struct {
							Edges []struct {
								Node struct {
									Text string `json:"text"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"edge_media_to_caption"`
					} `json:"shortcode_media"`
				} `json:"graphql"`
			} `json:"PostPage"`
		} `json:"entry_data"`
	}
	if err := json.Unmarshal(matches[1], &shared); err != nil {
		return
	}
	if len(shared.EntryData.PostPage) == 0 {
		return
	}

	media := shared.EntryData.PostPage[0].GraphQL.ShortcodeMedia
	if result.ImageURL == "" && media.DisplayURL != "" {
		result.ImageURL = media.DisplayURL
	}
	if result.Title == "" && len(media.EdgeMediaToCaption.Edges) > 0 {
		if text := media.EdgeMediaToCaption.Edges[0].Node.Text; text != "" {
			if len(text) > 100 {
				text = text[:100]
			}
			result.Title = text
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncateForLog(s string) string {
	if len(s) > 80 {
		return s[:80] + "..."
	}
	return s
}
