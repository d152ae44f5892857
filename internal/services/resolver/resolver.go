// Package resolver turns a (content URL, format identifier) pair into
// something a client can consume: a direct media URL, or a locally
// merged file when the format identifier asks for two streams.
package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/unisave/unisave/internal/services/extractor"
	"github.com/unisave/unisave/internal/services/scraper"
	"github.com/unisave/unisave/internal/utils"
)

const resolveUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Resolution is either a direct URL or a downloaded local file, never
// both. The caller owns FilePath and must remove it after the response
// is fully sent.
type Resolution struct {
	URL      string
	FilePath string
}

type Resolver struct {
	runner  extractor.Runner
	scraper scraper.ImageScraper
	tmpDir  string
}

func New(runner extractor.Runner, sc scraper.ImageScraper) *Resolver {
	return &Resolver{
		runner:  runner,
		scraper: sc,
		tmpDir:  os.TempDir(),
	}
}

// Resolve handles the full format-identifier contract: the "image"
// sentinel goes through page scraping, a merge token ("<id>+bestaudio")
// downloads a locally muxed file, anything else resolves to a direct URL.
func (r *Resolver) Resolve(ctx context.Context, contentURL, formatID string) (*Resolution, error) {
	if formatID == "image" {
		result, err := r.scraper.ScrapeImage(ctx, contentURL)
		if err != nil {
			return nil, err
		}
		return &Resolution{URL: result.ImageURL}, nil
	}

	if strings.Contains(formatID, "+") {
		path, err := r.download(ctx, contentURL, formatID)
		if err != nil {
			return nil, err
		}
		return &Resolution{FilePath: path}, nil
	}

	url, err := r.resolveDirect(ctx, contentURL, formatID)
	if err != nil {
		return nil, err
	}
	return &Resolution{URL: url}, nil
}

// ResolveURL always takes the single-stream path: merge tokens are passed
// through to the tool's selector and the first reported URL wins.
func (r *Resolver) ResolveURL(ctx context.Context, contentURL, formatID string) (string, error) {
	if formatID == "image" {
		result, err := r.scraper.ScrapeImage(ctx, contentURL)
		if err != nil {
			return "", err
		}
		return result.ImageURL, nil
	}
	return r.resolveDirect(ctx, contentURL, formatID)
}

func (r *Resolver) resolveDirect(ctx context.Context, contentURL, formatID string) (string, error) {
	selector := formatSelector(formatID)
	utils.LogInfo(ctx, "Resolving direct URL", utils.Fields{
		"url":      contentURL,
		"selector": selector,
	})
	return r.runner.ResolveURL(ctx, contentURL, selector, extractor.Options{
		UserAgent: resolveUserAgent,
	})
}

// download has the tool produce one muxed file at a collision-resistant
// temp path. Cleanup is the caller's job on every path after this
// returns; a crash in between leaks the file (accepted operational risk).
func (r *Resolver) download(ctx context.Context, contentURL, formatID string) (string, error) {
	outPath := filepath.Join(r.tmpDir, fmt.Sprintf("unisave-%s.mp4", uuid.New().String()))

	utils.LogInfo(ctx, "Downloading merged streams", utils.Fields{
		"url":    contentURL,
		"format": formatID,
		"path":   outPath,
	})

	err := r.runner.Download(ctx, contentURL, formatID, outPath, extractor.Options{
		UserAgent: resolveUserAgent,
	})
	if err != nil {
		// The tool may leave a partial file behind on failure.
		os.Remove(outPath)
		return "", err
	}

	if _, statErr := os.Stat(outPath); statErr != nil {
		return "", utils.NewStreamError("Download produced no output file")
	}
	return outPath, nil
}

// formatSelector maps a format identifier to the tool's selector syntax,
// preferring a best mp4 fallback chain for empty or sentinel values.
func formatSelector(formatID string) string {
	if formatID == "" || formatID == "best" {
		return "best[ext=mp4]/best"
	}
	return fmt.Sprintf("%s/best[ext=mp4]/best", formatID)
}
