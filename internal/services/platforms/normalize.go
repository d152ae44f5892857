// Package platforms holds the per-platform parse handlers: each one
// drives the extraction tool and massages its raw output into the
// canonical ParsedVideo shape.
package platforms

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
)

// sortByHeightDesc orders video formats best-first. The sort is stable so
// the first-seen format per resolution survives deduplication.
func sortByHeightDesc(formats []extractor.RawFormat) {
	sort.SliceStable(formats, func(i, j int) bool {
		return formats[i].Height > formats[j].Height
	})
}

// dedupeByHeight walks descending-sorted video formats and keeps the
// first occurrence per distinct resolution, dropping entries with no
// usable height.
func dedupeByHeight(formats []extractor.RawFormat) []extractor.RawFormat {
	seen := make(map[int]bool)
	out := make([]extractor.RawFormat, 0, len(formats))
	for _, f := range formats {
		if f.Height <= 0 || seen[f.Height] {
			continue
		}
		seen[f.Height] = true
		out = append(out, f)
	}
	return out
}

// sortByBitrateDesc orders audio-only formats best-first; stable for the
// same first-seen-wins reason as the video sort.
func sortByBitrateDesc(formats []extractor.RawFormat) {
	sort.SliceStable(formats, func(i, j int) bool {
		return formats[i].ABR > formats[j].ABR
	})
}

// roundBitrate rounds a source bitrate to whole kbps, defaulting to 128
// when the tool reported none.
func roundBitrate(abr float64) int {
	if abr <= 0 {
		return 128
	}
	return int(math.Round(abr))
}

// shortCodec trims an RFC 6381 codec string ("avc1.640028") to its family.
func shortCodec(codec string) string {
	if codec == "" || codec == "none" {
		return ""
	}
	if i := strings.IndexByte(codec, '.'); i >= 0 {
		return codec[:i]
	}
	return codec
}

// quality renders a vertical resolution as its human label.
func quality(height int) string {
	return fmt.Sprintf("%dp", height)
}

func containerOf(ext, fallback string) string {
	if ext != "" {
		return ext
	}
	return fallback
}

func roundDuration(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Round(seconds))
}

// truncateText caps description-derived titles at n characters.
func truncateText(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// titleOf resolves the title fallback chain: source title, then the
// first 100 characters of the description, then a platform default.
func titleOf(info *extractor.RawInfo, platformDefault string) string {
	if info.Title != "" {
		return info.Title
	}
	if info.Description != "" {
		return truncateText(info.Description, 100)
	}
	return platformDefault
}

func authorOf(info *extractor.RawInfo) *models.Author {
	name := info.Uploader
	url := info.UploaderURL
	if name == "" {
		name = info.Channel
		url = info.ChannelURL
	}
	if name == "" {
		return nil
	}
	return &models.Author{Name: name, URL: url}
}

// fallbackFormat guarantees the non-empty-formats contract when nothing
// usable came back from the tool.
func fallbackFormat() models.VideoFormat {
	return models.VideoFormat{
		FormatID:  "best",
		Quality:   "Best",
		Type:      models.FormatTypeVideo,
		Container: "mp4",
	}
}

func ensureFormats(formats []models.VideoFormat) []models.VideoFormat {
	if len(formats) == 0 {
		return []models.VideoFormat{fallbackFormat()}
	}
	return formats
}

// pickUserAgent selects one entry from a fixed pool. Randomization only
// affects the outbound request headers, never the shaped output.
func pickUserAgent(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.Intn(len(pool))]
}
