package platforms

import (
	"context"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
	"github.com/unisave/unisave/internal/services/scraper"
	"github.com/unisave/unisave/internal/utils"
)

var instagramUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15",
}

// instagramAppVersion is the extractor hint that keeps the tool's
// Instagram API calls on a version the site still serves.
const instagramAppVersion = "instagram:app_version=275.0.0.27.98"

type Instagram struct {
	runner     extractor.Runner
	scraper    scraper.ImageScraper
	userAgents []string
}

func NewInstagram(runner extractor.Runner, sc scraper.ImageScraper) *Instagram {
	return &Instagram{
		runner:     runner,
		scraper:    sc,
		userAgents: instagramUserAgents,
	}
}

// Parse tries the extraction tool first (videos and reels), then falls
// back to page scraping for plain image posts. When both strategies fail
// the tool's error propagates, not the scraper's.
func (i *Instagram) Parse(ctx context.Context, url, cookies string) (*models.ParsedVideo, error) {
	info, toolErr := i.runner.Dump(ctx, url, extractor.Options{
		UserAgent:     pickUserAgent(i.userAgents),
		Cookies:       cookies,
		ExtractorArgs: instagramAppVersion,
	})
	if toolErr == nil {
		return i.normalize(info), nil
	}

	utils.LogInfo(ctx, "Tool extraction failed, trying web scraping", utils.Fields{
		"url":   url,
		"error": toolErr.Error(),
	})

	scraped, scrapeErr := i.scraper.ScrapeImage(ctx, url)
	if scrapeErr != nil {
		utils.LogError(ctx, "Scraping also failed", scrapeErr, utils.Fields{"url": url})
		return nil, toolErr
	}

	title := scraped.Title
	if title == "" {
		title = "Instagram Post"
	}

	// contentType stays "video" even for image posts (known quirk).
	return &models.ParsedVideo{
		ContentType: models.ContentTypeVideo,
		Title:       title,
		Thumbnail:   scraped.ImageURL,
		Formats: []models.VideoFormat{{
			FormatID:  "image",
			Quality:   "Original",
			Type:      models.FormatTypeImage,
			Container: "jpg",
		}},
	}, nil
}

func (i *Instagram) normalize(info *extractor.RawInfo) *models.ParsedVideo {
	// The tool frequently reports Instagram audio and video as separate
	// streams, so a combined best entry always leads the list.
	formats := []models.VideoFormat{{
		FormatID:  "best",
		Quality:   "Best (HD with Audio)",
		Type:      models.FormatTypeVideo,
		Container: "mp4",
	}}

	var video []extractor.RawFormat
	for _, f := range info.Formats {
		if f.HasVideo() && f.Ext == "mp4" {
			video = append(video, f)
		}
	}
	sortByHeightDesc(video)
	for _, f := range dedupeByHeight(video) {
		formatID := f.FormatID
		if !f.HasAudio() {
			// Video-only stream: mark it for a later merge with the
			// best audio track.
			formatID = f.FormatID + "+bestaudio"
		}
		formats = append(formats, models.VideoFormat{
			FormatID:  formatID,
			Quality:   quality(f.Height),
			Type:      models.FormatTypeVideo,
			Container: "mp4",
			Codec:     shortCodec(f.VCodec),
			Filesize:  f.Size(),
		})
	}

	// Only the synthetic best entry survived: likely an image post.
	if len(formats) == 1 && info.BestThumbnail() != "" {
		formats = append(formats, models.VideoFormat{
			FormatID:  "image",
			Quality:   "Original",
			Type:      models.FormatTypeImage,
			Container: "jpg",
		})
	}

	formats = append(formats, models.VideoFormat{
		FormatID:  "bestaudio",
		Quality:   "Audio Only (MP3)",
		Type:      models.FormatTypeAudio,
		Container: "mp3",
	})

	return &models.ParsedVideo{
		ContentType: models.ContentTypeVideo,
		Title:       titleOf(info, "Instagram Post"),
		Description: info.Description,
		Thumbnail:   info.BestThumbnail(),
		Duration:    roundDuration(info.Duration),
		Author:      authorOf(info),
		Formats:     ensureFormats(formats),
	}
}
