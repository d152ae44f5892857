package platforms

import (
	"context"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
)

var tiktokUserAgents = []string{
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
}

type TikTok struct {
	runner     extractor.Runner
	userAgents []string
}

func NewTikTok(runner extractor.Runner) *TikTok {
	return &TikTok{
		runner:     runner,
		userAgents: tiktokUserAgents,
	}
}

func (t *TikTok) Parse(ctx context.Context, url, cookies string) (*models.ParsedVideo, error) {
	info, err := t.runner.Dump(ctx, url, extractor.Options{
		UserAgent: pickUserAgent(t.userAgents),
		Cookies:   cookies,
	})
	if err != nil {
		return nil, err
	}
	return t.normalize(info), nil
}

func (t *TikTok) normalize(info *extractor.RawInfo) *models.ParsedVideo {
	var formats []models.VideoFormat

	var video []extractor.RawFormat
	for _, f := range info.Formats {
		if f.HasVideo() {
			video = append(video, f)
		}
	}
	sortByHeightDesc(video)
	for _, f := range dedupeByHeight(video) {
		formats = append(formats, models.VideoFormat{
			FormatID:  f.FormatID,
			Quality:   quality(f.Height),
			Type:      models.FormatTypeVideo,
			Container: containerOf(f.Ext, "mp4"),
			Codec:     shortCodec(f.VCodec),
			Filesize:  f.Size(),
		})
	}

	// Sound extraction is a first-class TikTok use case, so an audio-only
	// entry is always offered.
	formats = append(formats, models.VideoFormat{
		FormatID:  "bestaudio",
		Quality:   "Audio Only (MP3)",
		Type:      models.FormatTypeAudio,
		Container: "mp3",
	})

	return &models.ParsedVideo{
		ContentType: models.ContentTypeVideo,
		Title:       titleOf(info, "TikTok Video"),
		Description: info.Description,
		Thumbnail:   info.BestThumbnail(),
		Duration:    roundDuration(info.Duration),
		Author:      authorOf(info),
		Formats:     ensureFormats(formats),
	}
}
