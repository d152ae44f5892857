package platforms

import (
	"context"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
)

var redditUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
}

type Reddit struct {
	runner     extractor.Runner
	userAgents []string
}

func NewReddit(runner extractor.Runner) *Reddit {
	return &Reddit{
		runner:     runner,
		userAgents: redditUserAgents,
	}
}

func (r *Reddit) Parse(ctx context.Context, url, cookies string) (*models.ParsedVideo, error) {
	info, err := r.runner.Dump(ctx, url, extractor.Options{
		UserAgent: pickUserAgent(r.userAgents),
		Cookies:   cookies,
	})
	if err != nil {
		return nil, err
	}
	return r.normalize(info), nil
}

func (r *Reddit) normalize(info *extractor.RawInfo) *models.ParsedVideo {
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

	// No video formats but a direct media URL: probably an image post.
	// The entry still says "video" here, unlike Facebook's detection
	// (known quirk, signals differ per platform).
	if len(formats) == 0 && info.URL != "" {
		formats = append(formats, models.VideoFormat{
			FormatID:  "best",
			Quality:   "Original",
			Type:      models.FormatTypeVideo,
			Container: containerOf(info.Ext, "mp4"),
		})
	}

	return &models.ParsedVideo{
		ContentType: models.ContentTypeVideo,
		Title:       titleOf(info, "Reddit Post"),
		Description: info.Description,
		Thumbnail:   info.BestThumbnail(),
		Duration:    roundDuration(info.Duration),
		Author:      authorOf(info),
		Formats:     ensureFormats(formats),
	}
}
