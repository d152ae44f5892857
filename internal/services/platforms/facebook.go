package platforms

import (
	"context"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
)

var facebookUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
}

type Facebook struct {
	runner     extractor.Runner
	userAgents []string
}

func NewFacebook(runner extractor.Runner) *Facebook {
	return &Facebook{
		runner:     runner,
		userAgents: facebookUserAgents,
	}
}

func (fb *Facebook) Parse(ctx context.Context, url, cookies string) (*models.ParsedVideo, error) {
	info, err := fb.runner.Dump(ctx, url, extractor.Options{
		UserAgent: pickUserAgent(fb.userAgents),
		Cookies:   cookies,
	})
	if err != nil {
		return nil, err
	}
	return fb.normalize(info), nil
}

func (fb *Facebook) normalize(info *extractor.RawInfo) *models.ParsedVideo {
	var formats []models.VideoFormat

	// An image post carries no video-coded format at all.
	isImage := true
	for _, f := range info.Formats {
		if f.HasVideo() {
			isImage = false
			break
		}
	}

	if isImage && info.URL != "" {
		formats = append(formats, models.VideoFormat{
			FormatID:  "image",
			Quality:   "Original",
			Type:      models.FormatTypeImage,
			Container: "jpg",
			Filesize:  info.Filesize,
		})
	} else {
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
	}

	// contentType stays "video" for image posts as well (known quirk).
	return &models.ParsedVideo{
		ContentType: models.ContentTypeVideo,
		Title:       titleOf(info, "Facebook Post"),
		Description: info.Description,
		Thumbnail:   info.BestThumbnail(),
		Duration:    roundDuration(info.Duration),
		Author:      authorOf(info),
		Formats:     ensureFormats(formats),
	}
}
