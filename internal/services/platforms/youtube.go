package platforms

import (
	"context"
	"errors"
	"fmt"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
	"github.com/unisave/unisave/internal/utils"
)

// canonicalBitrates is the allowed audio bitrate set; sources outside it
// are dropped unless nothing canonical exists.
var canonicalBitrates = map[int]bool{128: true, 192: true, 256: true, 320: true}

// youtubeClients is the persona chain: tried once each, in this order,
// stopping at the first success. The android client bypasses most bot
// detection, so it goes first.
var youtubeClients = []string{"android", "ios", "web"}

var youtubeUserAgents = []string{
	"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
	"com.google.android.youtube/19.02.35 (Linux; U; Android 14; en_US; Pixel 8 Build/AP1A.240305.019)",
}

type YouTube struct {
	runner     extractor.Runner
	userAgents []string
}

func NewYouTube(runner extractor.Runner) *YouTube {
	return &YouTube{
		runner:     runner,
		userAgents: youtubeUserAgents,
	}
}

// Parse walks the client persona chain sequentially. When every persona
// fails, the first persona's error propagates; later, possibly more
// specific errors are discarded. A missing tool is fatal immediately.
func (y *YouTube) Parse(ctx context.Context, url, cookies string) (*models.ParsedVideo, error) {
	var firstErr error
	for _, client := range youtubeClients {
		info, err := y.runner.Dump(ctx, url, extractor.Options{
			UserAgent:     pickUserAgent(y.userAgents),
			Cookies:       cookies,
			ExtractorArgs: fmt.Sprintf("youtube:player_client=%s", client),
		})
		if err == nil {
			return y.normalize(info), nil
		}

		var appErr *utils.AppError
		if errors.As(err, &appErr) && appErr.Code == utils.ErrorCodeToolUnavailable {
			return nil, err
		}
		if firstErr == nil {
			firstErr = err
		}
		utils.LogWarn(ctx, fmt.Sprintf("%s client failed, trying next client", client), utils.Fields{
			"url": url,
		})
	}
	return nil, firstErr
}

func (y *YouTube) normalize(info *extractor.RawInfo) *models.ParsedVideo {
	var formats []models.VideoFormat

	// Video: mp4-only, deduplicated by resolution, best first.
	var video []extractor.RawFormat
	for _, f := range info.Formats {
		if f.HasVideo() && f.Height > 0 && f.Ext == "mp4" {
			video = append(video, f)
		}
	}
	sortByHeightDesc(video)
	for _, f := range dedupeByHeight(video) {
		formats = append(formats, models.VideoFormat{
			FormatID:  f.FormatID,
			Quality:   fmt.Sprintf("%dp", f.Height),
			Type:      models.FormatTypeVideo,
			Container: containerOf(f.Ext, "mp4"),
			Codec:     shortCodec(f.VCodec),
			Filesize:  f.Size(),
			FPS:       f.FPS,
		})
	}

	// Audio: canonical bitrates only, deduplicated by bitrate.
	var audio []extractor.RawFormat
	for _, f := range info.Formats {
		if !f.HasVideo() && f.HasAudio() {
			audio = append(audio, f)
		}
	}
	sortByBitrateDesc(audio)

	seenBitrates := make(map[int]bool)
	audioCount := 0
	for _, f := range audio {
		bitrate := roundBitrate(f.ABR)
		if seenBitrates[bitrate] || !canonicalBitrates[bitrate] {
			continue
		}
		seenBitrates[bitrate] = true
		container := containerOf(f.Ext, "m4a")
		if f.Ext == "webm" {
			container = "mp3"
		}
		formats = append(formats, models.VideoFormat{
			FormatID:   f.FormatID,
			Quality:    fmt.Sprintf("%dkbps", bitrate),
			Type:       models.FormatTypeAudio,
			Container:  container,
			Codec:      shortCodec(f.ACodec),
			Filesize:   f.Size(),
			SampleRate: f.ASR,
		})
		audioCount++
	}

	// No canonical bitrate matched: surface the single best source instead.
	if audioCount == 0 && len(audio) > 0 {
		best := audio[0]
		formats = append(formats, models.VideoFormat{
			FormatID:  best.FormatID,
			Quality:   fmt.Sprintf("%dkbps", roundBitrate(best.ABR)),
			Type:      models.FormatTypeAudio,
			Container: "mp3",
			Codec:     shortCodec(best.ACodec),
			Filesize:  best.Size(),
		})
	}

	return &models.ParsedVideo{
		ContentType: models.ContentTypeVideo,
		Title:       titleOf(info, "Untitled"),
		Description: info.Description,
		Thumbnail:   info.BestThumbnail(),
		Duration:    roundDuration(info.Duration),
		Author:      authorOf(info),
		Formats:     ensureFormats(formats),
	}
}

// ParsePlaylist lists one window of a flat playlist. HasMore is inferred
// from the page being exactly limit items long, not from a true total.
func (y *YouTube) ParsePlaylist(ctx context.Context, url string, limit, offset int) (*models.PlaylistPage, error) {
	entries, err := y.runner.DumpEntries(ctx, url, extractor.Options{
		UserAgent:     pickUserAgent(y.userAgents),
		ExtractorArgs: "youtube:player_client=android",
		PlaylistStart: offset + 1,
		PlaylistEnd:   offset + limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.PlaylistItem, 0, len(entries))
	for _, e := range entries {
		item := models.PlaylistItem{
			ID:       e.ID,
			Title:    e.Title,
			Duration: roundDuration(e.Duration),
			URL:      fmt.Sprintf("https://youtube.com/watch?v=%s", e.ID),
		}
		if len(e.Thumbnails) > 0 {
			item.Thumbnail = e.Thumbnails[0].URL
		}
		items = append(items, item)
	}

	return &models.PlaylistPage{
		Playlist: models.PlaylistInfo{
			ID:         "playlist",
			Title:      "YouTube Playlist",
			TotalCount: len(items),
		},
		Items:      items,
		HasMore:    len(items) == limit,
		NextOffset: offset + limit,
	}, nil
}
