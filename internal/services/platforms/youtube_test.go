package platforms

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
	"github.com/unisave/unisave/internal/utils"
)

func TestYouTubeParseClientChain(t *testing.T) {
	info := &extractor.RawInfo{Title: "Video"}

	t.Run("First client succeeds", func(t *testing.T) {
		runner := &stubRunner{infos: []*extractor.RawInfo{info}}
		yt := NewYouTube(runner)

		got, err := yt.Parse(context.Background(), "https://youtube.com/watch?v=abc", "")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got.Title != "Video" {
			t.Errorf("Title = %q, want %q", got.Title, "Video")
		}
		if runner.calls != 1 {
			t.Errorf("Expected 1 tool invocation, got %d", runner.calls)
		}
	})

	t.Run("Later client succeeds after failures", func(t *testing.T) {
		runner := &stubRunner{
			errs:  []error{utils.NewExtractionError("bot check"), utils.NewExtractionError("bot check"), nil},
			infos: []*extractor.RawInfo{nil, nil, info},
		}
		yt := NewYouTube(runner)

		got, err := yt.Parse(context.Background(), "https://youtube.com/watch?v=abc", "")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got == nil {
			t.Fatal("Expected parsed content")
		}
		if runner.calls != 3 {
			t.Errorf("Expected 3 tool invocations, got %d", runner.calls)
		}
	})

	t.Run("All clients fail returns first error", func(t *testing.T) {
		first := utils.NewContentNotFoundError()
		runner := &stubRunner{
			errs: []error{first, utils.NewExtractionError("later"), utils.NewExtractionError("later")},
		}
		yt := NewYouTube(runner)

		_, err := yt.Parse(context.Background(), "https://youtube.com/watch?v=abc", "")
		if !errors.Is(err, first) {
			t.Errorf("Expected first client's error, got %v", err)
		}
		if runner.calls != 3 {
			t.Errorf("Expected all clients tried, got %d invocations", runner.calls)
		}
	})

	t.Run("Missing tool aborts immediately", func(t *testing.T) {
		runner := &stubRunner{
			errs: []error{utils.NewToolUnavailableError(), nil, nil},
		}
		yt := NewYouTube(runner)

		_, err := yt.Parse(context.Background(), "https://youtube.com/watch?v=abc", "")
		var appErr *utils.AppError
		if !errors.As(err, &appErr) || appErr.Code != utils.ErrorCodeToolUnavailable {
			t.Fatalf("Expected tool unavailable error, got %v", err)
		}
		if runner.calls != 1 {
			t.Errorf("Expected a single invocation, got %d", runner.calls)
		}
	})
}

func TestYouTubeNormalize(t *testing.T) {
	runner := &stubRunner{infos: []*extractor.RawInfo{{
		Title:     "Test Video",
		Duration:  212.6,
		Thumbnail: "https://i.ytimg.com/t.jpg",
		Uploader:  "Channel",
		Formats: []extractor.RawFormat{
			{FormatID: "18", Ext: "mp4", Height: 360, VCodec: "avc1.42001E", ACodec: "mp4a.40.2", Filesize: 1000},
			{FormatID: "22", Ext: "mp4", Height: 720, VCodec: "avc1.64001F", ACodec: "mp4a.40.2", Filesize: 2000},
			{FormatID: "137", Ext: "mp4", Height: 1080, VCodec: "avc1.640028", ACodec: "none", FPS: 30},
			{FormatID: "303", Ext: "webm", Height: 1080, VCodec: "vp9", ACodec: "none"},
			{FormatID: "140", Ext: "m4a", VCodec: "none", ACodec: "mp4a.40.2", ABR: 129.5, ASR: 44100},
			{FormatID: "251", Ext: "webm", VCodec: "none", ACodec: "opus", ABR: 160},
			{FormatID: "141", Ext: "m4a", VCodec: "none", ACodec: "mp4a.40.2", ABR: 256},
		},
	}}}
	yt := NewYouTube(runner)

	got, err := yt.Parse(context.Background(), "https://youtube.com/watch?v=abc", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var video, audio []models.VideoFormat
	for _, f := range got.Formats {
		switch f.Type {
		case models.FormatTypeVideo:
			video = append(video, f)
		case models.FormatTypeAudio:
			audio = append(audio, f)
		}
	}

	// mp4 only, deduplicated by height, best first. The webm 1080p
	// variant never enters the list.
	if len(video) != 3 {
		t.Fatalf("Expected 3 video formats, got %d: %+v", len(video), video)
	}
	if video[0].Quality != "1080p" || video[1].Quality != "720p" || video[2].Quality != "360p" {
		t.Errorf("Unexpected video ordering: %+v", video)
	}
	if video[0].Codec != "avc1" {
		t.Errorf("Codec = %q, want avc1", video[0].Codec)
	}

	// 129.5 rounds to 130 and 160 stays 160, neither canonical, both
	// dropped. Only the 256kbps source survives.
	if len(audio) != 1 {
		t.Fatalf("Expected 1 audio format, got %d: %+v", len(audio), audio)
	}
	if audio[0].Quality != "256kbps" || audio[0].FormatID != "141" {
		t.Errorf("Unexpected audio format: %+v", audio[0])
	}

	if got.Duration != 213 {
		t.Errorf("Duration = %d, want 213", got.Duration)
	}
	if got.Author == nil || got.Author.Name != "Channel" {
		t.Errorf("Unexpected author: %+v", got.Author)
	}
	if got.ContentType != models.ContentTypeVideo {
		t.Errorf("ContentType = %q, want video", got.ContentType)
	}
}

func TestYouTubeNormalizeNoCanonicalAudio(t *testing.T) {
	runner := &stubRunner{infos: []*extractor.RawInfo{{
		Title: "Video",
		Formats: []extractor.RawFormat{
			{FormatID: "251", Ext: "webm", VCodec: "none", ACodec: "opus", ABR: 160},
			{FormatID: "250", Ext: "webm", VCodec: "none", ACodec: "opus", ABR: 70},
		},
	}}}
	yt := NewYouTube(runner)

	got, err := yt.Parse(context.Background(), "https://youtube.com/watch?v=abc", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(got.Formats) != 1 {
		t.Fatalf("Expected single synthesized audio entry, got %+v", got.Formats)
	}
	f := got.Formats[0]
	if f.Type != models.FormatTypeAudio || f.FormatID != "251" || f.Quality != "160kbps" || f.Container != "mp3" {
		t.Errorf("Unexpected synthesized audio: %+v", f)
	}
}

func TestYouTubeNormalizeEmptyFormats(t *testing.T) {
	runner := &stubRunner{infos: []*extractor.RawInfo{{Title: "Video"}}}
	yt := NewYouTube(runner)

	got, err := yt.Parse(context.Background(), "https://youtube.com/watch?v=abc", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got.Formats) != 1 || got.Formats[0].FormatID != "best" {
		t.Errorf("Expected fallback format, got %+v", got.Formats)
	}
}

func TestYouTubeNormalizeIdempotent(t *testing.T) {
	info := &extractor.RawInfo{
		Title: "Video",
		Formats: []extractor.RawFormat{
			{FormatID: "22", Ext: "mp4", Height: 720, VCodec: "avc1", ACodec: "mp4a"},
			{FormatID: "140", Ext: "m4a", VCodec: "none", ACodec: "mp4a", ABR: 128},
		},
	}
	runner := &stubRunner{infos: []*extractor.RawInfo{info, info}}
	yt := NewYouTube(runner)

	first, err := yt.Parse(context.Background(), "https://youtube.com/watch?v=abc", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := yt.Parse(context.Background(), "https://youtube.com/watch?v=abc", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// User-agent randomization must never leak into the shaped output.
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Normalization is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestYouTubeParsePlaylist(t *testing.T) {
	entries := make([]extractor.RawEntry, 10)
	for i := range entries {
		entries[i] = extractor.RawEntry{ID: "vid", Title: "Item", Duration: 60}
	}

	t.Run("Full page implies more", func(t *testing.T) {
		runner := &stubRunner{entries: entries}
		yt := NewYouTube(runner)

		page, err := yt.ParsePlaylist(context.Background(), "https://youtube.com/playlist?list=PL1", 10, 0)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !page.HasMore {
			t.Error("Expected HasMore for a full page")
		}
		if page.NextOffset != 10 {
			t.Errorf("NextOffset = %d, want 10", page.NextOffset)
		}
		if page.Items[0].URL != "https://youtube.com/watch?v=vid" {
			t.Errorf("Unexpected item URL: %s", page.Items[0].URL)
		}
		if runner.lastOpts.PlaylistStart != 1 || runner.lastOpts.PlaylistEnd != 10 {
			t.Errorf("Unexpected window: start=%d end=%d", runner.lastOpts.PlaylistStart, runner.lastOpts.PlaylistEnd)
		}
	})

	t.Run("Short page ends paging", func(t *testing.T) {
		runner := &stubRunner{entries: entries[:3]}
		yt := NewYouTube(runner)

		page, err := yt.ParsePlaylist(context.Background(), "https://youtube.com/playlist?list=PL1", 10, 20)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if page.HasMore {
			t.Error("Expected HasMore to be false for a short page")
		}
		if len(page.Items) != 3 {
			t.Errorf("Expected 3 items, got %d", len(page.Items))
		}
		if runner.lastOpts.PlaylistStart != 21 || runner.lastOpts.PlaylistEnd != 30 {
			t.Errorf("Unexpected window: start=%d end=%d", runner.lastOpts.PlaylistStart, runner.lastOpts.PlaylistEnd)
		}
	})
}
