package platforms

import (
	"context"
	"testing"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
)

func TestTikTokNormalize(t *testing.T) {
	runner := &stubRunner{infos: []*extractor.RawInfo{{
		Title: "Dance",
		Formats: []extractor.RawFormat{
			{FormatID: "h264-720", Ext: "mp4", Height: 720, VCodec: "h264", ACodec: "aac"},
			{FormatID: "h264-540", Ext: "mp4", Height: 540, VCodec: "h264", ACodec: "aac"},
		},
	}}}
	tk := NewTikTok(runner)

	got, err := tk.Parse(context.Background(), "https://tiktok.com/@user/video/1", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(got.Formats) != 3 {
		t.Fatalf("Expected 3 formats, got %+v", got.Formats)
	}
	last := got.Formats[2]
	if last.FormatID != "bestaudio" || last.Type != models.FormatTypeAudio {
		t.Errorf("Expected trailing audio entry, got %+v", last)
	}
}

func TestTikTokAudioAlwaysOffered(t *testing.T) {
	runner := &stubRunner{infos: []*extractor.RawInfo{{Title: "Sound only"}}}
	tk := NewTikTok(runner)

	got, err := tk.Parse(context.Background(), "https://tiktok.com/@user/video/1", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got.Formats) != 1 || got.Formats[0].FormatID != "bestaudio" {
		t.Errorf("Expected lone audio entry, got %+v", got.Formats)
	}
}

func TestFacebookImageDetection(t *testing.T) {
	t.Run("No video formats means image", func(t *testing.T) {
		runner := &stubRunner{infos: []*extractor.RawInfo{{
			Title:    "Photo",
			URL:      "https://scontent.example.com/p.jpg",
			Filesize: 4096,
		}}}
		fb := NewFacebook(runner)

		got, err := fb.Parse(context.Background(), "https://facebook.com/photo/1", "")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(got.Formats) != 1 {
			t.Fatalf("Expected single image format, got %+v", got.Formats)
		}
		f := got.Formats[0]
		if f.FormatID != "image" || f.Type != models.FormatTypeImage || f.Container != "jpg" || f.Filesize != 4096 {
			t.Errorf("Unexpected image format: %+v", f)
		}
		if got.ContentType != models.ContentTypeVideo {
			t.Errorf("ContentType = %q, want video", got.ContentType)
		}
	})

	t.Run("Video formats are deduplicated", func(t *testing.T) {
		runner := &stubRunner{infos: []*extractor.RawInfo{{
			Title: "Clip",
			Formats: []extractor.RawFormat{
				{FormatID: "sd", Ext: "mp4", Height: 360, VCodec: "avc1", ACodec: "aac"},
				{FormatID: "hd", Ext: "mp4", Height: 720, VCodec: "avc1", ACodec: "aac"},
				{FormatID: "hd-alt", Ext: "mp4", Height: 720, VCodec: "avc1", ACodec: "aac"},
			},
		}}}
		fb := NewFacebook(runner)

		got, err := fb.Parse(context.Background(), "https://facebook.com/watch/?v=1", "")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(got.Formats) != 2 {
			t.Fatalf("Expected 2 formats, got %+v", got.Formats)
		}
		if got.Formats[0].FormatID != "hd" || got.Formats[1].FormatID != "sd" {
			t.Errorf("Unexpected ordering: %+v", got.Formats)
		}
	})
}

func TestRedditDirectURLFallback(t *testing.T) {
	runner := &stubRunner{infos: []*extractor.RawInfo{{
		Title: "Picture",
		URL:   "https://i.redd.it/p.png",
		Ext:   "png",
	}}}
	rd := NewReddit(runner)

	got, err := rd.Parse(context.Background(), "https://reddit.com/r/pics/comments/1/x/", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got.Formats) != 1 {
		t.Fatalf("Expected single fallback format, got %+v", got.Formats)
	}
	f := got.Formats[0]
	// Direct-URL posts still report type video, unlike Facebook.
	if f.FormatID != "best" || f.Type != models.FormatTypeVideo || f.Container != "png" {
		t.Errorf("Unexpected fallback format: %+v", f)
	}
}

func TestRedditVideoPost(t *testing.T) {
	runner := &stubRunner{infos: []*extractor.RawInfo{{
		Title: "Clip",
		Formats: []extractor.RawFormat{
			{FormatID: "dash-720", Ext: "mp4", Height: 720, VCodec: "avc1", ACodec: "none"},
			{FormatID: "dash-480", Ext: "mp4", Height: 480, VCodec: "avc1", ACodec: "none"},
		},
	}}}
	rd := NewReddit(runner)

	got, err := rd.Parse(context.Background(), "https://reddit.com/r/videos/comments/1/x/", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got.Formats) != 2 || got.Formats[0].Quality != "720p" {
		t.Errorf("Unexpected formats: %+v", got.Formats)
	}
}
