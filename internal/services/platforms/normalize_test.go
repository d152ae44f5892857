package platforms

import (
	"testing"

	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
)

func TestDedupeByHeight(t *testing.T) {
	formats := []extractor.RawFormat{
		{FormatID: "a", Height: 1080},
		{FormatID: "b", Height: 720},
		{FormatID: "c", Height: 1080},
		{FormatID: "d", Height: 0},
		{FormatID: "e", Height: 480},
	}
	sortByHeightDesc(formats)
	out := dedupeByHeight(formats)

	if len(out) != 3 {
		t.Fatalf("Expected 3 formats, got %d", len(out))
	}
	if out[0].Height != 1080 || out[1].Height != 720 || out[2].Height != 480 {
		t.Errorf("Unexpected ordering: %+v", out)
	}
	// Stable sort keeps the first-listed 1080p variant.
	if out[0].FormatID != "a" {
		t.Errorf("Expected first 1080p variant to survive, got %s", out[0].FormatID)
	}
}

func TestRoundBitrate(t *testing.T) {
	testCases := []struct {
		name     string
		abr      float64
		expected int
	}{
		{"Whole value", 128, 128},
		{"Rounds up", 127.9, 128},
		{"Rounds down", 128.2, 128},
		{"Zero defaults", 0, 128},
		{"Negative defaults", -1, 128},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := roundBitrate(tc.abr); got != tc.expected {
				t.Errorf("roundBitrate(%v) = %d, want %d", tc.abr, got, tc.expected)
			}
		})
	}
}

func TestShortCodec(t *testing.T) {
	testCases := []struct {
		name     string
		codec    string
		expected string
	}{
		{"RFC 6381 video codec", "avc1.640028", "avc1"},
		{"RFC 6381 audio codec", "mp4a.40.2", "mp4a"},
		{"Bare family", "vp9", "vp9"},
		{"None", "none", ""},
		{"Empty", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := shortCodec(tc.codec); got != tc.expected {
				t.Errorf("shortCodec(%q) = %q, want %q", tc.codec, got, tc.expected)
			}
		})
	}
}

func TestTitleOf(t *testing.T) {
	longDescription := ""
	for i := 0; i < 30; i++ {
		longDescription += "abcdefghij"
	}

	testCases := []struct {
		name     string
		info     *extractor.RawInfo
		expected string
	}{
		{
			name:     "Title preferred",
			info:     &extractor.RawInfo{Title: "A Title", Description: "A description"},
			expected: "A Title",
		},
		{
			name:     "Description fallback",
			info:     &extractor.RawInfo{Description: "A description"},
			expected: "A description",
		},
		{
			name:     "Description capped at 100 characters",
			info:     &extractor.RawInfo{Description: longDescription},
			expected: longDescription[:100],
		},
		{
			name:     "Platform default",
			info:     &extractor.RawInfo{},
			expected: "Untitled",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := titleOf(tc.info, "Untitled"); got != tc.expected {
				t.Errorf("titleOf = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestAuthorOf(t *testing.T) {
	if got := authorOf(&extractor.RawInfo{Uploader: "up", UploaderURL: "u1"}); got == nil || got.Name != "up" || got.URL != "u1" {
		t.Errorf("Expected uploader author, got %+v", got)
	}
	if got := authorOf(&extractor.RawInfo{Channel: "ch", ChannelURL: "c1"}); got == nil || got.Name != "ch" || got.URL != "c1" {
		t.Errorf("Expected channel fallback, got %+v", got)
	}
	if got := authorOf(&extractor.RawInfo{}); got != nil {
		t.Errorf("Expected nil author, got %+v", got)
	}
}

func TestEnsureFormats(t *testing.T) {
	out := ensureFormats(nil)
	if len(out) != 1 {
		t.Fatalf("Expected single fallback format, got %d", len(out))
	}
	if out[0].FormatID != "best" || out[0].Type != models.FormatTypeVideo || out[0].Container != "mp4" {
		t.Errorf("Unexpected fallback format: %+v", out[0])
	}

	existing := []models.VideoFormat{{FormatID: "22"}}
	if got := ensureFormats(existing); len(got) != 1 || got[0].FormatID != "22" {
		t.Errorf("Expected existing formats untouched, got %+v", got)
	}
}

func TestPickUserAgent(t *testing.T) {
	pool := []string{"ua-1", "ua-2"}
	for i := 0; i < 20; i++ {
		got := pickUserAgent(pool)
		if got != "ua-1" && got != "ua-2" {
			t.Fatalf("pickUserAgent returned value outside pool: %q", got)
		}
	}
	if got := pickUserAgent(nil); got != "" {
		t.Errorf("Expected empty string for empty pool, got %q", got)
	}
}
