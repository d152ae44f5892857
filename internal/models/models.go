package models

// Platform identifies the source site a content URL belongs to.
type Platform string

const (
	PlatformYouTube    Platform = "youtube"
	PlatformInstagram  Platform = "instagram"
	PlatformTikTok     Platform = "tiktok"
	PlatformFacebook   Platform = "facebook"
	PlatformReddit     Platform = "reddit"
	PlatformSoundCloud Platform = "soundcloud"
	PlatformSpotify    Platform = "spotify"
)

type ContentType string

const (
	ContentTypeVideo    ContentType = "video"
	ContentTypeAudio    ContentType = "audio"
	ContentTypePlaylist ContentType = "playlist"
)

type FormatType string

const (
	FormatTypeVideo FormatType = "video"
	FormatTypeAudio FormatType = "audio"
	FormatTypeImage FormatType = "image"
)

// VideoFormat is one selectable rendition of a parsed content item.
// FormatID is opaque to clients; it is only meaningful when handed back
// to the stream endpoint (it may be a bare format code, an "<id>+bestaudio"
// merge token, or one of the sentinels "best", "bestaudio", "image").
type VideoFormat struct {
	FormatID   string     `json:"formatId"`
	Quality    string     `json:"quality"`
	Type       FormatType `json:"type"`
	Container  string     `json:"container"`
	Codec      string     `json:"codec,omitempty"`
	Filesize   int64      `json:"filesize,omitempty"`
	FPS        float64    `json:"fps,omitempty"`
	SampleRate int        `json:"sampleRate,omitempty"`
}

type Author struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ParsedVideo is the canonical result of parsing one source URL.
// Formats is non-empty by contract: every normalizer guarantees at least
// one fallback entry.
type ParsedVideo struct {
	ContentType ContentType   `json:"contentType"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Thumbnail   string        `json:"thumbnail,omitempty"`
	Duration    int           `json:"duration,omitempty"`
	Author      *Author       `json:"author,omitempty"`
	Formats     []VideoFormat `json:"formats"`
}

type ParseRequest struct {
	URL     string `json:"url" binding:"required"`
	Cookies string `json:"cookies,omitempty"`
}

// ParseData flattens ParsedVideo with the session id and the echoed
// source URL the client needs for the later stream call.
type ParseData struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
	ParsedVideo
}

type ParseResponse struct {
	Success bool      `json:"success"`
	Data    ParseData `json:"data"`
}

type StreamURLResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type BatchRequest struct {
	URL    string `json:"url" binding:"required"`
	Limit  int    `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
	Offset int    `json:"offset,omitempty" binding:"omitempty,min=0"`
}

type PlaylistInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TotalCount int    `json:"totalCount"`
}

type PlaylistItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	URL       string `json:"url"`
}

// PlaylistPage is one window of a flat playlist listing. HasMore is an
// approximation: true iff the returned page was exactly Limit items long.
type PlaylistPage struct {
	Playlist   PlaylistInfo   `json:"playlist"`
	Items      []PlaylistItem `json:"items"`
	HasMore    bool           `json:"hasMore"`
	NextOffset int            `json:"nextOffset"`
}

type BatchResponse struct {
	Success bool         `json:"success"`
	Data    PlaylistPage `json:"data"`
}
