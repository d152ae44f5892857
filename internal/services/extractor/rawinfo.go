package extractor

// RawInfo is the structural contract of the extraction tool's
// --dump-json output: only the fields the normalizers actually read.
// Absent fields stay at their zero value and degrade to defaults
// downstream, never to a failure.
type RawInfo struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Thumbnail   string         `json:"thumbnail"`
	Thumbnails  []RawThumbnail `json:"thumbnails"`
	Duration    float64        `json:"duration"`
	Uploader    string         `json:"uploader"`
	UploaderURL string         `json:"uploader_url"`
	Channel     string         `json:"channel"`
	ChannelURL  string         `json:"channel_url"`
	URL         string         `json:"url"`
	Ext         string         `json:"ext"`
	Filesize    int64          `json:"filesize"`
	Formats     []RawFormat    `json:"formats"`
}

type RawThumbnail struct {
	URL string `json:"url"`
}

// RawFormat is one stream variant as reported by the tool. A codec value
// of "none" means the stream lacks that track entirely.
type RawFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	ABR            float64 `json:"abr"`
	ASR            int     `json:"asr"`
	FPS            float64 `json:"fps"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	FormatNote     string  `json:"format_note"`
}

// HasVideo reports whether the format carries a video track.
func (f RawFormat) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != "none"
}

// HasAudio reports whether the format carries an audio track.
func (f RawFormat) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != "none"
}

// Size returns the reported filesize, falling back to the tool's
// approximation when the exact value is absent.
func (f RawFormat) Size() int64 {
	if f.Filesize > 0 {
		return f.Filesize
	}
	return f.FilesizeApprox
}

// BestThumbnail picks the top-level thumbnail, falling back to the first
// entry of the thumbnails list.
func (i *RawInfo) BestThumbnail() string {
	if i.Thumbnail != "" {
		return i.Thumbnail
	}
	if len(i.Thumbnails) > 0 {
		return i.Thumbnails[0].URL
	}
	return ""
}

// RawEntry is one line of a --flat-playlist NDJSON listing.
type RawEntry struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Duration   float64        `json:"duration"`
	Thumbnails []RawThumbnail `json:"thumbnails"`
}
