// Package platform maps content URLs to the platform they belong to.
package platform

import (
	"regexp"

	"github.com/unisave/unisave/internal/models"
)

type pattern struct {
	platform models.Platform
	re       *regexp.Regexp
}

// Ordered: the first matching pattern wins.
var patterns = []pattern{
	{models.PlatformYouTube, regexp.MustCompile(`(?i)(?:youtube\.com|youtu\.be)`)},
	{models.PlatformInstagram, regexp.MustCompile(`(?i)instagram\.com`)},
	{models.PlatformTikTok, regexp.MustCompile(`(?i)tiktok\.com|vm\.tiktok\.com`)},
	{models.PlatformFacebook, regexp.MustCompile(`(?i)facebook\.com|fb\.watch|fb\.com`)},
	{models.PlatformReddit, regexp.MustCompile(`(?i)reddit\.com|redd\.it`)},
	{models.PlatformSoundCloud, regexp.MustCompile(`(?i)soundcloud\.com`)},
	{models.PlatformSpotify, regexp.MustCompile(`(?i)(?:open\.)?spotify\.com`)},
}

// Detect returns the platform a URL belongs to, or ("", false) when the
// URL matches no known platform. It is pure and never fails: no URL
// normalization is performed beyond pattern testing.
func Detect(url string) (models.Platform, bool) {
	for _, p := range patterns {
		if p.re.MatchString(url) {
			return p.platform, true
		}
	}
	return "", false
}

// IsSupported reports whether a URL belongs to any known platform.
func IsSupported(url string) bool {
	_, ok := Detect(url)
	return ok
}
