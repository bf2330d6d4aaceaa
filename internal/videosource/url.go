package videosource

import (
	"net/url"
	"regexp"
)

// Video ids are exactly 11 characters from [A-Za-z0-9_-].
var (
	youtuBePattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([A-Za-z0-9_-]{11})`)
	youtubePattern = regexp.MustCompile(`(?:https?://)?(?:www\.|m\.)?youtube\.com/(?:watch\?v=|shorts/|embed/)([A-Za-z0-9_-]{11})`)
	videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractVideoID pulls a video id out of any of the supported URL shapes:
// youtu.be/<id>, youtube.com/watch?v=<id>, youtube.com/shorts/<id>,
// youtube.com/embed/<id>, with optional www. or m. prefixes. As a last
// resort the query string is checked for a v parameter. Returns false when
// nothing matches.
func ExtractVideoID(s string) (string, bool) {
	if m := youtuBePattern.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	if m := youtubePattern.FindStringSubmatch(s); m != nil {
		return m[1], true
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	if v := u.Query().Get("v"); videoIDPattern.MatchString(v) {
		return v, true
	}
	return "", false
}
