package site

import (
	"net/url"
	"regexp"

	"teachgrab/internal/media"
)

// Match is a classified URL: the site it belongs to, the resource id,
// and whether the input carried the escape prefix.
type Match struct {
	Site     media.Site
	ID       string
	Prefixed bool
}

var (
	lecturePathRe = regexp.MustCompile(`^/courses/[^/]+/lectures/(\d+)`)
	coursePathRe  = regexp.MustCompile(`^/(?:courses|p)/(?:enrolled/)?([^/?#&]+)`)
)

// MatchLecture reports whether rawURL points at a single lecture.
// Unprefixed URLs must belong to a registered site; prefixed URLs may
// use any hostname.
func MatchLecture(rawURL string) (Match, bool) {
	return match(rawURL, lecturePathRe)
}

// MatchCourse reports whether rawURL points at a course page. A URL
// that also matches the lecture shape is always a lecture, never a
// course.
func MatchCourse(rawURL string) (Match, bool) {
	if _, ok := MatchLecture(rawURL); ok {
		return Match{}, false
	}
	return match(rawURL, coursePathRe)
}

func match(rawURL string, pathRe *regexp.Regexp) (Match, bool) {
	stripped, prefixed := StripPrefix(rawURL)

	u, err := url.Parse(stripped)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Match{}, false
	}

	m := pathRe.FindStringSubmatch(u.Path)
	if m == nil {
		return Match{}, false
	}

	var s media.Site
	if prefixed {
		s = ForHost(u.Host)
	} else {
		var ok bool
		s, ok = Lookup(u.Host)
		if !ok {
			return Match{}, false
		}
	}

	return Match{Site: s, ID: m[1], Prefixed: prefixed}, true
}
