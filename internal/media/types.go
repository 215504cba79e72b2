// Package media defines shared types for the teachgrab application.
package media

import (
	"fmt"
	"net/url"
)

// Site identifies a course-platform host and the namespace under which
// its credentials are stored.
type Site struct {
	Host      string // e.g., "gns3.teachable.com"
	Namespace string // credential lookup key, e.g., "gns3"
}

// LectureReference points at a single lecture without resolving it.
// Resolution to a playable stream is deferred until the reference is used.
type LectureReference struct {
	ID       string // numeric lecture id, may be empty if the link had none
	URL      string // absolute lecture URL, prefixed if the course URL was
	Title    string // display title from the course listing
	Prefixed bool   // whether URL carries the site escape prefix
}

// ChapterInfo places a lecture within its course section.
// Number is 1-based; 0 means the position could not be determined.
// Title is empty when the section-title run was broken or Number is
// out of bounds.
type ChapterInfo struct {
	Number int
	Title  string
}

// Lecture is a fully resolved lecture: playback URL plus metadata.
type Lecture struct {
	ID          string
	Title       string
	PlaybackURL string
	Chapter     ChapterInfo
}

// Course is an ordered playlist of lecture references.
type Course struct {
	ID       string
	Title    string
	Lectures []LectureReference
}

// PlaybackTarget holds the signed playback parameters returned by the
// hotmart side-channel API. Transient, never cached.
type PlaybackTarget struct {
	VideoID   string
	Signature string
	Token     string
}

// URL combines the playback parameters into the hotmart embed URL.
func (p PlaybackTarget) URL() string {
	return fmt.Sprintf("https://player.hotmart.com/embed/%s?signature=%s&token=%s",
		url.PathEscape(p.VideoID), url.QueryEscape(p.Signature), url.QueryEscape(p.Token))
}

// Stream is the downstream hand-off: a playable URL plus metadata hints
// that override whatever the generic resolver would derive on its own.
type Stream struct {
	URL           string
	LectureID     string
	Title         string
	Chapter       string
	ChapterNumber int
}
