// Package extract hands resolved playback URLs off to a stream
// resolver. The hotmart hand-off is url-transparent: this layer only
// supplies the URL and metadata hints, never the stream format.
package extract

import (
	"fmt"

	"teachgrab/internal/httputil"
	"teachgrab/internal/media"
)

// Hints carries lecture metadata that overrides whatever the resolver
// would derive from the URL on its own.
type Hints struct {
	LectureID     string
	Title         string
	Chapter       string
	ChapterNumber int
}

// StreamResolver resolves a playback URL into a playable stream.
type StreamResolver interface {
	Resolve(playbackURL string, hints Hints) (*media.Stream, error)
}

// New returns the default resolver.
func New() StreamResolver {
	return Passthrough{}
}

// Passthrough treats the playback URL as directly playable and attaches
// the hints. Players and ffmpeg both consume embed URLs as-is.
type Passthrough struct{}

// Resolve implements StreamResolver.
func (Passthrough) Resolve(playbackURL string, hints Hints) (*media.Stream, error) {
	if err := httputil.ValidateURL(playbackURL); err != nil {
		return nil, fmt.Errorf("invalid playback URL: %w", err)
	}
	return &media.Stream{
		URL:           playbackURL,
		LectureID:     hints.LectureID,
		Title:         hints.Title,
		Chapter:       hints.Chapter,
		ChapterNumber: hints.ChapterNumber,
	}, nil
}

// HintsFor builds resolver hints from a resolved lecture.
func HintsFor(l *media.Lecture) Hints {
	return Hints{
		LectureID:     l.ID,
		Title:         l.Title,
		Chapter:       l.Chapter.Title,
		ChapterNumber: l.Chapter.Number,
	}
}
