package extract

import (
	"testing"

	"teachgrab/internal/media"
)

func TestPassthroughResolve(t *testing.T) {
	hints := Hints{
		LectureID:     "6842364",
		Title:         "Overview",
		Chapter:       "Welcome",
		ChapterNumber: 1,
	}

	stream, err := Passthrough{}.Resolve("https://player.hotmart.com/embed/abc?signature=s&token=t", hints)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if stream.URL != "https://player.hotmart.com/embed/abc?signature=s&token=t" {
		t.Errorf("URL = %q, want the playback URL unchanged", stream.URL)
	}
	if stream.Title != "Overview" || stream.Chapter != "Welcome" || stream.ChapterNumber != 1 || stream.LectureID != "6842364" {
		t.Errorf("stream metadata = %+v, want the hints carried through", stream)
	}
}

func TestPassthroughRejectsBadURL(t *testing.T) {
	if _, err := (Passthrough{}).Resolve("javascript:alert(1)", Hints{}); err == nil {
		t.Fatal("expected an error for a non-HTTPS playback URL")
	}
}

func TestHintsFor(t *testing.T) {
	l := &media.Lecture{
		ID:    "42",
		Title: "Intro",
		Chapter: media.ChapterInfo{
			Number: 2,
			Title:  "Setup",
		},
	}

	h := HintsFor(l)
	if h.LectureID != "42" || h.Title != "Intro" || h.Chapter != "Setup" || h.ChapterNumber != 2 {
		t.Errorf("HintsFor() = %+v", h)
	}
}
