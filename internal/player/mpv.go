package player

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"teachgrab/internal/media"
)

// MPV implements the Player interface for mpv.
// Uses exec.Command with explicit args (no shell interpretation).
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Play launches mpv and blocks until it exits.
func (m *MPV) Play(stream *media.Stream) error {
	args := []string{
		stream.URL,
		"--force-media-title=" + displayTitle(stream),
		"--really-quiet",
	}

	cmd := exec.Command("mpv", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// mpv exits non-zero on user quit
			return nil
		}
		return fmt.Errorf("running mpv: %w", err)
	}

	return nil
}

// displayTitle builds the window title from the stream metadata.
func displayTitle(stream *media.Stream) string {
	var parts []string
	if stream.Chapter != "" {
		parts = append(parts, stream.Chapter)
	}
	if stream.Title != "" {
		parts = append(parts, stream.Title)
	}
	if len(parts) == 0 {
		return stream.URL
	}
	return strings.Join(parts, " - ")
}
