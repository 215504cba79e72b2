package player

import (
	"fmt"
	"os"
	"os/exec"

	"teachgrab/internal/media"
)

// VLC implements the Player interface for VLC media player.
// VLC takes --meta-title instead of mpv's --force-media-title.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool {
	_, err := exec.LookPath("vlc")
	return err == nil
}

// Play launches VLC and blocks until it exits.
func (v *VLC) Play(stream *media.Stream) error {
	args := []string{
		stream.URL,
		"--meta-title", displayTitle(stream),
		"--play-and-exit",
	}

	cmd := exec.Command("vlc", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// VLC exits non-zero on user close
			return nil
		}
		return fmt.Errorf("running vlc: %w", err)
	}

	return nil
}
