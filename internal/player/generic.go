package player

import (
	"fmt"
	"os"
	"os/exec"

	"teachgrab/internal/media"
)

// Generic implements the Player interface for players like iina and
// celluloid that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool {
	_, err := exec.LookPath(g.name)
	return err == nil
}

// Play launches the generic player and blocks until it exits.
func (g *Generic) Play(stream *media.Stream) error {
	args := []string{
		stream.URL,
		"--force-media-title=" + displayTitle(stream),
	}

	cmd := exec.Command(g.name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return nil
		}
		return fmt.Errorf("running %s: %w", g.name, err)
	}

	return nil
}
