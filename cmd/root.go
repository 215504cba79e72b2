// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"teachgrab/internal/auth"
	"teachgrab/internal/config"
	"teachgrab/internal/download"
	"teachgrab/internal/extract"
	"teachgrab/internal/media"
	"teachgrab/internal/player"
	"teachgrab/internal/provider"
	"teachgrab/internal/site"
	"teachgrab/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// keyringService is the system-keyring service name for stored logins.
const keyringService = "teachgrab"

// Global flags
var (
	flagDownload string
	flagJSON     bool
	flagPlayer   string
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "teachgrab <url>",
	Short: "Extract and play lectures from Teachable-based course sites",
	Long: `Teachgrab resolves lecture and course URLs on Teachable-based sites.
Lecture URLs are resolved into a playable video and streamed with mpv/vlc
or downloaded with ffmpeg; course URLs list all lectures as a playlist.

Arbitrary hostnames can be used by prefixing the URL with "teachable:".`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.RunE = resolveRun
	rootCmd.PersistentFlags().StringVarP(&flagDownload, "download", "d", "", "Download to DIR instead of playing (empty DIR uses download_dir from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output resolved metadata as JSON")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(sitesCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logrus.SetOutput(os.Stderr)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	return nil
}

// credentialSource builds the credential chain: keyring first, then the
// config file's [credentials] table.
func credentialSource() auth.CredentialSource {
	static := auth.StaticSource{}
	for ns, c := range cfg.Credentials {
		static[ns] = auth.Credentials{Email: c.Email, Password: c.Password}
	}
	return auth.Sources{auth.KeyringSource{Service: keyringService}, static}
}

// resolveRun is the default command: teachgrab <url>
func resolveRun(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	session := auth.NewSession(credentialSource(), nil)
	t := provider.New(session)

	if _, ok := site.MatchLecture(rawURL); ok {
		return lectureFlow(t, rawURL)
	}
	if _, ok := site.MatchCourse(rawURL); ok {
		return courseFlow(t, rawURL)
	}

	return fmt.Errorf("unsupported URL %q: expected a lecture or course URL on a known site, or a teachable:-prefixed URL", rawURL)
}

// courseFlow lists a course and hands one picked lecture to lectureFlow.
func courseFlow(t *provider.Teachable, rawURL string) error {
	course, err := t.ResolveCourse(rawURL)
	if err != nil {
		return describeError(err)
	}

	if len(course.Lectures) == 0 {
		return fmt.Errorf("no lectures found in course %s", course.ID)
	}

	if flagJSON {
		return printJSON(course)
	}

	items := make([]string, len(course.Lectures))
	for i, l := range course.Lectures {
		items[i] = provider.FormatEntry(l)
	}

	prompt := course.Title
	if prompt == "" {
		prompt = course.ID
	}
	idx, err := ui.Select(prompt, items)
	if err != nil {
		return err
	}

	return lectureFlow(t, course.Lectures[idx].URL)
}

// lectureFlow resolves a lecture and plays, downloads, or prints it.
func lectureFlow(t *provider.Teachable, rawURL string) error {
	lecture, err := t.ResolveLecture(rawURL)
	if err != nil {
		return describeError(err)
	}

	stream, err := extract.New().Resolve(lecture.PlaybackURL, extract.HintsFor(lecture))
	if err != nil {
		return fmt.Errorf("resolving stream: %w", err)
	}

	if flagJSON {
		return printJSON(stream)
	}

	if downloadRequested() {
		dir, err := downloadDir()
		if err != nil {
			return fmt.Errorf("resolving download dir: %w", err)
		}
		path, err := download.Download(stream, dir)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	return playStream(stream)
}

func downloadRequested() bool {
	return flagDownload != "" || rootCmd.PersistentFlags().Changed("download")
}

// downloadDir picks the target directory: the --download value when one was
// given, otherwise the config file's download_dir.
func downloadDir() (string, error) {
	if flagDownload != "" {
		return flagDownload, nil
	}
	return cfg.ExpandDownloadDir()
}

func playStream(stream *media.Stream) error {
	p := player.New(cfg.Player)
	if !p.Available() {
		return fmt.Errorf("player %s not found in PATH", p.Name())
	}
	return p.Play(stream)
}

// describeError attaches user guidance to the expected error kinds.
func describeError(err error) error {
	switch {
	case errors.Is(err, provider.ErrLoginRequired):
		return fmt.Errorf("%w; store credentials with 'teachgrab login <namespace>' or add them to the config file", err)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrLoginFailed):
		return fmt.Errorf("%w; check the stored credentials", err)
	default:
		return err
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
