// Package provider resolves lecture and course URLs on Teachable-based
// sites into playback URLs and playlist metadata.
package provider

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"teachgrab/internal/auth"
	"teachgrab/internal/httputil"
	"teachgrab/internal/media"
	"teachgrab/internal/site"
)

// Error kinds surfaced by the resolvers, matchable via errors.Is.
var (
	// ErrLoginRequired means the lecture contents are locked for the
	// current session; recoverable by supplying credentials.
	ErrLoginRequired = errors.New("login required")

	// ErrExtraction means the page no longer has the expected shape;
	// this signals layout drift needing investigation, not bad input.
	ErrExtraction = errors.New("extraction failed")
)

// Teachable resolves lectures and courses using an authenticated session.
type Teachable struct {
	session *auth.Session
	client  *http.Client
}

// New creates a resolver on top of the given session.
func New(session *auth.Session) *Teachable {
	return &Teachable{
		session: session,
		client:  session.Client(),
	}
}

// fetchPage fetches a URL and returns both the raw body and the parsed
// document: marker scans need the raw markup, everything else the DOM.
func (t *Teachable) fetchPage(pageURL string) (string, *goquery.Document, error) {
	body, _, err := httputil.FetchPage(t.client, pageURL)
	if err != nil {
		return "", nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return body, doc, nil
}

// siteBase returns the scheme://host origin of a page URL, used to
// resolve relative links and to address the side-channel API.
func siteBase(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}
	return u.Scheme + "://" + u.Host, nil
}

// reapplyPrefix puts the site escape prefix back on a URL when the
// original input carried it, so emitted references round-trip.
func reapplyPrefix(rawURL string, prefixed bool) string {
	if prefixed {
		return site.URLPrefix + rawURL
	}
	return rawURL
}

// FormatEntry creates a display string for fzf selection.
func FormatEntry(ref media.LectureReference) string {
	title := ref.Title
	if title == "" {
		title = ref.URL
	}
	if ref.ID != "" {
		return fmt.Sprintf("%s [%s]", title, ref.ID)
	}
	return title
}
