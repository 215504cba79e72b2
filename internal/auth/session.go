package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"teachgrab/internal/httputil"
	"teachgrab/internal/media"
)

// Error kinds surfaced by Login, matchable via errors.Is.
var (
	// ErrPrivacyPolicy means the site is blocking the account on a
	// pending privacy-policy acceptance; the user must visit the site
	// and accept it manually.
	ErrPrivacyPolicy = errors.New("privacy policy acceptance required")

	// ErrInvalidCredentials wraps the site's own flash-error text.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLoginFailed is the generic fallback when the sign-in response
	// shows neither a logged-in marker nor a recognizable error.
	ErrLoginFailed = errors.New("unable to log in")
)

// Markers is the set of page patterns used to classify sign-in pages.
// Layout drift on the sites is a data change here, not a logic change.
type Markers struct {
	LoggedIn        []*regexp.Regexp
	PrivacyPrompt   string
	FlashErrorClass string
}

// DefaultMarkers matches the current markup of the supported sites.
var DefaultMarkers = Markers{
	LoggedIn: []*regexp.Regexp{
		regexp.MustCompile(`class=["']user-signout`),
		regexp.MustCompile(`<a[^>]+\bhref=["']/sign_out`),
		regexp.MustCompile(`Log\s+[Oo]ut\s*<`),
	},
	PrivacyPrompt:   ">I accept the new Privacy Policy<",
	FlashErrorClass: "auth-flash-error",
}

// isLoggedIn reports whether the page shows any logged-in marker.
func (m Markers) isLoggedIn(page string) bool {
	for _, re := range m.LoggedIn {
		if re.MatchString(page) {
			return true
		}
	}
	return false
}

// Session holds the per-process login state for any number of sites.
// It is owned by the caller and safe to discard; nothing is persisted.
// The authenticated flag per host flips true at most once and is never
// reset.
type Session struct {
	client  *http.Client
	creds   CredentialSource
	markers Markers
	authed  map[string]bool
}

// NewSession creates a Session using the given credential source.
// A nil client gets the default hardened client with a cookie jar.
func NewSession(creds CredentialSource, client *http.Client) *Session {
	if client == nil {
		client = httputil.NewClient()
	}
	return &Session{
		client:  client,
		creds:   creds,
		markers: DefaultMarkers,
		authed:  make(map[string]bool),
	}
}

// Client returns the HTTP client carrying this session's cookies.
func (s *Session) Client() *http.Client {
	return s.client
}

// Login performs the sign-in handshake for a site. It is idempotent:
// once a site is marked authenticated, later calls are no-ops. Absent
// credentials mean anonymous access and are not an error.
func (s *Session) Login(st media.Site) error {
	if s.authed[st.Host] {
		return nil
	}

	creds, err := s.creds.Lookup(st.Namespace)
	if err != nil {
		return fmt.Errorf("looking up credentials for %s: %w", st.Namespace, err)
	}
	if creds == nil {
		logrus.Debugf("no credentials for %s, proceeding anonymously", st.Namespace)
		return nil
	}

	logrus.Debugf("downloading %s login page", st.Host)
	page, loginURL, err := httputil.FetchPage(s.client, "https://"+st.Host+"/sign_in")
	if err != nil {
		return fmt.Errorf("fetching sign-in page: %w", err)
	}

	// Sites can auto-restore a session from cookies; nothing to do then.
	if s.markers.isLoggedIn(page) {
		s.authed[st.Host] = true
		return nil
	}

	form, postURL, err := loginForm(page, loginURL)
	if err != nil {
		return fmt.Errorf("parsing sign-in page: %w", err)
	}
	form.Set("email", creds.Email)
	form.Set("password", creds.Password)

	logrus.Debugf("logging in to %s", st.Host)
	response, err := httputil.PostForm(s.client, postURL, form, loginURL)
	if err != nil {
		return fmt.Errorf("submitting sign-in form: %w", err)
	}

	if strings.Contains(response, s.markers.PrivacyPrompt) {
		return fmt.Errorf("%w: %s asks you to accept a new privacy policy, go to https://%s/ and accept it",
			ErrPrivacyPolicy, st.Host, st.Host)
	}

	if s.markers.isLoggedIn(response) {
		s.authed[st.Host] = true
		return nil
	}

	if msg := flashError(response, s.markers.FlashErrorClass); msg != "" {
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	}

	return ErrLoginFailed
}

// loginForm collects the hidden inputs of the sign-in page and the
// absolute POST target. The form action falls back to the page's own
// URL when absent, and relative actions are resolved against it.
func loginForm(page, pageURL string) (url.Values, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, "", fmt.Errorf("parsing HTML: %w", err)
	}

	form := url.Values{}
	doc.Find("input[type='hidden']").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			return
		}
		form.Set(name, s.AttrOr("value", ""))
	})

	postURL := pageURL
	if action, ok := doc.Find("form[action]").First().Attr("action"); ok && action != "" {
		postURL = action
	}
	if !strings.HasPrefix(postURL, "http") {
		postURL = httputil.ResolveReference(pageURL, postURL)
	}

	return form, postURL, nil
}

// flashError returns the cleaned text of the named flash-error element,
// or "" if the page has none.
func flashError(page, class string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("."+class).First().Text()), " ")
}
