package provider

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"teachgrab/internal/auth"
)

// newTestResolver builds a resolver whose session trusts the test
// server's certificate and has no stored credentials.
func newTestResolver(srv *httptest.Server) *Teachable {
	return New(auth.NewSession(auth.StaticSource{}, srv.Client()))
}

func TestResolveLecture(t *testing.T) {
	page := loadFixture(t, "lecture_page.html")

	var apiQuery string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/courses/gns3-certified-associate/lectures/6842364":
			fmt.Fprint(w, page)
		case "/api/v2/hotmart/private_video":
			apiQuery = r.URL.Query().Get("attachment_id")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"video_id":"untlgzk1v7","signature":"sig123","teachable_application_key":"appkey123","status":"READY"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	rawURL := "teachable:" + srv.URL + "/courses/gns3-certified-associate/lectures/6842364"
	lecture, err := newTestResolver(srv).ResolveLecture(rawURL)
	if err != nil {
		t.Fatalf("ResolveLecture() error: %v", err)
	}

	if apiQuery != "73482012" {
		t.Errorf("API attachment_id = %q, want the container's data-attachment-id", apiQuery)
	}

	wantPlayback := "https://player.hotmart.com/embed/untlgzk1v7?signature=sig123&token=appkey123"
	if lecture.PlaybackURL != wantPlayback {
		t.Errorf("PlaybackURL = %q, want %q", lecture.PlaybackURL, wantPlayback)
	}
	if lecture.ID != "6842364" {
		t.Errorf("ID = %q, want 6842364", lecture.ID)
	}
	if lecture.Title != "Overview" {
		t.Errorf("Title = %q, want Overview", lecture.Title)
	}
	if lecture.Chapter.Number != 1 || lecture.Chapter.Title != "Welcome" {
		t.Errorf("Chapter = %+v, want {Number:1 Title:\"Welcome\"}", lecture.Chapter)
	}
}

// Older upskillcourses links are still served over plain http; the matcher
// accepts them, so resolving must too.
func TestResolveLecturePlainHTTP(t *testing.T) {
	page := loadFixture(t, "lecture_page.html")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/hotmart/private_video" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"video_id":"untlgzk1v7","signature":"sig123","teachable_application_key":"appkey123","status":"READY"}`)
			return
		}
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	rawURL := "teachable:" + srv.URL + "/courses/gns3-certified-associate/lectures/6842364"
	lecture, err := newTestResolver(srv).ResolveLecture(rawURL)
	if err != nil {
		t.Fatalf("ResolveLecture() error: %v", err)
	}

	wantPlayback := "https://player.hotmart.com/embed/untlgzk1v7?signature=sig123&token=appkey123"
	if lecture.PlaybackURL != wantPlayback {
		t.Errorf("PlaybackURL = %q, want %q", lecture.PlaybackURL, wantPlayback)
	}
}

func TestResolveLectureLocked(t *testing.T) {
	page := loadFixture(t, "lecture_locked.html")
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	rawURL := "teachable:" + srv.URL + "/courses/x/lectures/42"
	_, err := newTestResolver(srv).ResolveLecture(rawURL)

	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("error = %v, want ErrLoginRequired", err)
	}
	if errors.Is(err, ErrExtraction) {
		t.Error("a locked lecture must not read as layout drift")
	}
}

func TestResolveLectureLayoutDrift(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>Totally new layout</p></body></html>")
	}))
	defer srv.Close()

	rawURL := "teachable:" + srv.URL + "/courses/x/lectures/42"
	_, err := newTestResolver(srv).ResolveLecture(rawURL)

	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("error = %v, want ErrExtraction", err)
	}
	if errors.Is(err, ErrLoginRequired) {
		t.Error("missing container without locked markers must not read as a login problem")
	}
}

func TestResolveLectureMissingAttachmentID(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="hotmart_video_player"></div></body></html>`)
	}))
	defer srv.Close()

	rawURL := "teachable:" + srv.URL + "/courses/x/lectures/42"
	_, err := newTestResolver(srv).ResolveLecture(rawURL)

	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("error = %v, want ErrExtraction for a container without data-attachment-id", err)
	}
}

func TestResolveLectureIncompleteExchange(t *testing.T) {
	page := loadFixture(t, "lecture_page.html")
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/hotmart/private_video" {
			fmt.Fprint(w, `{"video_id":"untlgzk1v7"}`)
			return
		}
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	rawURL := "teachable:" + srv.URL + "/courses/gns3-certified-associate/lectures/6842364"
	_, err := newTestResolver(srv).ResolveLecture(rawURL)

	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("error = %v, want ErrExtraction for an incomplete private_video response", err)
	}
}

func TestResolveLectureRejectsNonLectureURL(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	if _, err := newTestResolver(srv).ResolveLecture("teachable:" + srv.URL + "/courses/just-a-course"); err == nil {
		t.Fatal("expected an error for a course URL")
	}
}
