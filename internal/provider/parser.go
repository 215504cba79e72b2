package provider

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"teachgrab/internal/httputil"
	"teachgrab/internal/media"
	"teachgrab/internal/site"
)

// lockedMarkers are the known ways the sites render a lecture the
// current session has no access to. Checked on raw markup because some
// are text patterns rather than elements.
var lockedMarkers = []*regexp.Regexp{
	regexp.MustCompile(`class=["']lecture-contents-locked`),
	regexp.MustCompile(`>\s*Lecture contents locked`),
	regexp.MustCompile(`id=["']lecture-locked`),
	regexp.MustCompile(`class=["'](?:inner-)?lesson-locked`),
	regexp.MustCompile(`>LESSON LOCKED<`),
}

var (
	lectureIDRe = regexp.MustCompile(`/lectures/(\d+)`)
	durationRe  = regexp.MustCompile(`\d{1,2}:\d{2}`)

	teachableCDNRe = regexp.MustCompile(`<link[^>]+href=["']https?://(?:process\.fs|assets)\.teachablecdn\.com`)
	coursePageRe   = regexp.MustCompile(`^https?://[^/]+/(?:courses|p)`)
)

// isLocked reports whether the page shows any locked-content marker.
func isLocked(page string) bool {
	for _, re := range lockedMarkers {
		if re.MatchString(page) {
			return true
		}
	}
	return false
}

// pageTitle extracts the social-preview title.
func pageTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(`meta[property="og:title"]`).First().AttrOr("content", ""))
}

// chapterFor derives the chapter position and title for a lecture from
// the course sidebar embedded in the lecture page. Everything here is
// best effort: a missing list item or section attribute just leaves the
// corresponding field zero.
func chapterFor(doc *goquery.Document, lectureID string) media.ChapterInfo {
	item := doc.Find(fmt.Sprintf(`li[data-lecture-id="%s"]`, lectureID)).First()
	if item.Length() == 0 {
		return media.ChapterInfo{}
	}

	number, err := strconv.Atoi(item.AttrOr("data-ss-position", ""))
	if err != nil || number <= 0 {
		return media.ChapterInfo{}
	}

	info := media.ChapterInfo{Number: number}
	titles := sectionTitles(doc)
	if number <= len(titles) {
		info.Title = titles[number-1]
	}
	return info
}

// sectionTitles collects the section titles in document order. An empty
// title invalidates everything collected before it and the run restarts
// there; only a contiguous run of non-empty titles is trusted.
func sectionTitles(doc *goquery.Document) []string {
	var titles []string
	doc.Find("div.section-title").Each(func(_ int, s *goquery.Selection) {
		title := strings.Join(strings.Fields(s.Text()), " ")
		if title == "" {
			titles = titles[:0]
			return
		}
		titles = append(titles, title)
	})
	return titles
}

// courseEntries scans the course page for lecture list items. Items
// showing neither a play icon nor an inline duration are non-video
// entries (quizzes, text sections) and are skipped.
func courseEntries(doc *goquery.Document, base string, prefixed bool) []media.LectureReference {
	var entries []media.LectureReference

	doc.Find("li.section-item").Each(func(_ int, li *goquery.Selection) {
		if li.Find(".fa-youtube-play").Length() == 0 && !durationRe.MatchString(li.Text()) {
			return
		}

		href, ok := li.Find("a[href]").First().Attr("href")
		if !ok || href == "" {
			return
		}

		var id string
		if m := lectureIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		title := strings.Join(strings.Fields(li.Find(".lecture-name").First().Text()), " ")

		entries = append(entries, media.LectureReference{
			ID:       id,
			URL:      reapplyPrefix(httputil.ResolveReference(base+"/", href), prefixed),
			Title:    title,
			Prefixed: prefixed,
		})
	})

	return entries
}

// courseTitle extracts the course title from either of the two known
// heading shapes. Absence is tolerated; the title is then empty.
func courseTitle(doc *goquery.Document) string {
	// Caption heading directly after the course image.
	img := doc.Find("img.course-image").First()
	if img.Length() > 0 {
		next := img.Next()
		if name := goquery.NodeName(next); len(name) == 2 && name[0] == 'h' {
			if title := strings.Join(strings.Fields(next.Text()), " "); title != "" {
				return title
			}
		}
	}

	for _, sel := range []string{"h1.course-title", "h2.course-title", "h3.course-title"} {
		if title := strings.Join(strings.Fields(doc.Find(sel).First().Text()), " "); title != "" {
			return title
		}
	}

	return ""
}

// IsTeachablePage reports whether an arbitrary page is served by a
// Teachable-based site, from its tracker snippet and CDN asset links.
func IsTeachablePage(page string) bool {
	return strings.Contains(page, "teachableTracker.linker:autoLink") &&
		teachableCDNRe.MatchString(page)
}

// EmbeddedCourseURL turns a generic page that is itself a Teachable
// course page into a prefixed URL this package can resolve. Returns
// false when the page is not Teachable or not a course/lecture path.
func EmbeddedCourseURL(page, sourceURL string) (string, bool) {
	if !IsTeachablePage(page) {
		return "", false
	}
	if !coursePageRe.MatchString(sourceURL) {
		return "", false
	}
	return site.URLPrefix + sourceURL, true
}
