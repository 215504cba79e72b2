package provider

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"teachgrab/internal/media"
	"teachgrab/internal/site"
)

// ResolveCourse resolves a course URL into an ordered playlist of
// lecture references. Entries are not resolved to streams here; each
// reference is independently resolvable later via ResolveLecture.
func (t *Teachable) ResolveCourse(rawURL string) (*media.Course, error) {
	m, ok := site.MatchCourse(rawURL)
	if !ok {
		return nil, fmt.Errorf("not a course URL: %q", rawURL)
	}

	if err := t.session.Login(m.Site); err != nil {
		return nil, err
	}

	pageURL, _ := site.StripPrefix(rawURL)

	logrus.Debugf("fetching course %s from %s", m.ID, m.Site.Host)
	_, doc, err := t.fetchPage(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching course page: %w", err)
	}

	base, err := siteBase(pageURL)
	if err != nil {
		return nil, err
	}

	lectures := courseEntries(doc, base, m.Prefixed)
	logrus.Debugf("course %s: %d lecture entries", m.ID, len(lectures))

	return &media.Course{
		ID:       m.ID,
		Title:    courseTitle(doc),
		Lectures: lectures,
	}, nil
}
