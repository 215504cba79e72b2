package provider

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"teachgrab/internal/httputil"
	"teachgrab/internal/media"
	"teachgrab/internal/site"
)

// ResolveLecture resolves a lecture URL into its playback URL and
// metadata. The deal with the embedded player is indirect: the page
// only carries an opaque attachment id, which the site's private-video
// API exchanges for signed playback parameters.
func (t *Teachable) ResolveLecture(rawURL string) (*media.Lecture, error) {
	m, ok := site.MatchLecture(rawURL)
	if !ok {
		return nil, fmt.Errorf("not a lecture URL: %q", rawURL)
	}

	if err := t.session.Login(m.Site); err != nil {
		return nil, err
	}

	pageURL, _ := site.StripPrefix(rawURL)

	logrus.Debugf("fetching lecture %s from %s", m.ID, m.Site.Host)
	body, doc, err := t.fetchPage(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching lecture page: %w", err)
	}

	container := doc.Find(".hotmart_video_player").First()
	if container.Length() == 0 {
		if isLocked(body) {
			return nil, fmt.Errorf("%w: lecture contents locked", ErrLoginRequired)
		}
		return nil, fmt.Errorf("%w: unable to find hotmart video container", ErrExtraction)
	}

	attachmentID, ok := container.Attr("data-attachment-id")
	if !ok || attachmentID == "" {
		return nil, fmt.Errorf("%w: hotmart container has no data-attachment-id", ErrExtraction)
	}

	base, err := siteBase(pageURL)
	if err != nil {
		return nil, err
	}

	target, err := t.exchangeAttachment(base, attachmentID)
	if err != nil {
		return nil, err
	}

	return &media.Lecture{
		ID:          m.ID,
		Title:       pageTitle(doc),
		PlaybackURL: target.URL(),
		Chapter:     chapterFor(doc, m.ID),
	}, nil
}

// exchangeAttachment calls the site's private-video API with the
// attachment id and reads back the signed playback parameters.
func (t *Teachable) exchangeAttachment(base, attachmentID string) (media.PlaybackTarget, error) {
	apiURL := fmt.Sprintf("%s/api/v2/hotmart/private_video?attachment_id=%s",
		base, url.QueryEscape(attachmentID))

	body, err := httputil.GetJSON(t.client, apiURL)
	if err != nil {
		return media.PlaybackTarget{}, fmt.Errorf("exchanging attachment id: %w", err)
	}

	var payload struct {
		VideoID   string `json:"video_id"`
		Signature string `json:"signature"`
		Token     string `json:"teachable_application_key"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return media.PlaybackTarget{}, fmt.Errorf("parsing private_video response: %w", err)
	}

	if payload.VideoID == "" || payload.Signature == "" || payload.Token == "" {
		return media.PlaybackTarget{}, fmt.Errorf("%w: incomplete private_video response", ErrExtraction)
	}

	return media.PlaybackTarget{
		VideoID:   payload.VideoID,
		Signature: payload.Signature,
		Token:     payload.Token,
	}, nil
}
