// Package site maps URLs onto known course-platform sites and classifies
// them as lecture or course resources.
package site

import (
	"sort"
	"strings"

	"teachgrab/internal/media"
)

// URLPrefix is the escape marker that lets an arbitrary hostname be
// treated as a supported site without being in the registry.
const URLPrefix = "teachable:"

// registry maps known hostnames to their credential namespace.
// Only notable sites are enumerated; anything else needs the URL prefix.
var registry = map[string]string{
	"v1.upskillcourses.com":   "upskill",
	"gns3.teachable.com":      "gns3",
	"academyhacker.com":       "academyhacker",
	"stackskills.com":         "stackskills",
	"market.saleshacker.com":  "saleshacker",
	"learnability.org":        "learnability",
	"edurila.com":             "edurila",
	"courses.workitdaily.com": "workitdaily",
}

// Lookup returns the Site for a registered hostname. A leading "www."
// is tolerated on the input but the registered hostname is kept.
func Lookup(host string) (media.Site, bool) {
	if ns, ok := registry[host]; ok {
		return media.Site{Host: host, Namespace: ns}, true
	}
	trimmed := strings.TrimPrefix(host, "www.")
	if ns, ok := registry[trimmed]; ok {
		return media.Site{Host: trimmed, Namespace: ns}, true
	}
	return media.Site{}, false
}

// ForHost derives a Site for an arbitrary hostname reached through the
// URL prefix. Registered hosts keep their namespace; anything else uses
// the hostname itself as its credential namespace.
func ForHost(host string) media.Site {
	if s, ok := Lookup(host); ok {
		return s
	}
	return media.Site{Host: host, Namespace: host}
}

// Known returns the registered hostnames in sorted order.
func Known() []string {
	hosts := make([]string, 0, len(registry))
	for h := range registry {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

// StripPrefix removes the escape prefix if present and reports whether
// it was there.
func StripPrefix(rawURL string) (string, bool) {
	if strings.HasPrefix(rawURL, URLPrefix) {
		return rawURL[len(URLPrefix):], true
	}
	return rawURL, false
}
