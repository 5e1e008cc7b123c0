// Package capture turns camera frames into committed scene navigations.
//
// A Session owns one camera stream. Each frame is decoded to text, fed to a
// Debouncer, and the Debouncer asks the Resolver whether the text names a scene.
package capture

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

var sceneDirective = regexp.MustCompile(`(?i)scene[:=]?\s*(\d+)`)

// ShortLink maps an external short URL onto a fixed scene
type ShortLink struct {
	Host  string            `json:"host"`
	Path  string            `json:"path"`
	Scene domain.SceneIndex `json:"scene"`
}

// Resolver maps raw scanned text to a scene index. It performs no range
// checking; that is the caller's job.
type Resolver struct {
	shortLinks []ShortLink
}

// NewResolver creates a resolver with the given short-link allowlist
func NewResolver(shortLinks []ShortLink) *Resolver {
	links := make([]ShortLink, len(shortLinks))
	copy(links, shortLinks)
	return &Resolver{shortLinks: links}
}

// Resolve returns the scene named by raw, if any
func (r *Resolver) Resolve(raw string) (domain.SceneIndex, bool) {
	scene, err := r.parse(raw)
	if err != nil {
		return 0, false
	}
	return scene, true
}

// parse runs the rule chain. Every miss is reported as ErrMalformedScanText.
func (r *Resolver) parse(raw string) (domain.SceneIndex, error) {
	text := strings.TrimSpace(norm.NFKC.String(raw))
	if text == "" {
		return 0, domain.ErrMalformedScanText
	}

	if m := sceneDirective.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return domain.SceneIndex(n), nil
		}
	}

	u, err := url.Parse(text)
	if err != nil || !u.IsAbs() {
		return 0, fmt.Errorf("%w: %q", domain.ErrMalformedScanText, text)
	}

	if v := strings.TrimSpace(u.Query().Get(QuerySceneParam)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return domain.SceneIndex(n), nil
		}
	}

	// Short links need a host; opaque URLs only carry the query rule.
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return 0, fmt.Errorf("%w: %q", domain.ErrMalformedScanText, text)
	}
	for _, link := range r.shortLinks {
		if strings.EqualFold(host, link.Host) && strings.Contains(u.Path, link.Path) {
			return link.Scene, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", domain.ErrMalformedScanText, text)
}
