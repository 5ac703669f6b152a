// Package remote decides which address the webview windows display.
package remote

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/yllada/opencami-desktop/common"
)

// BuildDefaultURL is fixed at build time:
//
//	go build -ldflags "-X github.com/yllada/opencami-desktop/remote.BuildDefaultURL=https://cami.example"
var BuildDefaultURL = ""

// Source identifies where a resolved address came from.
type Source int

const (
	SourceEnv Source = iota
	SourceBuild
	SourceFallback
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceEnv:
		return "environment"
	case SourceBuild:
		return "build default"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Resolver picks the remote address from, in order: the OPENCAMI_REMOTE_URL
// environment variable, the build-time default, and the hardcoded fallback.
// It holds no state, so each call observes the current environment.
type Resolver struct {
	// LookupEnv reads the runtime override; defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
	// BuildDefault overrides BuildDefaultURL when non-nil.
	BuildDefault *string
}

// NewResolver returns a resolver reading the process environment.
func NewResolver() *Resolver {
	return &Resolver{LookupEnv: os.LookupEnv}
}

// Resolve returns the address to display. It never returns an empty string.
func (r *Resolver) Resolve() string {
	u, _ := r.ResolveWithSource()
	return u
}

// ResolveWithSource is Resolve plus the source that supplied the address.
func (r *Resolver) ResolveWithSource() (string, Source) {
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(common.RemoteURLEnv); ok && !common.IsBlank(v) {
		return v, SourceEnv
	}

	build := BuildDefaultURL
	if r.BuildDefault != nil {
		build = *r.BuildDefault
	}
	if !common.IsBlank(build) {
		return build, SourceBuild
	}

	return common.FallbackRemoteURL, SourceFallback
}

// Validate checks that raw can be loaded by a webview.
func Validate(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: %q has no host", common.ErrInvalidURL, raw)
		}
	case "file":
		if u.Path == "" {
			return fmt.Errorf("%w: %q has no path", common.ErrInvalidURL, raw)
		}
	default:
		return fmt.Errorf("%w: unsupported scheme in %q", common.ErrInvalidURL, raw)
	}
	return nil
}
