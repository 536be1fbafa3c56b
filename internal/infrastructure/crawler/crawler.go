package crawler

import (
	"fmt"
	"regexp"
)

// Detector decides whether a request comes from a link unfurler or crawler.
// User-agent matching is a heuristic; swap the implementation as needed.
type Detector interface {
	IsCrawler(userAgent string) bool
}

// DefaultPattern covers search crawlers and the chat apps that unfurl links.
const DefaultPattern = `bot|crawler|spider|crawling|discord|slack|twitter|facebook|whatsapp|telegram`

// Regexp matches the user agent case-insensitively against a pattern.
type Regexp struct {
	re *regexp.Regexp
}

// NewRegexp compiles pattern; an empty pattern means DefaultPattern.
func NewRegexp(pattern string) (*Regexp, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("crawler pattern: %w", err)
	}
	return &Regexp{re: re}, nil
}

func Default() *Regexp {
	r, _ := NewRegexp("")
	return r
}

func (r *Regexp) IsCrawler(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	return r.re.MatchString(userAgent)
}

// Never treats every client as a browser.
type Never struct{}

func (Never) IsCrawler(string) bool { return false }
