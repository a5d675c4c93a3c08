package hltv

import (
	"regexp"
	"strconv"
	"strings"

	"cstracker-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Range is an inclusive plausibility window for a scraped statistic.
// Pages shift their markup often enough that a selector can land on
// the wrong cell; a value outside the window for its statistic is
// treated as a mis-extraction and discarded rather than stored.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var (
	RatingRange    = Range{Min: 0.5, Max: 2.5}
	KDRatioRange   = Range{Min: 0.1, Max: 5.0}
	ADRRange       = Range{Min: 30, Max: 150}
	KASTRange      = Range{Min: 40, Max: 100}
	HeadshotsRange = Range{Min: 10, Max: 80}
	PerRoundRange  = Range{Min: 0.05, Max: 3.0}
	SaveRateRange  = Range{Min: 0, Max: 1.0}
	MapsRange      = Range{Min: 0, Max: 10000}
	RankRange      = Range{Min: 1, Max: 100}
	AgeRange       = Range{Min: 1, Max: 99}
)

// firstNumberIn scans the text for decimal numbers and returns the
// first one that falls inside the plausibility window.
func firstNumberIn(text string, r Range) (float64, bool) {
	for _, v := range htmlutil.Numbers(text) {
		if r.Contains(v) {
			return v, true
		}
	}
	return 0, false
}

// parsePlausible parses a single cleaned numeric string and accepts it
// only when it sits inside the window.
func parsePlausible(text string, r Range) (float64, bool) {
	v, err := strconv.ParseFloat(htmlutil.CleanNumeric(text), 64)
	if err != nil {
		return 0, false
	}
	if !r.Contains(v) {
		return 0, false
	}
	return v, true
}

// firstText returns the cleaned text of the first selector in the
// chain that matches a non-empty node. Selector chains are ordered
// from the markup currently in production to older layouts still
// served from caches.
func firstText(doc *goquery.Document, selectors ...string) (string, bool) {
	for _, selector := range selectors {
		text := htmlutil.Text(doc.Find(selector))
		if text != "" {
			return text, true
		}
	}
	return "", false
}

var (
	teamHrefPattern   = regexp.MustCompile(`/team/(\d+)/`)
	playerHrefPattern = regexp.MustCompile(`/player/(\d+)/`)
	matchHrefPattern  = regexp.MustCompile(`/matches/(\d+)/`)
)

func idFromHref(pattern *regexp.Regexp, href string) (int64, bool) {
	m := pattern.FindStringSubmatch(href)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// titleEntity pulls the leading entity name out of a page <title> of
// the form "<name> - HLTV.org". Used as the last fallback when every
// in-page heading selector misses.
func titleEntity(doc *goquery.Document) (string, bool) {
	title := docTitle(doc)
	idx := strings.Index(title, " - HLTV")
	if idx <= 0 {
		return "", false
	}
	name := htmlutil.CleanInline(title[:idx])
	if name == "" {
		return "", false
	}
	return name, true
}
