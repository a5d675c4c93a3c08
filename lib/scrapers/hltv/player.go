package hltv

import (
	"fmt"
	"strings"

	"cstracker-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// PlayerProfile is the biographical slice of a player page.
type PlayerProfile struct {
	Nickname string
	RealName string
	Country  string
	Age      *int
}

// PlayerStats holds the per-period performance figures. Every field is
// optional: a nil pointer means the value could not be extracted from
// any known layout, or failed its plausibility window.
type PlayerStats struct {
	Rating                  *float64
	KDRatio                 *float64
	ADR                     *float64
	KAST                    *float64
	HeadshotPct             *float64
	KillsPerRound           *float64
	AssistsPerRound         *float64
	DeathsPerRound          *float64
	SavedByTeammatePerRound *float64
	SavedTeammatesPerRound  *float64
	MapsPlayed              *int
}

// ParsePlayerProfile extracts the bio block of a player page.
func ParsePlayerProfile(doc *goquery.Document) (PlayerProfile, error) {
	var profile PlayerProfile

	nickname, ok := firstText(doc,
		"h1.summaryNickname",
		".summaryNickname",
		"h1.playerNickname",
		"h1",
	)
	if !ok {
		nickname, ok = titleEntity(doc)
	}
	if !ok {
		return profile, fmt.Errorf("could not locate a player nickname anywhere on the page")
	}
	profile.Nickname = nickname

	profile.RealName, _ = firstText(doc, ".summaryRealname", ".playerRealname")

	for _, selector := range []string{".summaryRealname img", ".playerRealname img", "img.flag"} {
		alt := htmlutil.CleanInline(doc.Find(selector).First().AttrOr("alt", ""))
		if alt != "" {
			profile.Country = alt
			break
		}
	}

	for _, selector := range []string{".summaryPlayerAge", ".playerAge .listRight"} {
		if age, ok := firstNumberIn(doc.Find(selector).First().Text(), AgeRange); ok {
			a := int(age)
			profile.Age = &a
			break
		}
	}

	return profile, nil
}

// ParsePlayerStats pulls performance statistics out of a player stats
// page. Three layout families are tried in order: the current
// label/value row list, the summary breakdown tiles, and as a last
// resort a rescan of every table on the page. Later strategies only
// fill fields the earlier ones left empty.
func ParsePlayerStats(doc *goquery.Document) PlayerStats {
	var stats PlayerStats

	doc.Find(".stats-row").Each(func(_ int, row *goquery.Selection) {
		spans := row.Find("span")
		if spans.Length() < 2 {
			return
		}
		label := spans.First().Text()
		value := spans.Last().Text()
		stats.assign(label, value)
	})
	if stats.complete() {
		return stats
	}

	doc.Find(".summaryStatBreakdownRow .summaryStatBreakdown").Each(func(_ int, tile *goquery.Selection) {
		label := tile.Find(".summaryStatBreakdownSubHeader").First().Text()
		value := tile.Find(".summaryStatBreakdownDataValue").First().Text()
		stats.assign(label, value)
	})
	if stats.complete() {
		return stats
	}

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		stats.assign(cells.First().Text(), cells.Last().Text())
	})

	return stats
}

// assign routes a label/value pair to the statistic the label names.
// Unrecognized labels and implausible values are ignored; a field
// already filled by an earlier layout is never overwritten.
func (s *PlayerStats) assign(label, value string) {
	label = strings.ToLower(htmlutil.CleanInline(label))

	set := func(dst **float64, r Range) {
		if *dst != nil {
			return
		}
		if v, ok := firstNumberIn(value, r); ok {
			*dst = &v
		}
	}

	switch {
	case strings.Contains(label, "rating"):
		set(&s.Rating, RatingRange)
	case strings.Contains(label, "k/d") || strings.Contains(label, "kd ratio"):
		set(&s.KDRatio, KDRatioRange)
	case strings.Contains(label, "damage") || strings.Contains(label, "adr"):
		set(&s.ADR, ADRRange)
	case strings.Contains(label, "kast"):
		set(&s.KAST, KASTRange)
	case strings.Contains(label, "headshot") || strings.Contains(label, "hs %"):
		set(&s.HeadshotPct, HeadshotsRange)
	case strings.Contains(label, "saved by teammate"):
		set(&s.SavedByTeammatePerRound, SaveRateRange)
	case strings.Contains(label, "saved teammate"):
		set(&s.SavedTeammatesPerRound, SaveRateRange)
	case strings.Contains(label, "kill"):
		set(&s.KillsPerRound, PerRoundRange)
	case strings.Contains(label, "assist"):
		set(&s.AssistsPerRound, PerRoundRange)
	case strings.Contains(label, "death"):
		set(&s.DeathsPerRound, PerRoundRange)
	case strings.Contains(label, "maps"):
		if s.MapsPlayed == nil {
			if v, ok := firstNumberIn(value, MapsRange); ok {
				maps := int(v)
				s.MapsPlayed = &maps
			}
		}
	}
}

func (s *PlayerStats) complete() bool {
	return s.Rating != nil && s.KDRatio != nil && s.ADR != nil &&
		s.KAST != nil && s.HeadshotPct != nil &&
		s.KillsPerRound != nil && s.AssistsPerRound != nil &&
		s.DeathsPerRound != nil && s.SavedByTeammatePerRound != nil &&
		s.SavedTeammatesPerRound != nil && s.MapsPlayed != nil
}

// Empty reports whether not a single statistic survived extraction.
func (s PlayerStats) Empty() bool {
	return s.Rating == nil && s.KDRatio == nil && s.ADR == nil &&
		s.KAST == nil && s.HeadshotPct == nil &&
		s.KillsPerRound == nil && s.AssistsPerRound == nil &&
		s.DeathsPerRound == nil && s.SavedByTeammatePerRound == nil &&
		s.SavedTeammatesPerRound == nil && s.MapsPlayed == nil
}
