package hltv

import (
	"fmt"

	"cstracker-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// rosters larger than this mean a selector matched staff or past
// lineups, not the active five
const DefaultRosterSize = 5

// RosterEntry is one active player on a team profile page.
type RosterEntry struct {
	HltvID   int64
	Slug     string
	Nickname string
}

// TeamProfile is everything worth keeping from a team page.
type TeamProfile struct {
	Name    string
	Country string
	Rank    *int
	Roster  []RosterEntry
}

// ParseTeamProfile extracts a team profile. The name falls back
// through progressively older layouts and finally the page title; a
// page yielding no name at all is treated as unparseable. rosterLimit
// caps how many lineup entries are kept; zero or less applies
// DefaultRosterSize.
func ParseTeamProfile(doc *goquery.Document, rosterLimit int) (TeamProfile, error) {
	var profile TeamProfile

	name, ok := firstText(doc,
		"h1.profile-team-name",
		".profile-team-name",
		"h1",
		".team-name",
	)
	if !ok {
		name, ok = titleEntity(doc)
	}
	if !ok {
		return profile, fmt.Errorf("could not locate a team name anywhere on the page")
	}
	profile.Name = name

	profile.Country = teamCountry(doc)
	profile.Rank = teamWorldRank(doc)
	profile.Roster = teamRoster(doc, rosterLimit)

	return profile, nil
}

func teamCountry(doc *goquery.Document) string {
	for _, selector := range []string{
		".team-country img",
		".profile-team-info img.flag",
		"img.flag",
	} {
		alt := htmlutil.CleanInline(doc.Find(selector).First().AttrOr("alt", ""))
		if alt != "" {
			return alt
		}
	}
	return ""
}

func teamWorldRank(doc *goquery.Document) *int {
	for _, selector := range []string{
		`.profile-team-stat a[href*="/ranking/"]`,
		".profile-team-stat .right",
	} {
		text := doc.Find(selector).First().Text()
		if rank, ok := parsePlausible(text, RankRange); ok {
			r := int(rank)
			return &r
		}
	}
	return nil
}

// teamRoster walks the lineup selector chain and keeps the first few
// distinct players it finds. Older layouts repeat the lineup block, so
// entries are deduplicated by player ID before the size cap applies.
func teamRoster(doc *goquery.Document, limit int) []RosterEntry {
	if limit <= 0 {
		limit = DefaultRosterSize
	}
	var roster []RosterEntry
	seen := map[int64]bool{}

	collect := func(_ int, link *goquery.Selection) bool {
		href := htmlutil.Href(link)
		hltvID, ok := idFromHref(playerHrefPattern, href)
		if !ok || seen[hltvID] {
			return true
		}

		nickname, ok := firstTextIn(link, ".text-ellipsis", ".player-nick", ".playerFlagName")
		if !ok {
			nickname = htmlutil.CleanInline(link.Text())
		}
		if nickname == "" {
			return true
		}

		seen[hltvID] = true
		roster = append(roster, RosterEntry{
			HltvID:   hltvID,
			Slug:     slugFromHref(href),
			Nickname: nickname,
		})
		return len(roster) < limit
	}

	for _, selector := range []string{
		".bodyshot-team a",
		".lineup-con a",
		".player-nick a",
		`a[href^="/player/"]`,
	} {
		doc.Find(selector).EachWithBreak(collect)
		if len(roster) >= limit {
			break
		}
	}

	return roster
}

func firstTextIn(sel *goquery.Selection, selectors ...string) (string, bool) {
	for _, selector := range selectors {
		text := htmlutil.Text(sel.Find(selector))
		if text != "" {
			return text, true
		}
	}
	return "", false
}
