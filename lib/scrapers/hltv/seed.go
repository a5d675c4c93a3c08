package hltv

import "fmt"

// SeedTeam is a bootstrap entry used before the first successful
// ranking scrape, when the database has no teams to walk yet.
type SeedTeam struct {
	HltvID int64
	Slug   string
	Name   string
}

// SeedTeams returns the built-in roster of top teams. Site IDs are
// stable across rebrands so the list rarely needs touching.
func SeedTeams() []SeedTeam {
	return []SeedTeam{
		{HltvID: 9565, Slug: "vitality", Name: "Vitality"},
		{HltvID: 4608, Slug: "natus-vincere", Name: "Natus Vincere"},
		{HltvID: 6667, Slug: "faze", Name: "FaZe"},
		{HltvID: 5995, Slug: "g2", Name: "G2"},
		{HltvID: 5973, Slug: "liquid", Name: "Liquid"},
		{HltvID: 6665, Slug: "astralis", Name: "Astralis"},
		{HltvID: 4991, Slug: "fnatic", Name: "fnatic"},
		{HltvID: 4494, Slug: "mouz", Name: "MOUZ"},
		{HltvID: 7532, Slug: "big", Name: "BIG"},
		{HltvID: 7175, Slug: "heroic", Name: "HEROIC"},
	}
}

func TeamPath(hltvID int64, slug string) string {
	return fmt.Sprintf("/team/%d/%s", hltvID, slug)
}

func PlayerPath(hltvID int64, slug string) string {
	return fmt.Sprintf("/player/%d/%s", hltvID, slug)
}

func PlayerStatsPath(hltvID int64, slug, from, to string) string {
	return fmt.Sprintf("/stats/players/%d/%s?startDate=%s&endDate=%s", hltvID, slug, from, to)
}

func TeamMatchesPath(hltvID int64, slug string) string {
	return fmt.Sprintf("/team/%d/%s#tab-matchesBox", hltvID, slug)
}
