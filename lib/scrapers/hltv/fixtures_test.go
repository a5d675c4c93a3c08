package hltv

import "strings"

// page wraps a body fragment in a full document and pads it past the
// truncation floor so fixtures behave like real responses.
func page(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>")
	b.WriteString(title)
	b.WriteString("</title></head><body>")
	b.WriteString(body)
	b.WriteString("<!-- ")
	for b.Len() < minDocumentBytes {
		b.WriteString("hltv filler content ")
	}
	b.WriteString(" --></body></html>")
	return b.String()
}

const rankingBody = `
<div class="ranked-team">
  <span class="position">#3</span>
  <div class="teamLine"><span class="name">Vitality</span></div>
  <span class="points">(1850 points)</span>
  <a class="moreLink" href="/team/9565/vitality">More</a>
</div>
<div class="ranked-team">
  <span class="position">#4</span>
  <div class="teamLine"><span class="name">Natus Vincere</span></div>
  <span class="points">(1420 points)</span>
  <a class="moreLink" href="/team/4608/natus-vincere">More</a>
</div>
<div class="ranked-team">
  <span class="position">#999</span>
  <div class="teamLine"><span class="name">Ghost Entry</span></div>
  <span class="points">(9 points)</span>
  <a class="moreLink" href="/team/1/ghost">More</a>
</div>
`

const teamBody = `
<h1 class="profile-team-name">Natus Vincere</h1>
<div class="team-country"><img alt="Ukraine" src="/img/ua.png"> Ukraine</div>
<div class="profile-team-stat">World ranking <a href="/ranking/teams">#4</a></div>
<div class="bodyshot-team">
  <a href="/player/7998/s1mple"><span class="text-ellipsis">s1mple</span></a>
  <a href="/player/7998/s1mple"><span class="text-ellipsis">s1mple</span></a>
  <a href="/player/3741/b1t"><span class="text-ellipsis">b1t</span></a>
  <a href="/player/18053/jl"><span class="text-ellipsis">jL</span></a>
  <a href="/player/16947/im"><span class="text-ellipsis">iM</span></a>
  <a href="/player/20128/w0nderful"><span class="text-ellipsis">w0nderful</span></a>
  <a href="/player/99999/coach"><span class="text-ellipsis">coach</span></a>
</div>
`

const playerBody = `
<h1 class="summaryNickname">s1mple</h1>
<div class="summaryRealname"><img alt="Ukraine" src="/img/ua.png">Oleksandr Kostyliev</div>
<div class="summaryPlayerAge">28 years</div>
`

const statsBreakdownBody = `
<div class="summaryStatBreakdownRow">
  <div class="summaryStatBreakdown">
    <div class="summaryStatBreakdownSubHeader">Rating 2.0</div>
    <div class="summaryStatBreakdownDataValue">1.21</div>
  </div>
  <div class="summaryStatBreakdown">
    <div class="summaryStatBreakdownSubHeader">K/D</div>
    <div class="summaryStatBreakdownDataValue">1.34</div>
  </div>
  <div class="summaryStatBreakdown">
    <div class="summaryStatBreakdownSubHeader">ADR</div>
    <div class="summaryStatBreakdownDataValue">82.4</div>
  </div>
  <div class="summaryStatBreakdown">
    <div class="summaryStatBreakdownSubHeader">KAST</div>
    <div class="summaryStatBreakdownDataValue">73.1%</div>
  </div>
  <div class="summaryStatBreakdown">
    <div class="summaryStatBreakdownSubHeader">Headshot %</div>
    <div class="summaryStatBreakdownDataValue">58.2%</div>
  </div>
</div>
`

const matchesBody = `
<div class="matches-list-wrapper">
  <a href="/matches/2371234/vitality-vs-natus-vincere">
    <div class="matchTeamName">Vitality</div>
    <div class="matchTeamName">Natus Vincere</div>
    <div class="time" data-unix="1756900800000">21:00</div>
    <div class="bestof">Best of 3</div>
  </a>
  <a href="/matches/2371234/vitality-vs-natus-vincere">
    <div class="matchTeamName">Vitality</div>
    <div class="matchTeamName">Natus Vincere</div>
  </a>
  <a href="/matches/2371235/tbd-vs-tbd">
    <div class="match-team team1"></div>
    <div class="match-team team2"></div>
  </a>
  <div class="matches-chronologically-hide">
    <a href="/matches/2360000/old-match">
      <div class="matchTeamName">Vitality</div>
      <div class="matchTeamName">FaZe</div>
    </a>
  </div>
</div>
`
