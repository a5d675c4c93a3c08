package hltv

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ChallengeOutcome reports how a wait on an anti-automation
// interstitial ended.
type ChallengeOutcome int

const (
	ChallengePassed ChallengeOutcome = iota
	ChallengeStillBlocked
	ChallengeTimedOut
)

const (
	challengePollInterval = time.Second * 5
	challengeMaxWait      = time.Second * 60
)

func isChallengeTitle(title string) bool {
	title = strings.ToLower(title)
	return strings.Contains(title, "just a moment") ||
		strings.Contains(title, "checking your browser") ||
		strings.Contains(title, "checking")
}

// waitOutChallenge re-requests the page on a fixed interval until the
// interstitial title disappears or the wait ceiling is reached. The
// browser-shaped transport plus session cookies are usually enough for
// the challenge to clear on its own within a poll or two.
func (c *Client) waitOutChallenge(ctx context.Context, path string) (ChallengeOutcome, *goquery.Document) {
	waited := time.Duration(0)
	for waited < challengeMaxWait {
		c.sleep(challengePollInterval)
		waited += challengePollInterval

		res, err := c.Http.R().
			SetContext(ctx).
			SetHeader("referer", c.BaseUrl.String()+"/").
			Get(path)
		if err != nil {
			slog.DebugContext(ctx, "challenge poll request failed", "url", path, "err", err)
			continue
		}
		if res.StatusCode() != http.StatusOK &&
			res.StatusCode() != http.StatusForbidden &&
			res.StatusCode() != http.StatusServiceUnavailable {
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
		if err != nil {
			continue
		}
		if isChallengeTitle(docTitle(doc)) {
			slog.DebugContext(ctx, "challenge still up", "url", path, "waited", waited)
			continue
		}
		if res.StatusCode() != http.StatusOK || len(res.Body()) < minDocumentBytes {
			return ChallengeStillBlocked, nil
		}

		slog.InfoContext(ctx, "challenge cleared", "url", path, "waited", waited)
		return ChallengePassed, doc
	}

	slog.WarnContext(ctx, "challenge never cleared", "url", path, "waited", waited)
	return ChallengeTimedOut, nil
}
