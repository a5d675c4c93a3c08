package hltv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"cstracker-backend/lib/telemetry"

	browser "github.com/EDDYCJY/fake-useragent"
	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/hltv")

const BaseUrl = "https://www.hltv.org"

// pages shorter than this are cut-off error bodies, not real content
const minDocumentBytes = 1000

// ErrUnavailable is returned once every fetch attempt for a page has
// been exhausted. Callers treat it as "no data for this request this
// run" and move on to their remaining work.
var ErrUnavailable = errors.New("page unavailable")

type ClientOptions struct {
	BaseUrl     string
	Timeout     time.Duration
	MaxAttempts int
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	maxAttempts int
	primed      bool

	// replaced in tests so backoff policy can be observed without
	// actually waiting
	sleep func(time.Duration)
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = BaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 3
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", browser.Firefox())
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetHeader("upgrade-insecure-requests", "1")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, "scrapers/hltv/http")

	c := &Client{
		BaseUrl:     baseUrl,
		Http:        client,
		maxAttempts: opts.MaxAttempts,
		sleep:       time.Sleep,
	}
	return c, nil
}

// Close releases the underlying transport. It is safe to call on every
// exit path, including after a failed construction further up the
// stack.
func (c *Client) Close() {
	if c == nil || c.Http == nil {
		return
	}
	c.Http.GetClient().CloseIdleConnections()
}

// prime performs a navigation to the site root before the first deep
// content request. The anti-bot layer grants session cookies on the
// landing page and refuses cold requests to inner pages.
func (c *Client) prime(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "client:prime")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to prime session")
		slog.WarnContext(ctx, "session priming request failed", "err", err)
		return
	}
	slog.DebugContext(ctx, "session primed", "status", res.StatusCode())
	c.primed = true
}

// humanJitter returns a small randomized delay so the request cadence
// never looks like a metronome. A constant delay is itself a bot
// signal.
func humanJitter() time.Duration {
	ms, err := random.IntRange(250, 1250)
	if err != nil {
		return time.Millisecond * 500
	}
	return time.Duration(ms) * time.Millisecond
}

func looksLikeContent(body []byte) bool {
	return bytes.Contains(bytes.ToLower(body), []byte("hltv"))
}

func isBlockedTitle(title string) bool {
	title = strings.ToLower(title)
	for _, keyword := range []string{"access denied", "403", "forbidden", "blocked"} {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}

func docTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Fetch requests the given site-relative path and returns the parsed
// document. Transient failures (blocked responses, rate limits,
// challenge interstitials, truncated bodies, transport errors) are
// retried with a per-class escalating backoff; the error returned
// after the final attempt wraps ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, path string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	if !c.primed {
		c.prime(ctx)
	}

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		slog.InfoContext(ctx, "fetching page", "url", path, "attempt", attempt)

		doc, backoff, err := c.fetchOnce(ctx, path, attempt)
		if doc != nil {
			return doc, nil
		}
		if err != nil {
			slog.WarnContext(ctx, "fetch attempt failed", "url", path, "attempt", attempt, "err", err)
		}
		if attempt < c.maxAttempts {
			delay := backoff + humanJitter()
			slog.InfoContext(ctx, "backing off before retry", "url", path, "delay", delay)
			c.sleep(delay)
		}
	}

	span.SetStatus(codes.Error, "all fetch attempts exhausted")
	return nil, fmt.Errorf("%w: %s after %d attempts", ErrUnavailable, path, c.maxAttempts)
}

// fetchOnce runs a single classified attempt. Exactly one of doc or
// backoff is meaningful: a nil doc means the attempt failed and
// backoff holds the delay its failure class asks for.
func (c *Client) fetchOnce(ctx context.Context, path string, attempt int) (doc *goquery.Document, backoff time.Duration, err error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("referer", c.BaseUrl.String()+"/").
		Get(path)
	if err != nil {
		return nil, time.Duration(5+attempt*2) * time.Second, err
	}

	switch {
	case res.StatusCode() == http.StatusOK:
		return c.classifyBody(ctx, path, res, attempt)

	case res.StatusCode() == http.StatusForbidden || res.StatusCode() == http.StatusServiceUnavailable:
		doc, outcome := c.resolveChallenge(ctx, path, res)
		if doc != nil {
			return doc, 0, nil
		}
		if outcome == ChallengeTimedOut {
			// the interstitial never cleared; wait out the longer
			// window before burning another attempt
			return nil, time.Second * 60, fmt.Errorf("challenge page did not clear for %s", path)
		}
		return nil, time.Duration(10*attempt) * time.Second,
			fmt.Errorf("blocked with status %d for %s", res.StatusCode(), path)

	case res.StatusCode() == http.StatusTooManyRequests:
		return nil, time.Duration(20*attempt) * time.Second,
			fmt.Errorf("rate limited for %s", path)

	default:
		return nil, time.Duration(5+attempt*2) * time.Second,
			fmt.Errorf("unexpected status %d for %s", res.StatusCode(), path)
	}
}

func (c *Client) classifyBody(ctx context.Context, path string, res *resty.Response, attempt int) (*goquery.Document, time.Duration, error) {
	body := res.Body()
	if len(body) < minDocumentBytes {
		return nil, time.Duration(10*attempt) * time.Second,
			fmt.Errorf("suspiciously short document (%d bytes) for %s", len(body), path)
	}
	if !looksLikeContent(body) {
		return nil, time.Duration(10*attempt) * time.Second,
			fmt.Errorf("document does not contain expected site content for %s", path)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, time.Duration(5+attempt*2) * time.Second, err
	}

	title := docTitle(doc)
	if isChallengeTitle(title) {
		resolved, outcome := c.resolveChallenge(ctx, path, res)
		if resolved != nil {
			return resolved, 0, nil
		}
		if outcome == ChallengeTimedOut {
			return nil, time.Second * 60, fmt.Errorf("challenge page did not clear for %s", path)
		}
		return nil, time.Duration(10*attempt) * time.Second,
			fmt.Errorf("challenge interstitial served for %s", path)
	}
	if isBlockedTitle(title) {
		return nil, time.Duration(10*attempt) * time.Second,
			fmt.Errorf("blocked page title %q for %s", title, path)
	}

	slog.DebugContext(ctx, "page fetched", "url", path, "bytes", len(body), "title", title)
	return doc, 0, nil
}

// resolveChallenge inspects a response that may be an anti-automation
// interstitial and, when it is, polls until the challenge clears or
// the wait ceiling is hit.
func (c *Client) resolveChallenge(ctx context.Context, path string, res *resty.Response) (*goquery.Document, ChallengeOutcome) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, ChallengeStillBlocked
	}
	if !isChallengeTitle(docTitle(doc)) {
		return nil, ChallengeStillBlocked
	}

	slog.InfoContext(ctx, "challenge interstitial detected, waiting it out", "url", path)
	outcome, cleared := c.waitOutChallenge(ctx, path)
	if outcome == ChallengePassed {
		return cleared, outcome
	}
	return nil, outcome
}
