// Package wiki is a minimal MediaWiki Action API client covering what the
// reminder passes need: identity, the notification feed, revision content,
// and appending to talk pages. Calls are paced by a shared rate limiter and
// any API failure is fatal to the run that made it.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/APerson241/RemindMeBot/internal/logx"
	"github.com/APerson241/RemindMeBot/internal/remind"
)

const userAgent = "RemindMeBot (https://github.com/APerson241/RemindMeBot)"

type Config struct {
	// APIURL is the api.php endpoint.
	APIURL   string
	Username string
	Password string
	// RatePerSec caps API calls per second. Defaults to 1.
	RatePerSec int
}

type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *rate.Limiter
	log     logx.Logger
}

var _ remind.Platform = (*Client)(nil)

func NewClient(cfg Config, log logx.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIURL) == "" {
		return nil, errors.New("wiki: api url is required")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Jar: jar, Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
	}, nil
}

// Login authenticates with a bot password. The session lives in the cookie
// jar; call it once before the passes run.
func (c *Client) Login(ctx context.Context) error {
	token, err := c.token(ctx, "login")
	if err != nil {
		return err
	}
	resp, err := c.post(ctx, url.Values{
		"action":     {"login"},
		"lgname":     {c.cfg.Username},
		"lgpassword": {c.cfg.Password},
		"lgtoken":    {token},
	})
	if err != nil {
		return err
	}
	if resp.Login == nil || resp.Login.Result != "Success" {
		result := "<none>"
		if resp.Login != nil {
			result = resp.Login.Result
		}
		return fmt.Errorf("wiki: login failed: %s", result)
	}
	c.log.Info("logged in", logx.String("user", c.cfg.Username))
	return nil
}

// Identity returns the authenticated username.
func (c *Client) Identity(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, url.Values{
		"action": {"query"},
		"meta":   {"userinfo"},
	})
	if err != nil {
		return "", err
	}
	if resp.Query == nil || resp.Query.UserInfo == nil {
		return "", errors.New("wiki: userinfo missing from response")
	}
	return resp.Query.UserInfo.Name, nil
}

// Notifications returns the pending events for the authenticated user.
func (c *Client) Notifications(ctx context.Context) ([]remind.Event, error) {
	resp, err := c.get(ctx, url.Values{
		"action":   {"query"},
		"meta":     {"notifications"},
		"notlimit": {"50"},
	})
	if err != nil {
		return nil, err
	}
	if resp.Query == nil || resp.Query.Notifications == nil {
		return nil, nil
	}

	events := make([]remind.Event, 0, len(resp.Query.Notifications.List))
	for _, n := range resp.Query.Notifications.List {
		ts, err := time.Parse(time.RFC3339, n.Timestamp.UTCISO8601)
		if err != nil {
			return nil, fmt.Errorf("wiki: notification timestamp: %w", err)
		}
		events = append(events, remind.Event{
			Type:       n.Type,
			Agent:      n.Agent.Name,
			Page:       n.Title.Full,
			RevisionID: n.RevID,
			Timestamp:  ts.UTC(),
		})
	}
	return events, nil
}

// Revision returns the page text as of the given revision.
func (c *Client) Revision(ctx context.Context, revID int64) (string, error) {
	resp, err := c.get(ctx, url.Values{
		"action":  {"query"},
		"prop":    {"revisions"},
		"revids":  {strconv.FormatInt(revID, 10)},
		"rvprop":  {"content"},
		"rvslots": {"main"},
	})
	if err != nil {
		return "", err
	}
	if resp.Query == nil {
		return "", errors.New("wiki: revision query missing from response")
	}
	for _, p := range resp.Query.Pages {
		for _, r := range p.Revisions {
			return r.Slots.Main.Content, nil
		}
	}
	return "", fmt.Errorf("wiki: revision %d not found", revID)
}

// AppendToPage appends text to a page with an edit summary.
func (c *Client) AppendToPage(ctx context.Context, title, text, summary string) error {
	token, err := c.token(ctx, "csrf")
	if err != nil {
		return err
	}
	resp, err := c.post(ctx, url.Values{
		"action":     {"edit"},
		"title":      {title},
		"appendtext": {text},
		"summary":    {summary},
		"bot":        {"1"},
		"token":      {token},
	})
	if err != nil {
		return err
	}
	if resp.Edit == nil || resp.Edit.Result != "Success" {
		return fmt.Errorf("wiki: edit of %q did not succeed", title)
	}
	return nil
}

func (c *Client) token(ctx context.Context, kind string) (string, error) {
	resp, err := c.get(ctx, url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"type":   {kind},
	})
	if err != nil {
		return "", err
	}
	if resp.Query == nil {
		return "", errors.New("wiki: token query missing from response")
	}
	t := resp.Query.Tokens[kind+"token"]
	if t == "" {
		return "", fmt.Errorf("wiki: no %s token in response", kind)
	}
	return t, nil
}

func (c *Client) get(ctx context.Context, params url.Values) (*apiResponse, error) {
	setFormat(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.APIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, params url.Values) (*apiResponse, error) {
	setFormat(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.APIURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*apiResponse, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki: unexpected status %s", res.Status)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("wiki: read response: %w", err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("wiki: decode response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("wiki: api error %s: %s", resp.Error.Code, resp.Error.Info)
	}
	return &resp, nil
}

func setFormat(params url.Values) {
	params.Set("format", "json")
	params.Set("formatversion", "2")
}
