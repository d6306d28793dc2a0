package classroom

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"

	"github.com/h64/homework-cloner/errors"
)

// tokenExpiryHeader is set by the host for tokens with an expiration date.
const tokenExpiryHeader = "GitHub-Authentication-Token-Expiration"

// tokenExpiryWarning is how close to expiry the token has to be before
// a warning is printed after a fetch.
const tokenExpiryWarning = 7 * 24 * time.Hour

// APIError is returned when the host answered the pull request listing
// with an error payload instead of a list.
type APIError struct {
	Repo    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error for %s: %s", e.Repo, e.Message)
}

// TransportError is returned when the listing request failed below the
// API level. StatusCode is 0 if no response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error (status %d): %v", e.StatusCode, e.Err)
}

// Fetcher lists pull requests on homework repositories via the live
// source-control API.
type Fetcher struct {
	client *github.Client
	org    string
}

// FetcherOptions ...
type FetcherOptions struct {
	// HostName is the bare host, e.g. "github.com"; requests go to
	// https://api.<HostName>/.
	HostName string
	// Username is presented as the client identifier on every request.
	Username string
	Token    string
	OrgName  string
}

// NewFetcher ...
func NewFetcher(opts FetcherOptions) (*Fetcher, error) {
	if opts.Token == "" {
		return nil, errors.New("access token must be set")
	}
	if opts.OrgName == "" {
		return nil, errors.New("organization name must be set")
	}
	if opts.HostName == "" {
		opts.HostName = "github.com"
	}

	client := github.NewClient(
		oauth2.NewClient(context.Background(),
			oauth2.StaticTokenSource(
				&oauth2.Token{
					AccessToken: opts.Token,
				},
			),
		),
	)
	base, err := url.Parse(fmt.Sprintf("https://api.%s/", opts.HostName))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid host name %q", opts.HostName)
	}
	client.BaseURL = base
	client.UserAgent = opts.Username

	return &Fetcher{
		client: client,
		org:    opts.OrgName,
	}, nil
}

// OpenPullRequests issues a single listing request for the open pull
// requests on org/repo. Exactly one outcome is produced: the list, an
// *APIError if the host answered with an error payload, or a
// *TransportError otherwise. No pagination and no retries.
func (f *Fetcher) OpenPullRequests(ctx context.Context, repo string) ([]*github.PullRequest, error) {
	listOpts := &github.PullRequestListOptions{State: "open"}

	pulls, resp, err := f.client.PullRequests.List(ctx, f.org, repo, listOpts)
	if err != nil {
		if errResp, ok := err.(*github.ErrorResponse); ok {
			return nil, &APIError{
				Repo:    f.org + "/" + repo,
				Message: errResp.Message,
			}
		}
		var status int
		if resp != nil {
			status = resp.StatusCode
		}
		return nil, &TransportError{StatusCode: status, Err: err}
	}

	FetchedPulls.Add(int64(len(pulls)))
	warnTokenExpiry(resp, time.Now())
	return pulls, nil
}

func warnTokenExpiry(resp *github.Response, now time.Time) {
	if resp == nil {
		return
	}
	left, soon := expiringSoon(resp.Header.Get(tokenExpiryHeader), now)
	if soon {
		log.Printf("access token expires in %d days, consider rotating it", int(left.Hours()/24))
	}
}

// expiringSoon reports whether the raw expiry header names a time less
// than tokenExpiryWarning away. A missing or unparseable header never
// triggers a warning.
func expiringSoon(raw string, now time.Time) (time.Duration, bool) {
	if raw == "" {
		return 0, false
	}
	exp, err := parseExpiry(raw)
	if err != nil {
		return 0, false
	}
	left := exp.Sub(now)
	return left, left < tokenExpiryWarning
}

func parseExpiry(raw string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05 MST",
		"2006-01-02 15:04:05 -0700",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized token expiration %q", raw)
}
