package classroom

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, serverURL string) *Fetcher {
	f, err := NewFetcher(FetcherOptions{
		HostName: "github.com",
		Username: "instructor",
		Token:    "test-token",
		OrgName:  "classroom-org",
	})
	require.NoError(t, err)

	base, err := url.Parse(serverURL + "/")
	require.NoError(t, err)
	f.client.BaseURL = base
	return f
}

func TestNewFetcherValidation(t *testing.T) {
	_, err := NewFetcher(FetcherOptions{OrgName: "org"})
	require.Error(t, err)

	_, err = NewFetcher(FetcherOptions{Token: "tok"})
	require.Error(t, err)
}

func TestOpenPullRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/classroom-org/hw1/pulls", r.URL.Path)
		require.Equal(t, "open", r.URL.Query().Get("state"))
		require.Contains(t, r.Header.Get("Authorization"), "test-token")

		fmt.Fprint(w, `[
			{
				"user": {"login": "a1"},
				"head": {"ref": "main"},
				"base": {"repo": {"full_name": "classroom-org/a1-hw"}}
			}
		]`)
	}))
	defer srv.Close()

	f := newTestFetcher(t, srv.URL)
	pulls, err := f.OpenPullRequests(context.Background(), "hw1")
	require.NoError(t, err)
	require.Len(t, pulls, 1)
	require.Equal(t, "a1", pulls[0].GetUser().GetLogin())
	require.Equal(t, "main", pulls[0].GetHead().GetRef())
	require.Equal(t, "classroom-org/a1-hw", pulls[0].GetBase().GetRepo().GetFullName())
}

func TestOpenPullRequests_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))
	defer srv.Close()

	f := newTestFetcher(t, srv.URL)
	pulls, err := f.OpenPullRequests(context.Background(), "nope")
	require.Nil(t, pulls)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T: %v", err, err)
	require.Equal(t, "classroom-org/nope", apiErr.Repo)
	require.Equal(t, "Not Found", apiErr.Message)
}

func TestOpenPullRequests_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	f := newTestFetcher(t, srv.URL)
	srv.Close()

	pulls, err := f.OpenPullRequests(context.Background(), "hw1")
	require.Nil(t, pulls)

	_, ok := err.(*TransportError)
	require.True(t, ok, "expected *TransportError, got %T: %v", err, err)
}

func TestExpiringSoon(t *testing.T) {
	now := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		raw  string
		soon bool
	}{
		{"", false},
		{"garbage", false},
		{"2023-06-03 00:00:00 UTC", true},
		{"2023-09-01 00:00:00 UTC", false},
		{"2023-06-03T00:00:00Z", true},
		{"2023-09-01T00:00:00Z", false},
	}

	for _, c := range cases {
		_, soon := expiringSoon(c.raw, now)
		require.Equal(t, c.soon, soon, "header %q", c.raw)
	}
}

func TestExpiringSoonDaysLeft(t *testing.T) {
	now := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	left, soon := expiringSoon("2023-06-04T00:00:00Z", now)
	require.True(t, soon)
	require.Equal(t, 3, int(left.Hours()/24))
}
