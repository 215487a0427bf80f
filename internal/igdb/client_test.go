package igdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanm101/gameroom/internal/cache"
	"github.com/ryanm101/gameroom/internal/upstream"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

type failingToken struct{}

func (failingToken) Token(context.Context) (string, error) {
	return "", upstream.Wrap(upstream.ErrAuth, source, "token exchange", errors.New("denied"))
}

const twoGames = `[
  {"id": 1905, "name": "Fortnite", "cover": {"id": 9, "image_id": "abc"}, "age_ratings": [{"id": 1, "rating": 10}]},
  {"id": 11198, "name": "Rocket League", "summary": "Soccer with cars."}
]`

type recordedRequest struct {
	path    string
	body    string
	headers http.Header
}

func catalogServer(t *testing.T, calls *int32, last *recordedRequest, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		data, _ := io.ReadAll(r.Body)
		if last != nil {
			*last = recordedRequest{path: r.URL.Path, body: string(data), headers: r.Header.Clone()}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server, tokens TokenSource) *Client {
	rc := cache.New(cache.NewMemoryStore())
	return NewClient("client-id", tokens, rc, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestClient_FetchByIDs_OneBatchedRequest(t *testing.T) {
	var calls int32
	var last recordedRequest
	srv := catalogServer(t, &calls, &last, http.StatusOK, twoGames)
	c := newTestClient(srv, staticToken("tok"))

	games, err := c.FetchByIDs(context.Background(), "ps5", []int{11198, 1905})
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Fortnite", games[0].Title)
	assert.Equal(t, "T", games[0].Rating)
	assert.Equal(t, "Rocket League", games[1].Title)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "/games", last.path)
	assert.Equal(t, "client-id", last.headers.Get("Client-ID"))
	assert.Equal(t, "Bearer tok", last.headers.Get("Authorization"))
	assert.Equal(t, "text/plain", last.headers.Get("Content-Type"))
	assert.Contains(t, last.body, "where id = (11198,1905);")
	assert.Contains(t, last.body, "limit 2;")
	assert.Contains(t, last.body, "cover.image_id")
}

func TestClient_FetchByIDs_CachedWithinTTL(t *testing.T) {
	var calls int32
	srv := catalogServer(t, &calls, nil, http.StatusOK, twoGames)
	c := newTestClient(srv, staticToken("tok"))

	first, err := c.FetchByIDs(context.Background(), "xbox", []int{1905, 11198})
	require.NoError(t, err)

	// Same set in a different order hits the same entry.
	second, err := c.FetchByIDs(context.Background(), "xbox", []int{11198, 1905})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_FetchByIDs_EmptyIDs(t *testing.T) {
	var calls int32
	srv := catalogServer(t, &calls, nil, http.StatusOK, "[]")
	c := newTestClient(srv, staticToken("tok"))

	games, err := c.FetchByIDs(context.Background(), "switch", nil)
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_FetchByIDs_UpstreamStatus(t *testing.T) {
	var calls int32
	srv := catalogServer(t, &calls, nil, http.StatusTooManyRequests, `{"message":"slow down"}`)
	c := newTestClient(srv, staticToken("tok"))

	_, err := c.FetchByIDs(context.Background(), "ps5", []int{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream.ErrUpstream)

	var ue *upstream.Error
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "igdb", ue.Source)
}

func TestClient_FetchByIDs_FailureNotCached(t *testing.T) {
	var calls int32
	srv := catalogServer(t, &calls, nil, http.StatusInternalServerError, "")
	c := newTestClient(srv, staticToken("tok"))

	_, err := c.FetchByIDs(context.Background(), "ps5", []int{1})
	require.Error(t, err)
	_, err = c.FetchByIDs(context.Background(), "ps5", []int{1})
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_FetchByIDs_MalformedBody(t *testing.T) {
	var calls int32
	srv := catalogServer(t, &calls, nil, http.StatusOK, `{"not":"an array"}`)
	c := newTestClient(srv, staticToken("tok"))

	_, err := c.FetchByIDs(context.Background(), "ps5", []int{1})
	assert.ErrorIs(t, err, upstream.ErrParse)
}

func TestClient_FetchByIDs_TokenFailure(t *testing.T) {
	var calls int32
	srv := catalogServer(t, &calls, nil, http.StatusOK, twoGames)
	c := newTestClient(srv, failingToken{})

	_, err := c.FetchByIDs(context.Background(), "ps5", []int{1})
	assert.ErrorIs(t, err, upstream.ErrAuth)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_Search_PlatformFilter(t *testing.T) {
	var calls int32
	var last recordedRequest
	srv := catalogServer(t, &calls, &last, http.StatusOK, twoGames)
	c := newTestClient(srv, staticToken("tok"))

	games, err := c.Search(context.Background(), `halo "infinite"`, "xbox")
	require.NoError(t, err)
	assert.Len(t, games, 2)
	assert.Contains(t, last.body, `search "halo infinite";`)
	assert.Contains(t, last.body, "where platforms = (169);")
	assert.Contains(t, last.body, "limit 20;")

	_, err = c.Search(context.Background(), `halo "infinite"`, "xbox")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Search_NoPlatform(t *testing.T) {
	var calls int32
	var last recordedRequest
	srv := catalogServer(t, &calls, &last, http.StatusOK, "[]")
	c := newTestClient(srv, staticToken("tok"))

	games, err := c.Search(context.Background(), "zelda", "")
	require.NoError(t, err)
	assert.Empty(t, games)
	assert.NotContains(t, last.body, "where")

	// Different platform is a different cache entry.
	_, err = c.Search(context.Background(), "zelda", "switch")
	require.NoError(t, err)
	assert.Contains(t, last.body, "where platforms = (130);")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestQuery_String(t *testing.T) {
	q := ByIDsQuery([]int{1, 2})
	assert.Equal(t,
		"fields name,cover.image_id,summary,genres.name,platforms.name,rating,first_release_date,age_ratings.rating; where id = (1,2); limit 2;",
		q.String())

	assert.Equal(t, `search "mario"; limit 5;`, Query{Search: `"mario"`, Limit: 5}.String())
}
