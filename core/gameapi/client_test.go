package gameapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, TimeoutSeconds: 2})
}

func TestClient_CharacterProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profile/wow/character/demon-soul/manongauz", r.URL.Path)
		assert.Equal(t, "profile-us", r.URL.Query().Get("namespace"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": 201902421, "name": "Manongauz"}`))
	})

	doc, err := client.CharacterProfile(context.Background(), "tok", "demon-soul", "Manongauz")
	require.NoError(t, err)
	assert.Equal(t, "Manongauz", doc["name"])
}

func TestClient_CharacterProfile_Failures(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.CharacterProfile(context.Background(), "tok", "realm", "ghost")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("Array Body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[1, 2]`))
		})

		_, err := client.CharacterProfile(context.Background(), "tok", "realm", "name")
		assert.ErrorIs(t, err, ErrNotJSONObject)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":`))
		})

		_, err := client.CharacterProfile(context.Background(), "tok", "realm", "name")
		assert.ErrorContains(t, err, "decode")
	})
}

func TestClient_CurrentSeasonID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/wow/pvp-season/index", r.URL.Path)
		_, _ = w.Write([]byte(`{"current_season": {"id": 40}}`))
	})

	id, err := client.CurrentSeasonID(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 40, id)
}

func TestClient_CurrentSeasonID_Missing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"seasons": []}`))
	})

	_, err := client.CurrentSeasonID(context.Background(), "tok")
	assert.Error(t, err)
}

func TestClient_Leaderboard(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/wow/pvp-season/40/pvp-leaderboard/3v3", r.URL.Path)
		_, _ = w.Write([]byte(`{"entries": [{
			"character": {"id": 252903401, "name": "Lørdnick", "realm": {"id": 60, "slug": "stormrage"}},
			"faction": {"type": "HORDE"},
			"rank": 1,
			"rating": 2954,
			"season_match_statistics": {"played": 217, "won": 144, "lost": 73}
		}]}`))
	})

	lb, err := client.Leaderboard(context.Background(), "tok", 40, "3v3")
	require.NoError(t, err)
	require.Len(t, lb.Entries, 1)

	e := lb.Entries[0]
	assert.Equal(t, int64(252903401), *e.Character.ID)
	assert.Equal(t, "stormrage", e.Character.Realm.Slug)
	assert.Equal(t, "HORDE", e.Faction.Type)
	assert.Equal(t, 144, *e.SeasonMatchStatistics.Won)
}
