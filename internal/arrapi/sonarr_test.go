package arrapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSonarrGetByTvdbIDFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/series/lookup/tvdb/81189":
			w.WriteHeader(http.StatusNotFound)
		case "/api/v3/series/lookup":
			if got := r.URL.Query().Get("term"); got != "tvdb:81189" {
				t.Errorf("term = %q, want tvdb:81189", got)
			}
			_ = json.NewEncoder(w).Encode([]Series{{
				TvdbID: 81189,
				Title:  "Breaking Bad",
				Year:   2008,
				Seasons: []Season{
					{SeasonNumber: 0},
					{SeasonNumber: 1},
					{SeasonNumber: 2},
				},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewSonarrClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	defer client.Close()

	series, err := client.GetByTvdbID(context.Background(), "81189")
	if err != nil {
		t.Fatalf("GetByTvdbID() error = %v", err)
	}
	if series.Title != "Breaking Bad" {
		t.Errorf("title = %q, want Breaking Bad", series.Title)
	}
	if len(series.Seasons) != 3 {
		t.Errorf("seasons = %d, want 3", len(series.Seasons))
	}
}

func TestSonarrAddSendsSeasons(t *testing.T) {
	var body AddSeriesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer server.Close()

	client := NewSonarrClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	defer client.Close()

	err := client.Add(context.Background(), AddSeriesRequest{
		TvdbID:           81189,
		Title:            "Breaking Bad",
		QualityProfileID: 4,
		RootFolderPath:   "/tv",
		SeasonFolder:     true,
		Monitored:        true,
		Seasons: []Season{
			{SeasonNumber: 1, Monitored: true},
			{SeasonNumber: 2, Monitored: false},
			{SeasonNumber: FutureSeasonNumber, Monitored: true},
		},
		AddOptions: SeriesAddOptions{SearchForMissingEpisodes: true},
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if len(body.Seasons) != 3 {
		t.Fatalf("seasons in body = %d, want 3", len(body.Seasons))
	}
	last := body.Seasons[2]
	if last.SeasonNumber != FutureSeasonNumber || !last.Monitored {
		t.Errorf("future sentinel = %+v, want {-1 true}", last)
	}
	if !body.AddOptions.SearchForMissingEpisodes {
		t.Error("addOptions.searchForMissingEpisodes should be true")
	}
}
