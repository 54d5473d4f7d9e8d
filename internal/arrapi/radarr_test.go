package arrapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRadarrAddAlreadyExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/movie" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"propertyName":"TmdbId","errorMessage":"This movie has already been added"}]`))
	}))
	defer server.Close()

	client := NewRadarrClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	defer client.Close()

	err := client.Add(context.Background(), AddMovieRequest{TmdbID: 550, Title: "Fight Club"})
	if err == nil {
		t.Fatal("expected error")
	}

	var exists *AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError, got %T: %v", err, err)
	}
	if got, want := exists.Error(), "Fight Club is already in your library"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestRadarrAddRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"propertyName":"Path","errorMessage":"Invalid path"}]`))
	}))
	defer server.Close()

	client := NewRadarrClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	defer client.Close()

	err := client.Add(context.Background(), AddMovieRequest{TmdbID: 550, Title: "Fight Club"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "Invalid path"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
	var exists *AlreadyExistsError
	if errors.As(err, &exists) {
		t.Error("rejection should not classify as already-exists")
	}
}

func TestRadarrAddFightClub(t *testing.T) {
	var body AddMovieRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	client := NewRadarrClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	defer client.Close()

	err := client.Add(context.Background(), AddMovieRequest{
		TmdbID:           550,
		Title:            "Fight Club",
		QualityProfileID: 1,
		RootFolderPath:   "/movies",
		Monitored:        true,
		AddOptions:       MovieAddOptions{SearchForMovie: true},
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if body.TmdbID != 550 {
		t.Errorf("tmdbId = %d, want 550", body.TmdbID)
	}
	if body.QualityProfileID != 1 {
		t.Errorf("qualityProfileId = %d, want 1", body.QualityProfileID)
	}
	if body.RootFolderPath != "/movies" {
		t.Errorf("rootFolderPath = %q, want /movies", body.RootFolderPath)
	}
	if !body.Monitored {
		t.Error("monitored should be true")
	}
	if !body.AddOptions.SearchForMovie {
		t.Error("addOptions.searchForMovie should be true")
	}
}

func TestRadarrGetByTmdbIDFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/movie/lookup/tmdb/550":
			// older Radarr versions do not have the direct endpoint
			w.WriteHeader(http.StatusNotFound)
		case "/api/v3/movie/lookup":
			if got := r.URL.Query().Get("term"); got != "tmdb:550" {
				t.Errorf("term = %q, want tmdb:550", got)
			}
			_ = json.NewEncoder(w).Encode([]Movie{{TmdbID: 550, Title: "Fight Club", Year: 1999}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewRadarrClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	defer client.Close()

	movie, err := client.GetByTmdbID(context.Background(), "550")
	if err != nil {
		t.Fatalf("GetByTmdbID() error = %v", err)
	}
	if movie.Title != "Fight Club" || movie.TmdbID != 550 {
		t.Errorf("got %+v, want Fight Club / 550", movie)
	}
}

func TestRadarrGetByTmdbIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/movie/lookup/tmdb/999":
			w.WriteHeader(http.StatusNotFound)
		default:
			_ = json.NewEncoder(w).Encode([]Movie{})
		}
	}))
	defer server.Close()

	client := NewRadarrClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	defer client.Close()

	if _, err := client.GetByTmdbID(context.Background(), "999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
