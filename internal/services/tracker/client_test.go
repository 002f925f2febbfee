package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, shots []Shot) (*httptest.Server, *int) {
	t.Helper()
	logins := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		logins++
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	mux.HandleFunc("/data/shots", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var matched []Shot
		for _, s := range shots {
			if s.Project == r.URL.Query().Get("project") && s.Name == r.URL.Query().Get("name") {
				matched = append(matched, s)
			}
		}
		json.NewEncoder(w).Encode(matched)
	})
	mux.HandleFunc("/data/shots/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req PublishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(Version{
			ID:         "ver-9",
			Name:       req.Name,
			ShotID:     req.ShotID,
			FirstFrame: req.FirstFrame,
			LastFrame:  req.LastFrame,
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &logins
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(baseURL, "pipeline@example.com", "secret", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestNewValidatesInputs(t *testing.T) {
	if _, err := New("", "a@b.c", "pw", time.Second); err == nil {
		t.Error("expected error for empty base url")
	}
	if _, err := New("http://x", "", "pw", time.Second); err == nil {
		t.Error("expected error for empty email")
	}
}

func TestFindShot(t *testing.T) {
	server, logins := newTestServer(t, []Shot{
		{ID: "shot-1", Name: "sht100", Sequence: "sq10", Project: "demo"},
	})
	client := newTestClient(t, server.URL)

	found, err := client.FindShot(context.Background(), "demo", "sht100")
	if err != nil {
		t.Fatalf("FindShot: %v", err)
	}
	if found.ID != "shot-1" || found.Sequence != "sq10" {
		t.Errorf("shot = %+v", found)
	}
	if *logins != 1 {
		t.Errorf("logins = %d, want 1 (lazy token)", *logins)
	}

	// Token is cached across calls.
	if _, err := client.FindShot(context.Background(), "demo", "sht100"); err != nil {
		t.Fatalf("second FindShot: %v", err)
	}
	if *logins != 1 {
		t.Errorf("logins after second call = %d, want 1", *logins)
	}
}

func TestFindShotNotFound(t *testing.T) {
	server, _ := newTestServer(t, nil)
	client := newTestClient(t, server.URL)

	_, err := client.FindShot(context.Background(), "demo", "sht999")
	if !errors.Is(err, ErrShotNotFound) {
		t.Fatalf("expected ErrShotNotFound, got %v", err)
	}
}

func TestPublishVersion(t *testing.T) {
	server, _ := newTestServer(t, nil)
	client := newTestClient(t, server.URL)

	version, err := client.PublishVersion(context.Background(), PublishRequest{
		ShotID:     "shot-1",
		Name:       "sht100_pla_rawPlate_v001",
		TaskType:   "pla",
		FirstFrame: 993,
		LastFrame:  1059,
		PlatePath:  "/proj/demo/sht100/pla/v001",
	})
	if err != nil {
		t.Fatalf("PublishVersion: %v", err)
	}
	if version.ID != "ver-9" || version.FirstFrame != 993 || version.LastFrame != 1059 {
		t.Errorf("version = %+v", version)
	}
}

func TestPublishVersionValidatesRequest(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	if _, err := client.PublishVersion(context.Background(), PublishRequest{Name: "x"}); err == nil {
		t.Error("expected error for missing shot id")
	}
	if _, err := client.PublishVersion(context.Background(), PublishRequest{ShotID: "s"}); err == nil {
		t.Error("expected error for missing version name")
	}
}

func TestExpiredTokenRefreshes(t *testing.T) {
	tokens := []string{"stale", "tok-1"}
	issued := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		token := tokens[issued]
		if issued < len(tokens)-1 {
			issued++
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": token})
	})
	mux.HandleFunc("/data/shots", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]Shot{{ID: "shot-1", Name: "sht100", Project: "demo"}})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL)
	found, err := client.FindShot(context.Background(), "demo", "sht100")
	if err != nil {
		t.Fatalf("FindShot after refresh: %v", err)
	}
	if found.ID != "shot-1" {
		t.Errorf("shot = %+v", found)
	}
}
