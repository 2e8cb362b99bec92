package transcript

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "yt-summary/errors"
	"yt-summary/models"
)

const captionXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.1">never gonna give</text>
  <text start="2.1" dur="1.9">you up &amp; never gonna</text>
  <text start="4.0" dur="2.0">let you down</text>
</transcript>`

// newTestClient starts a server that serves a watch page whose caption
// tracks point back at the same server.
func newTestClient(t *testing.T, tracksJSON func(base string) string, trackStatus int) *Client {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		tracks := tracksJSON(server.URL)
		if tracks == "" {
			fmt.Fprint(w, `<html>{"responseContext":{}}</html>`)
			return
		}
		fmt.Fprintf(w, `<html>{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":%s}}}</html>`, tracks)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if trackStatus != http.StatusOK {
			w.WriteHeader(trackStatus)
			return
		}
		fmt.Fprint(w, captionXML)
	})

	return NewClient(Config{
		BaseURL:  server.URL,
		Language: "en",
		Timeout:  5 * time.Second,
	})
}

func englishTrack(base string) string {
	return fmt.Sprintf(`[{"baseUrl":"%s/api/timedtext?lang=en","languageCode":"en"}]`, base)
}

func TestFetch(t *testing.T) {
	client := newTestClient(t, englishTrack, http.StatusOK)

	transcript, err := client.Fetch(context.Background(), models.VideoRef{ID: "dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := "never gonna give you up & never gonna let you down"
	if transcript.Text != expected {
		t.Errorf("expected %q, got %q", expected, transcript.Text)
	}
	if transcript.Language != "en" {
		t.Errorf("expected language en, got %s", transcript.Language)
	}
}

func TestFetchRegionalVariant(t *testing.T) {
	client := newTestClient(t, func(base string) string {
		return fmt.Sprintf(`[{"baseUrl":"%s/api/timedtext?lang=en-US","languageCode":"en-US"}]`, base)
	}, http.StatusOK)

	transcript, err := client.Fetch(context.Background(), models.VideoRef{ID: "abc"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if transcript.Language != "en-US" {
		t.Errorf("expected en-US, got %s", transcript.Language)
	}
}

func TestFetchCaptionsDisabled(t *testing.T) {
	client := newTestClient(t, func(string) string { return "" }, http.StatusOK)

	_, err := client.Fetch(context.Background(), models.VideoRef{ID: "abc"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kind := apperrors.KindOf(err); kind != apperrors.KindCaptionsDisabled {
		t.Errorf("expected captions_disabled, got %s", kind)
	}
}

func TestFetchCaptionsUnavailable(t *testing.T) {
	client := newTestClient(t, func(base string) string {
		return fmt.Sprintf(`[{"baseUrl":"%s/api/timedtext?lang=fr","languageCode":"fr"}]`, base)
	}, http.StatusOK)

	_, err := client.Fetch(context.Background(), models.VideoRef{ID: "abc"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kind := apperrors.KindOf(err); kind != apperrors.KindCaptionsUnavailable {
		t.Errorf("expected captions_unavailable, got %s", kind)
	}
}

func TestFetchVideoUnreachable(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>{"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}}</html>`)
	})

	client := NewClient(Config{BaseURL: server.URL, Language: "en", Timeout: 5 * time.Second})

	_, err := client.Fetch(context.Background(), models.VideoRef{ID: "missing"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kind := apperrors.KindOf(err); kind != apperrors.KindVideoUnreachable {
		t.Errorf("expected video_unreachable, got %s", kind)
	}
}

func TestFetchNotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL, Language: "en", Timeout: 5 * time.Second})

	_, err := client.Fetch(context.Background(), models.VideoRef{ID: "missing"})
	if kind := apperrors.KindOf(err); kind != apperrors.KindVideoUnreachable {
		t.Errorf("expected video_unreachable, got %s", kind)
	}
}

func TestFetchUpstreamFailure(t *testing.T) {
	client := newTestClient(t, englishTrack, http.StatusInternalServerError)

	_, err := client.Fetch(context.Background(), models.VideoRef{ID: "abc"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	// Generic upstream failure must not masquerade as a caption problem
	if kind := apperrors.KindOf(err); kind != apperrors.KindInternal {
		t.Errorf("expected internal, got %s", kind)
	}
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{LanguageCode: "fr"},
		{LanguageCode: "en-GB"},
		{LanguageCode: "en"},
	}

	track, ok := pickTrack(tracks, "en")
	if !ok || track.LanguageCode != "en" {
		t.Errorf("expected exact en match, got %v %v", track.LanguageCode, ok)
	}

	track, ok = pickTrack(tracks[:2], "en")
	if !ok || track.LanguageCode != "en-GB" {
		t.Errorf("expected en-GB variant, got %v %v", track.LanguageCode, ok)
	}

	if _, ok := pickTrack(tracks[:1], "en"); ok {
		t.Error("expected no match for fr-only tracks")
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		expected string
		ok       bool
	}{
		{
			name:     "simple",
			page:     `before "captionTracks":[{"a":1}] after`,
			expected: `[{"a":1}]`,
			ok:       true,
		},
		{
			name:     "nested brackets",
			page:     `"captionTracks":[{"a":[1,2]},{"b":"]"}] tail`,
			expected: `[{"a":[1,2]},{"b":"]"}]`,
			ok:       true,
		},
		{
			name: "missing marker",
			page: `no tracks here`,
			ok:   false,
		},
		{
			name: "unterminated",
			page: `"captionTracks":[{"a":1}`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONArray(tt.page, `"captionTracks":`)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
