package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const fixtureResponse = `{
	"items": [
		{
			"id": {"videoId": "abc123"},
			"snippet": {
				"title": "Python Tutorial for Beginners",
				"thumbnails": {"medium": {"url": "https://i.ytimg.com/vi/abc123/mq.jpg"}}
			}
		},
		{
			"id": {"videoId": ""},
			"snippet": {"title": "Missing ID"}
		},
		{
			"id": {"videoId": "def456"},
			"snippet": {"title": ""}
		}
	]
}`

func TestSearchParsesResponse(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fixtureResponse))
	}))
	defer server.Close()

	client := NewClient("test-key", 6, 5).WithEndpoint(server.URL)

	videos, err := client.Search(context.Background(), "python tutorial")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if gotQuery != "python tutorial" {
		t.Errorf("query param = %q, want %q", gotQuery, "python tutorial")
	}

	// Items missing a video id or title are dropped.
	if len(videos) != 1 {
		t.Fatalf("got %d videos, want 1", len(videos))
	}

	v := videos[0]
	if v.Title != "Python Tutorial for Beginners" {
		t.Errorf("Title = %q", v.Title)
	}
	if v.URL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("URL = %q", v.URL)
	}
	if v.Thumbnail != "https://i.ytimg.com/vi/abc123/mq.jpg" {
		t.Errorf("Thumbnail = %q", v.Thumbnail)
	}
	if v.Platform != "YouTube" {
		t.Errorf("Platform = %q", v.Platform)
	}
	if v.Level != "Beginner" {
		t.Errorf("Level = %q, want Beginner", v.Level)
	}
}

func TestSearchNon200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("bad-key", 6, 5).WithEndpoint(server.URL)

	if _, err := client.Search(context.Background(), "python"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestSearchMalformedBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient("test-key", 6, 5).WithEndpoint(server.URL)

	if _, err := client.Search(context.Background(), "python"); err == nil {
		t.Fatal("expected error on malformed body")
	}
}
