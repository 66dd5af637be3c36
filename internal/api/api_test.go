package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starford/ehwaz/internal/journal"
	"github.com/starford/ehwaz/internal/testutil"
)

func testServer(t *testing.T) (*httptest.Server, journal.Recorder) {
	t.Helper()
	db := testutil.TestJournal(t)
	srv := httptest.NewServer(NewRouter(db, nil, func() int { return 3 }))
	t.Cleanup(srv.Close)
	return srv, db
}

func getJSON(t *testing.T, url string, target any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func TestStatus(t *testing.T) {
	srv, db := testServer(t)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := db.RecordExport(journal.ExportRow{Path: "a.md", Slug: "a.md", ExportedAt: at}); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Stats      journal.Stats `json:"stats"`
		SSEClients int           `json:"sse_clients"`
	}
	getJSON(t, srv.URL+"/status", &got)

	if got.Stats.Posts != 1 {
		t.Errorf("posts = %d, want 1", got.Stats.Posts)
	}
	if got.SSEClients != 3 {
		t.Errorf("sse_clients = %d, want 3", got.SSEClients)
	}
}

func TestExports(t *testing.T) {
	srv, db := testServer(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, p := range []string{"a.md", "b.md", "c.md"} {
		err := db.RecordExport(journal.ExportRow{Path: p, Slug: p, ExportedAt: base.Add(time.Duration(i) * time.Minute)})
		if err != nil {
			t.Fatal(err)
		}
	}

	var got struct {
		Exports []journal.ExportRow `json:"exports"`
		Count   int                 `json:"count"`
	}
	getJSON(t, srv.URL+"/exports?limit=2", &got)

	if got.Count != 2 || len(got.Exports) != 2 {
		t.Fatalf("count = %d, exports = %v", got.Count, got.Exports)
	}
	if got.Exports[0].Path != "c.md" {
		t.Errorf("newest first: got %s", got.Exports[0].Path)
	}
}

func TestExports_Empty(t *testing.T) {
	srv, _ := testServer(t)
	var got struct {
		Exports []journal.ExportRow `json:"exports"`
		Count   int                 `json:"count"`
	}
	getJSON(t, srv.URL+"/exports", &got)
	if got.Count != 0 || got.Exports == nil {
		t.Errorf("empty journal: count = %d, exports = %v", got.Count, got.Exports)
	}
}
