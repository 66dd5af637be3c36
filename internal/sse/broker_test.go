package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishExportEvent(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishExportEvent("post.exported", "Note.md", "note.md")

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: post.exported") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"path":"Note.md"`) || !strings.Contains(s, `"slug":"note.md"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.PublishExportEvent("asset.copied", "pic.png", "pic.png")
	time.Sleep(50 * time.Millisecond)

	// Cancel context to disconnect.
	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: asset.copied") {
		t.Errorf("handler output missing event: %q", body)
	}

	// Client should be cleaned up.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill buffer (capacity 64) and then some; must not block.
	for i := 0; i < 70; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	// Safe no-ops after close.
	b.Publish(Event{Type: "post.exported", Data: map[string]string{"path": "x.md"}})
	b.PublishExportEvent("post.exported", "x.md", "x.md")
}
