package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
)

func TestSend_EmptyEndpoint(t *testing.T) {
	s := NewSender(nil, zap.NewNop())
	err := s.Send(context.Background(), "", "hello")
	if !errors.Is(err, domain.ErrMissingConfig) {
		t.Fatalf("expected ErrMissingConfig, got %v", err)
	}
}

func TestSend_EmptyText(t *testing.T) {
	s := NewSender(nil, zap.NewNop())
	err := s.Send(context.Background(), "http://hooks.example.com/x", "")
	if !errors.Is(err, domain.ErrMissingConfig) {
		t.Fatalf("expected ErrMissingConfig, got %v", err)
	}
}

func TestSend_PostsTextPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
	}))
	defer srv.Close()

	s := NewSender(srv.Client(), zap.NewNop())
	if err := s.Send(context.Background(), srv.URL, "sync done"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["text"] != "sync done" {
		t.Errorf("expected text %q, got %q", "sync done", got["text"])
	}
}

func TestSend_UpstreamErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
		w.Write([]byte("channel_is_archived"))
	}))
	defer srv.Close()

	s := NewSender(srv.Client(), zap.NewNop())
	err := s.Send(context.Background(), srv.URL, "sync done")

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusGone || upstream.Body != "channel_is_archived" {
		t.Errorf("unexpected upstream error: %+v", upstream)
	}
}
