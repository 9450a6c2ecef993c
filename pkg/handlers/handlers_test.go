package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/brandkit/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusAccepted, map[string]string{"job_id": "abc"})

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["job_id"] != "abc" {
		t.Errorf("body = %v", body)
	}
}

func TestRespondError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		rec := httptest.NewRecorder()
		handlers.RespondError(rec, logger, status, errors.New("boom"))

		if rec.Code != status {
			t.Errorf("status = %d, want %d", rec.Code, status)
		}

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["error"] != "boom" {
			t.Errorf("error = %q, want boom", body["error"])
		}
	}
}

type payload struct {
	BusinessName string `json:"business_name"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		maxBytes int64
		want     string
		wantErr  bool
	}{
		{name: "valid", body: `{"business_name":"Acme"}`, maxBytes: 1024, want: "Acme"},
		{name: "unlimited", body: `{"business_name":"Acme"}`, maxBytes: 0, want: "Acme"},
		{name: "exactly at limit", body: `{"business_name":"A"}`, maxBytes: int64(len(`{"business_name":"A"}`)), want: "A"},
		{name: "over limit", body: `{"business_name":"Acme Corporation"}`, maxBytes: 10, wantErr: true},
		{name: "malformed", body: `{"business_name":`, maxBytes: 1024, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			got, err := handlers.DecodeJSON[payload](req, tt.maxBytes)
			if tt.wantErr {
				if !errors.Is(err, handlers.ErrInvalidBody) {
					t.Errorf("DecodeJSON() error = %v, want ErrInvalidBody", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeJSON() error = %v", err)
			}
			if got.BusinessName != tt.want {
				t.Errorf("BusinessName = %q, want %q", got.BusinessName, tt.want)
			}
		})
	}
}
