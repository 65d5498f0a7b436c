package sarvam

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/patrickprogramme/autosub/internal/config"
)

func writeFakeSegment(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("RIFF fake audio payload"), 0o644); err != nil {
		t.Fatalf("write fake segment: %v", err)
	}
	return path
}

func newTestClient(url string) *Client {
	return New(config.Sarvam{
		URL:      url,
		APIKey:   "test-key",
		Model:    "saaras:v1",
		TimeoutS: 5,
	})
}

func TestTranscribe_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s; want POST", r.Method)
		}
		if got := r.Header.Get("api-subscription-key"); got != "test-key" {
			t.Errorf("api-subscription-key = %q; want %q", got, "test-key")
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if got := r.FormValue("model"); got != "saaras:v1" {
			t.Errorf("model = %q; want saaras:v1", got)
		}
		if got := r.FormValue("prompt"); got != "hint" {
			t.Errorf("prompt = %q; want hint", got)
		}

		file, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		if hdr.Filename != "seg.wav" {
			t.Errorf("filename = %q; want seg.wav", hdr.Filename)
		}
		if ct := hdr.Header.Get("Content-Type"); ct != "audio/wav" {
			t.Errorf("file content-type = %q; want audio/wav", ct)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transcript":"hello world","language_code":"hi-IN"}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Transcribe(context.Background(), writeFakeSegment(t, "seg.wav"), "hint")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "hello world" {
		t.Errorf("transcript = %q; want %q", got, "hello world")
	}
}

func TestTranscribe_EmptyPromptOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if _, ok := r.MultipartForm.Value["prompt"]; ok {
			t.Error("prompt field present; want omitted")
		}
		w.Write([]byte(`{"transcript":"ok"}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Transcribe(context.Background(), writeFakeSegment(t, "seg.wav"), ""); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
}

func TestTranscribe_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Transcribe(context.Background(), writeFakeSegment(t, "seg.wav"), "")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v; want *HTTPError", err)
	}
	if httpErr.Status != http.StatusForbidden {
		t.Errorf("status = %d; want 403", httpErr.Status)
	}
	if httpErr.Body != "invalid api key" {
		t.Errorf("body = %q; want %q", httpErr.Body, "invalid api key")
	}
}

func TestTranscribe_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "<html>oops</html>"},
		{"missing transcript", `{"language_code":"hi-IN"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Transcribe(context.Background(), writeFakeSegment(t, "seg.wav"), "")
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("err = %v; want *MalformedResponseError", err)
			}
		})
	}
}

func TestTranscribe_UnsupportedFormatNoNetworkCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Transcribe(context.Background(), writeFakeSegment(t, "seg.ogg"), "")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v; want ErrUnsupportedFormat", err)
	}
	if calls != 0 {
		t.Errorf("API called %d times for unsupported format; want 0", calls)
	}
}

func TestTranscribe_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // serveur injoignable

	_, err := newTestClient(srv.URL).Transcribe(context.Background(), writeFakeSegment(t, "seg.wav"), "")
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("err = %v; want *TransportError", err)
	}
}

func TestMimeForFile(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"chunk_000.wav", "audio/wav", false},
		{"CHUNK.WAV", "audio/wav", false},
		{"clip.mp3", "audio/mpeg", false},
		{"clip.wave", "audio/wave", false},
		{"clip.ogg", "", true},
		{"noext", "", true},
	}

	for _, tc := range tests {
		got, err := mimeForFile(tc.path)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("mimeForFile(%q): err = %v; want ErrUnsupportedFormat", tc.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("mimeForFile(%q): %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("mimeForFile(%q) = %q; want %q", tc.path, got, tc.want)
		}
	}
}
