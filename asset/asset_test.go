package asset

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestTextFromFile(t *testing.T) {
	path := writeTemp(t, "greeting.txt", []byte("hello"))
	if got := Text(context.Background(), path); got != "hello" {
		t.Errorf("Text = %q, want hello", got)
	}
}

func TestTextMissingFileSentinel(t *testing.T) {
	if got := Text(context.Background(), "/no/such/file.txt"); got != "" {
		t.Errorf("Text = %q for missing file, want empty sentinel", got)
	}
}

func TestImageFromFile(t *testing.T) {
	path := writeTemp(t, "dot.png", encodePNG(t))
	img := Image(context.Background(), path)
	if img == nil {
		t.Fatal("Image = nil for valid png")
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", b)
	}
}

func TestImageUndecodableSentinel(t *testing.T) {
	path := writeTemp(t, "not-an-image.png", []byte("plain text"))
	if img := Image(context.Background(), path); img != nil {
		t.Error("Image != nil for undecodable data, want sentinel")
	}
}

func TestJSONFromFile(t *testing.T) {
	path := writeTemp(t, "cfg.json", []byte(`{"speed": 4, "tags": ["a", "b"]}`))
	doc := JSON(context.Background(), path)
	if !doc.Exists() {
		t.Fatal("JSON result does not exist for valid document")
	}
	if got := doc.Get("speed").Int(); got != 4 {
		t.Errorf("speed = %d, want 4", got)
	}
	if got := doc.Get("tags.1").String(); got != "b" {
		t.Errorf("tags.1 = %q, want b", got)
	}
}

func TestJSONInvalidSentinel(t *testing.T) {
	path := writeTemp(t, "bad.json", []byte("{broken"))
	if doc := JSON(context.Background(), path); doc.Exists() {
		t.Error("JSON result exists for invalid document, want sentinel")
	}
}

func TestFetchOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/doc.txt":
			w.Write([]byte("remote"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	if got := Text(context.Background(), srv.URL+"/doc.txt"); got != "remote" {
		t.Errorf("Text = %q over http, want remote", got)
	}
	if got := Text(context.Background(), srv.URL+"/missing"); got != "" {
		t.Errorf("Text = %q for 404, want empty sentinel", got)
	}
}

func TestFetchHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := Bytes(ctx, srv.URL+"/slow"); got != nil {
		t.Errorf("Bytes = %v with canceled context, want nil", got)
	}
}
