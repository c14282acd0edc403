// Package asset loads images, text, and JSON documents from local
// paths or http(s) URLs. Loads never fail with an error: a broken
// reference yields the type's sentinel (nil image, empty string,
// non-existent JSON result) and a status warning, so aggregate loads
// proceed past individual failures.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lixenwraith/runic/status"
)

const fetchTimeout = 10 * time.Second

var httpClient = &http.Client{Timeout: fetchTimeout}

// Bytes fetches the raw content of a path or URL; nil on failure
func Bytes(ctx context.Context, ref string) []byte {
	data, err := fetch(ctx, ref)
	if err != nil {
		warn(ref, err)
		return nil
	}
	return data
}

// Text fetches a text document; empty string on failure
func Text(ctx context.Context, ref string) string {
	return string(Bytes(ctx, ref))
}

// Image fetches and decodes a PNG, JPEG, or GIF; nil on failure
func Image(ctx context.Context, ref string) image.Image {
	data := Bytes(ctx, ref)
	if data == nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		warn(ref, err)
		return nil
	}
	return img
}

// JSON fetches and parses a JSON document. Failures return a result
// for which Exists() is false; callers navigate with gjson paths.
func JSON(ctx context.Context, ref string) gjson.Result {
	data := Bytes(ctx, ref)
	if data == nil {
		return gjson.Result{}
	}
	if !gjson.ValidBytes(data) {
		warn(ref, fmt.Errorf("invalid json"))
		return gjson.Result{}
	}
	return gjson.ParseBytes(data)
}

func fetch(ctx context.Context, ref string) ([]byte, error) {
	if isURL(ref) {
		return fetchHTTP(ctx, ref)
	}
	return os.ReadFile(ref)
}

func fetchHTTP(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func warn(ref string, err error) {
	status.TextGauge(status.KeyLastWarning).Store(fmt.Sprintf("asset: %s: %v", ref, err))
}
