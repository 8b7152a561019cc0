// internal/media/media_test.go
//
// Store-client tests against httptest, plus resize behaviour on a
// generated image.

package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPut(t *testing.T) {
	var gotName, gotAuth string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotName = r.Header.Get("X-File-Name")
		gotAuth = r.Header.Get("Authorization")
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		gotBody = buf.Bytes()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"url":"https://media.example/x.jpg","size":9}`))
	}))
	defer srv.Close()

	s := New(srv.URL, "media-key", 1<<20)
	up, err := s.Put(context.Background(), "x.jpg", []byte("jpeg-data"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if gotName != "x.jpg" || gotAuth != "media-key" || string(gotBody) != "jpeg-data" {
		t.Fatalf("request: name=%q auth=%q body=%q", gotName, gotAuth, gotBody)
	}
	if up.URL != "https://media.example/x.jpg" || up.Size != 9 {
		t.Fatalf("upload = %+v", up)
	}
}

func TestPut_OversizeFailsLocally(t *testing.T) {
	s := New("http://127.0.0.1:1", "k", 4) // would fail if dialed
	if _, err := s.Put(context.Background(), "big.jpg", []byte("12345")); err == nil {
		t.Fatal("expected a local size error")
	}
}

func TestPut_EmptyURLRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"","size":0}`))
	}))
	defer srv.Close()

	s := New(srv.URL, "k", 1<<20)
	if _, err := s.Put(context.Background(), "x.jpg", []byte("d")); err == nil {
		t.Fatal("expected an error for an empty URL")
	}
}

// testJPEG renders a gradient, which re-compresses predictably.
func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), uint8((x + y) % 256), 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestFitUnder_Passthrough(t *testing.T) {
	data := []byte("small")
	out, err := FitUnder(data, 100)
	if err != nil {
		t.Fatalf("FitUnder: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("small payload must pass through unchanged")
	}
}

func TestFitUnder_Shrinks(t *testing.T) {
	data := testJPEG(t, 800, 600)
	limit := int64(len(data)) / 4

	out, err := FitUnder(data, limit)
	if err != nil {
		t.Fatalf("FitUnder: %v", err)
	}
	if int64(len(out)) > limit {
		t.Fatalf("resized to %d bytes, limit %d", len(out), limit)
	}

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode resized: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("format = %q, want jpeg", format)
	}
	if img.Bounds().Dx() >= 800 {
		t.Fatal("image was not scaled down")
	}
}

func TestFitUnder_Garbage(t *testing.T) {
	if _, err := FitUnder(bytes.Repeat([]byte{0xde, 0xad}, 4096), 16); err == nil {
		t.Fatal("expected a decode error for non-image data")
	}
}
