package middlewares_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/5w1tchy/pwstrength/internal/api/middlewares"
)

func TestCompression_Gzip(t *testing.T) {
	wrapped := mw.Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success"}`))
	}))

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("Expected gzip encoding")
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"status":"success"}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestCompression_Plain(t *testing.T) {
	wrapped := mw.Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain"))
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Header().Get("Content-Encoding") != "" {
		t.Fatal("Expected no encoding")
	}
	if rec.Body.String() != "plain" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}
