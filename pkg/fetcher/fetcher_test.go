package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetch_ParsesDocumentAndMetadata(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><body><h1 class="title">大</h1></body></html>`))
	}))
	defer srv.Close()

	f := New("test-agent/1.0", 5*time.Second)
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	require.Equal(t, "test-agent/1.0", gotUA)
	require.Equal(t, http.StatusOK, page.StatusCode)
	require.Equal(t, "大", page.Doc.Find("h1.title").Text())
	require.NotZero(t, page.Size)
	require.Len(t, page.ContentHash, 64)
}

func TestFetch_NonSuccessStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New("test-agent/1.0", 5*time.Second)
	_, err := f.Fetch(context.Background(), srv.URL+"/missing")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, http.StatusNotFound, fe.StatusCode)
	require.Contains(t, fe.Error(), "status code 404")
}

func TestFetch_TransportErrorIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := New("test-agent/1.0", 2*time.Second)
	_, err := f.Fetch(context.Background(), url)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Error(t, fe.Err)
}

func TestFetch_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New("test-agent/1.0", 5*time.Second)
	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
}
