package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlens/wanderlens/core"
)

const sampleTimedText = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="3.2">Today we are in Lisbon</text>
  <text start="3.2" dur="4.1">eating pasteis at Manteigaria &amp; loving it</text>
  <text start="7.3" dur="2.5"></text>
  <text start="9.8" dur="5.0">see you tomorrow</text>
</transcript>`

func newTestYouTubeFetcher(handler http.HandlerFunc) (*YouTubeFetcher, *httptest.Server) {
	srv := httptest.NewServer(handler)
	f := NewYouTubeFetcher()
	f.endpoint = srv.URL
	f.client = srv.Client()
	return f, srv
}

func TestYouTubeFetcher(t *testing.T) {
	t.Run("joins caption segments into one transcript", func(t *testing.T) {
		var gotQuery string
		f, srv := newTestYouTubeFetcher(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(sampleTimedText))
		})
		defer srv.Close()

		video, err := f.Fetch(context.Background(), "dQw4w9WgXcQ")
		require.NoError(t, err)
		assert.Equal(t, "dQw4w9WgXcQ", video.ID)
		assert.Equal(t, "Video dQw4w9WgXcQ", video.Title)
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", video.URL)
		assert.Equal(t,
			"Today we are in Lisbon eating pasteis at Manteigaria & loving it see you tomorrow",
			video.Transcript)
		assert.Equal(t, 14, video.DurationSeconds)
		assert.Contains(t, gotQuery, "v=dQw4w9WgXcQ")
		assert.Contains(t, gotQuery, "lang=en")
	})

	t.Run("non-200 status is a transient failure", func(t *testing.T) {
		f, srv := newTestYouTubeFetcher(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		defer srv.Close()

		_, err := f.Fetch(context.Background(), "vid1")
		assert.ErrorIs(t, err, core.ErrExternalUnavailable)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("empty caption track is a transient failure", func(t *testing.T) {
		f, srv := newTestYouTubeFetcher(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<transcript></transcript>`))
		})
		defer srv.Close()

		_, err := f.Fetch(context.Background(), "vid1")
		assert.ErrorIs(t, err, core.ErrExternalUnavailable)
		assert.Contains(t, err.Error(), "no transcript available")
	})

	t.Run("malformed xml is a transient failure", func(t *testing.T) {
		f, srv := newTestYouTubeFetcher(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<transcript><text`))
		})
		defer srv.Close()

		_, err := f.Fetch(context.Background(), "vid1")
		assert.ErrorIs(t, err, core.ErrExternalUnavailable)
	})
}
