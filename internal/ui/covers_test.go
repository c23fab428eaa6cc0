package ui

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverLoaderCachesCovers(t *testing.T) {
	test.NewApp()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("cover-bytes"))
	}))
	t.Cleanup(ts.Close)

	l := NewCoverLoader(ts.Client(), nil)
	got := make(chan fyne.Resource, 1)
	l.Load(t.Context(), ts.URL+"/covers/1.jpg", func(res fyne.Resource) { got <- res })

	var res fyne.Resource
	select {
	case res = <-got:
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for cover")
	}
	assert.Equal(t, "1.jpg", res.Name())
	assert.Equal(t, []byte("cover-bytes"), res.Content())

	cached, ok := l.Cached(ts.URL + "/covers/1.jpg")
	require.True(t, ok)
	assert.Equal(t, res, cached)

	l.Load(t.Context(), ts.URL+"/covers/1.jpg", func(fyne.Resource) {})
	assert.Equal(t, int32(1), hits.Load())
}

func TestCoverLoaderSkipsBadCovers(t *testing.T) {
	test.NewApp()
	ts := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(ts.Close)

	l := NewCoverLoader(ts.Client(), nil)
	_, err := l.fetch(t.Context(), ts.URL+"/missing.jpg")
	assert.Error(t, err)
	_, err = l.fetch(t.Context(), "ftp://covers/1.jpg")
	assert.Error(t, err)

	_, ok := l.Cached(ts.URL + "/missing.jpg")
	assert.False(t, ok)
}
