package baidu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
)

const testUA = "Mozilla/5.0 test"

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/s", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "比亚迪 财报", q.Get("wd"))
		assert.Equal(t, "8", q.Get("rn"))
		assert.Equal(t, "utf-8", q.Get("ie"))
		assert.Equal(t, "3", q.Get("cl"))
		assert.Equal(t, testUA, r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept-Language"), "zh-CN")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(primaryPage))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/s", testUA, time.Second)
	require.NoError(t, err)

	resp, err := c.Search(context.Background(), &search.Request{Query: "比亚迪 财报"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)
	assert.Equal(t, srv.URL+"/link?url=abc", resp.Results[0].Link)
}

func TestClient_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/s", testUA, time.Second)
	require.NoError(t, err)

	_, err = c.Search(context.Background(), &search.Request{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/s", testUA, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Search(context.Background(), &search.Request{Query: "x"})
	assert.Error(t, err)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient("not a url", testUA, time.Second)
	assert.Error(t, err)
}
