package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"delit-api/internal/apperror"
	"delit-api/internal/config"

	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/require"
)

func newTestGitHubStore(t *testing.T, handler http.Handler) *GitHubStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := github.NewClient(nil).WithAuthToken("test-token")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	store := NewGitHubStore(client, config.GitHubConfig{
		Owner:  "delit",
		Repo:   "assets",
		Folder: "samples",
		Branch: "main",
	})
	store.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return store
}

func TestGitHubUpload(t *testing.T) {
	store := newTestGitHubStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/repos/delit/assets/contents/samples/cover.png", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Add cover.png at 2024-05-01 10:00:00", body["message"])
		require.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), body["content"])
		require.Equal(t, "main", body["branch"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"content":{"html_url":"https://github.com/delit/assets/blob/main/samples/cover.png","sha":"abc123"}}`))
	}))

	link, err := store.Upload(context.Background(), []byte("png-bytes"), "cover.png")
	require.NoError(t, err)
	require.Equal(t, "https://github.com/delit/assets/blob/main/samples/cover.png", link)
}

func TestGitHubUpload_Rejected(t *testing.T) {
	store := newTestGitHubStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"sha wasn't supplied"}`))
	}))

	_, err := store.Upload(context.Background(), []byte("x"), "cover.png")
	require.True(t, apperror.Is(err, apperror.KindUpstream), "got %v", err)
}

func TestGitHubDelete(t *testing.T) {
	var deleted bool
	store := newTestGitHubStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/delit/assets/contents/samples/cover.png", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			require.Equal(t, "main", r.URL.Query().Get("ref"))
			_, _ = w.Write([]byte(`{"type":"file","path":"samples/cover.png","sha":"abc123"}`))
		case http.MethodDelete:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "abc123", body["sha"])
			deleted = true
			_, _ = w.Write([]byte(`{"commit":{"sha":"def456"}}`))
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))

	err := store.Delete(context.Background(), "https://github.com/delit/assets/blob/main/samples/cover.png")
	require.NoError(t, err)
	require.True(t, deleted)
}

func TestGitHubDelete_BadLink(t *testing.T) {
	store := newTestGitHubStore(t, http.NotFoundHandler())

	err := store.Delete(context.Background(), "https://example.com/cover.png")
	require.True(t, apperror.Is(err, apperror.KindNotFound), "got %v", err)
}

func TestGitHubDelete_Refused(t *testing.T) {
	store := newTestGitHubStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"type":"file","path":"samples/cover.png","sha":"abc123"}`))
			return
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"conflict"}`))
	}))

	err := store.Delete(context.Background(), "https://github.com/delit/assets/blob/main/samples/cover.png")
	require.True(t, apperror.Is(err, apperror.KindConflict), "got %v", err)
}

func TestObjectName(t *testing.T) {
	require.Equal(t, "abc_cover.png", ObjectName("abc", "cover.png"))
	require.Equal(t, "abc_passwd", ObjectName("abc", "../../etc/passwd"))
	require.Equal(t, "abc_my_file.pdf", ObjectName("abc", `C:\Users\me\my file.pdf`))
	require.Equal(t, "abc_file", ObjectName("abc", ""))
}
