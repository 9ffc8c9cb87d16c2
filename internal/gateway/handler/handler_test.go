package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"docrelay/internal/gateway/handler"
	"docrelay/internal/gateway/server"
	"docrelay/internal/gateway/service/chat"
	"docrelay/internal/gitlab"
	"docrelay/internal/llmtool"
	"docrelay/internal/session"
)

type fakeRepo struct {
	connectErr    error
	disconnectErr error
	listing       *gitlab.TreeListing
	listErr       error
	file          *gitlab.RawFile
	fileErr       error
	gotFilePath   string
}

func (f *fakeRepo) Connect(repoURL, token string) (session.Record, error) {
	if f.connectErr != nil {
		return session.Record{}, f.connectErr
	}
	return session.Record{RepoURL: repoURL, Token: token}, nil
}

func (f *fakeRepo) Disconnect() error { return f.disconnectErr }

func (f *fakeRepo) ListTree(_ context.Context, path, ref string, recursive bool) (*gitlab.TreeListing, error) {
	return f.listing, f.listErr
}

func (f *fakeRepo) GetFile(_ context.Context, filePath, ref string, lfs bool) (*gitlab.RawFile, error) {
	f.gotFilePath = filePath
	return f.file, f.fileErr
}

type fakeChat struct {
	res *llmtool.TaskResult
	err error
}

func (f *fakeChat) Process(_ context.Context, task llmtool.Task) (*llmtool.TaskResult, error) {
	return f.res, f.err
}

func newServer(t *testing.T, repo handler.RepoService, chatSvc handler.ChatService, production bool) *httptest.Server {
	t.Helper()
	h := handler.New(repo, chatSvc, production)
	srv := httptest.NewServer(server.NewMux(h, "http://localhost:5173"))
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	srv := newServer(t, &fakeRepo{}, &fakeChat{}, false)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "docrelay", body["service"])
}

func TestConnectSuccess(t *testing.T) {
	srv := newServer(t, &fakeRepo{}, &fakeChat{}, false)
	resp, err := http.Post(srv.URL+"/api/gitlab/connect", "application/json",
		strings.NewReader(`{"repoUrl":"https://gitlab.example.com/g/p","accessToken":"token1234567"}`))
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	require.Equal(t, true, data["connected"])
	require.Equal(t, "https://gitlab.example.com/g/p", data["repoUrl"])
	require.NotEmpty(t, data["timestamp"])
}

func TestConnectValidationFailure(t *testing.T) {
	repo := &fakeRepo{connectErr: fmt.Errorf("%w: access token must be at least 10 characters", session.ErrValidation)}
	srv := newServer(t, repo, &fakeChat{}, false)
	resp, err := http.Post(srv.URL+"/api/gitlab/connect", "application/json",
		strings.NewReader(`{"repoUrl":"https://gitlab.example.com/g/p","accessToken":"short"}`))
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, false, body["success"])
}

func TestDisconnectNotConnected(t *testing.T) {
	repo := &fakeRepo{disconnectErr: session.ErrNotConnected}
	srv := newServer(t, repo, &fakeChat{}, false)
	resp, err := http.Post(srv.URL+"/api/gitlab/disconnect", "application/json", nil)
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "not connected to a repository", body["message"])
}

func TestListFilesPassesUpstreamNotFound(t *testing.T) {
	repo := &fakeRepo{listErr: &gitlab.APIError{Kind: gitlab.KindNotFound, Status: 404, Message: "repository or branch not found"}}
	srv := newServer(t, repo, &fakeChat{}, false)
	resp, err := http.Get(srv.URL + "/api/gitlab/files?ref=main")
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "repository or branch not found", body["message"])
}

func TestListFilesSuccess(t *testing.T) {
	repo := &fakeRepo{listing: &gitlab.TreeListing{
		RepoURL:   "https://gitlab.example.com/g/p",
		ProjectID: "g%2Fp",
		Ref:       "main",
		Files: []gitlab.TreeEntry{
			{ID: "1", Name: "src", Path: "src", Type: "folder"},
		},
	}}
	srv := newServer(t, repo, &fakeChat{}, false)
	resp, err := http.Get(srv.URL + "/api/gitlab/files?ref=main")
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	require.Equal(t, "g%2Fp", data["projectId"])
	require.Len(t, data["files"], 1)
}

func TestGetFileWildcardPath(t *testing.T) {
	repo := &fakeRepo{file: &gitlab.RawFile{FilePath: "docs/home.md", Ref: "main", Content: "# hi", Size: 4}}
	srv := newServer(t, repo, &fakeChat{}, false)
	resp, err := http.Get(srv.URL + "/api/gitlab/files/docs/home.md?ref=main")
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "docs/home.md", repo.gotFilePath)
	data := body["data"].(map[string]any)
	require.Equal(t, "# hi", data["content"])
	require.Equal(t, float64(4), data["size"])
}

func TestGetFileDecodesPathExactlyOnce(t *testing.T) {
	repo := &fakeRepo{file: &gitlab.RawFile{FilePath: "notes%20v2.md", Ref: "main", Content: "x", Size: 1}}
	srv := newServer(t, repo, &fakeChat{}, false)

	// A file literally named "notes%20v2.md" arrives with its percent sign
	// escaped as %25; the router decodes that once and the handler must not
	// decode again.
	resp, err := http.Get(srv.URL + "/api/gitlab/files/notes%2520v2.md?ref=main")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "notes%20v2.md", repo.gotFilePath)
}

func TestChatValidation(t *testing.T) {
	srv := newServer(t, &fakeRepo{}, &fakeChat{}, false)

	resp, err := http.Post(srv.URL+"/api/ai/chat", "application/json",
		strings.NewReader(`{"action":"edit"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "message is required", decode(t, resp)["message"])

	resp, err = http.Post(srv.URL+"/api/ai/chat", "application/json",
		strings.NewReader(`{"message":"hi","action":"explode"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid action", decode(t, resp)["message"])
}

func TestChatNoFilesSelected(t *testing.T) {
	srv := newServer(t, &fakeRepo{}, &fakeChat{err: chat.ErrNoFilesSelected}, false)
	resp, err := http.Post(srv.URL+"/api/ai/chat", "application/json",
		strings.NewReader(`{"message":"docs please","action":"process_with_files","selectedFiles":[]}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "no files selected", decode(t, resp)["message"])
}

func TestChatSuccessEnvelope(t *testing.T) {
	res := &llmtool.TaskResult{Explanation: "done", Content: "# doc", Action: llmtool.ActionEdit}
	srv := newServer(t, &fakeRepo{}, &fakeChat{res: res}, false)
	resp, err := http.Post(srv.URL+"/api/ai/chat", "application/json",
		strings.NewReader(`{"message":"edit this","action":"edit"}`))
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	require.Equal(t, "done", data["explanation"])
	require.Equal(t, "# doc", data["content"])
}

func TestChatProcessFailureDetailSuppressedInProduction(t *testing.T) {
	procErr := fmt.Errorf("%w: %v", chat.ErrProcessFailed, errors.New("api key missing"))

	srv := newServer(t, &fakeRepo{}, &fakeChat{err: procErr}, false)
	resp, err := http.Post(srv.URL+"/api/ai/chat", "application/json",
		strings.NewReader(`{"message":"hi","action":"chat"}`))
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, body["detail"], "api key missing")

	srv = newServer(t, &fakeRepo{}, &fakeChat{err: procErr}, true)
	resp, err = http.Post(srv.URL+"/api/ai/chat", "application/json",
		strings.NewReader(`{"message":"hi","action":"chat"}`))
	require.NoError(t, err)
	body = decode(t, resp)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.NotContains(t, body, "detail")
}

func TestUnmatchedRoute(t *testing.T) {
	srv := newServer(t, &fakeRepo{}, &fakeChat{}, false)
	resp, err := http.Get(srv.URL + "/api/nope")
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Not Found", body["error"])
}

func TestRequestIDHeader(t *testing.T) {
	srv := newServer(t, &fakeRepo{}, &fakeChat{}, false)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t, &fakeRepo{}, &fakeChat{}, false)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/ai/chat", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
