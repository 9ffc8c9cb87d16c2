// Package gitlab issues authenticated calls against the GitLab REST API
// using the credentials held by the session.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"docrelay/internal/session"
)

const (
	listTimeout = 10 * time.Second
	fileTimeout = 15 * time.Second

	rawCacheEntries = 128
	rawCacheTTL     = 5 * time.Minute
)

// TreeEntry mirrors one GitLab repository tree item, with blob/tree mapped
// to the frontend's file/folder vocabulary.
type TreeEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	Size int64  `json:"size,omitempty"`
	Mode string `json:"mode,omitempty"`
}

// TreeListing echoes the resolved request parameters alongside the entries.
type TreeListing struct {
	RepoURL   string      `json:"repoUrl"`
	ProjectID string      `json:"projectId"`
	Ref       string      `json:"ref"`
	Path      string      `json:"path"`
	Files     []TreeEntry `json:"files"`
}

// RawFile is one fetched file body.
type RawFile struct {
	FilePath string `json:"filePath"`
	Ref      string `json:"ref"`
	Content  string `json:"content"`
	Size     int    `json:"size"`
}

// Client is the source-repo gateway. Every call reads the session record
// first and fails with session.ErrNotConnected when none is present.
type Client struct {
	sess     *session.Session
	listHTTP *http.Client
	fileHTTP *http.Client
	rawCache *expirable.LRU[string, RawFile]

	// baseOverride replaces the scheme://host derived from the stored repo
	// URL; tests point it at an httptest server.
	baseOverride string
}

func New(sess *session.Session) *Client {
	return &Client{
		sess:     sess,
		listHTTP: &http.Client{Timeout: listTimeout},
		fileHTTP: &http.Client{Timeout: fileTimeout},
		rawCache: expirable.NewLRU[string, RawFile](rawCacheEntries, nil, rawCacheTTL),
	}
}

// ResetCache drops cached raw files; called when credentials change.
func (c *Client) ResetCache() {
	c.rawCache.Purge()
}

// target is a one-shot snapshot of the session record resolved into request
// parameters; a concurrent disconnect cannot change it mid-call.
type target struct {
	apiBase   string
	projectID string
	repoURL   string
	token     string
}

func (c *Client) resolveTarget() (target, error) {
	rec, ok := c.sess.Current()
	if !ok {
		return target{}, session.ErrNotConnected
	}
	u, err := url.Parse(rec.RepoURL)
	if err != nil || u.Host == "" {
		return target{}, fmt.Errorf("%w: stored repository URL is not parseable", session.ErrValidation)
	}
	project := strings.TrimPrefix(u.Path, "/")
	project = strings.TrimSuffix(project, ".git")
	if project == "" {
		return target{}, fmt.Errorf("%w: repository URL has no project path", session.ErrValidation)
	}
	base := u.Scheme + "://" + u.Host
	if c.baseOverride != "" {
		base = c.baseOverride
	}
	return target{
		apiBase:   base + "/api/v4",
		projectID: url.PathEscape(project),
		repoURL:   rec.RepoURL,
		token:     rec.Token,
	}, nil
}

// ListTree lists one level (or the full subtree when recursive) of the
// repository at path on ref.
func (c *Client) ListTree(ctx context.Context, path, ref string, recursive bool) (*TreeListing, error) {
	tgt, err := c.resolveTarget()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	if path != "" {
		q.Set("path", path)
	}
	if ref != "" {
		q.Set("ref", ref)
	}
	if recursive {
		q.Set("recursive", "true")
	}
	q.Set("per_page", "100")

	endpoint := fmt.Sprintf("%s/projects/%s/repository/tree?%s", tgt.apiBase, tgt.projectID, q.Encode())
	body, apiErr := c.do(ctx, c.listHTTP, endpoint, tgt.token, "repository or branch not found")
	if apiErr != nil {
		return nil, apiErr
	}

	var items []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Path string `json:"path"`
		Type string `json:"type"`
		Mode string `json:"mode"`
	}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &APIError{Kind: KindInternal, Message: "unexpected tree response from GitLab"}
	}

	listing := &TreeListing{
		RepoURL:   tgt.repoURL,
		ProjectID: tgt.projectID,
		Ref:       ref,
		Path:      path,
		Files:     make([]TreeEntry, 0, len(items)),
	}
	for _, it := range items {
		kind := "file"
		if it.Type == "tree" {
			kind = "folder"
		}
		listing.Files = append(listing.Files, TreeEntry{
			ID:   it.ID,
			Name: it.Name,
			Path: it.Path,
			Type: kind,
			Mode: it.Mode,
		})
	}
	return listing, nil
}

// RawFile fetches one file body on ref. Responses are served from the
// expirable LRU when the same projectID/ref/path was fetched recently.
func (c *Client) RawFile(ctx context.Context, filePath, ref string, lfs bool) (*RawFile, error) {
	tgt, err := c.resolveTarget()
	if err != nil {
		return nil, err
	}

	cacheKey := tgt.projectID + "|" + ref + "|" + filePath
	if !lfs {
		if cached, ok := c.rawCache.Get(cacheKey); ok {
			return &cached, nil
		}
	}

	q := url.Values{}
	if ref != "" {
		q.Set("ref", ref)
	}
	if lfs {
		q.Set("lfs", "true")
	}
	endpoint := fmt.Sprintf("%s/projects/%s/repository/files/%s/raw?%s",
		tgt.apiBase, tgt.projectID, url.PathEscape(filePath), q.Encode())
	body, apiErr := c.do(ctx, c.fileHTTP, endpoint, tgt.token, "file not found")
	if apiErr != nil {
		return nil, apiErr
	}

	out := RawFile{FilePath: filePath, Ref: ref, Content: string(body), Size: len(body)}
	if !lfs {
		c.rawCache.Add(cacheKey, out)
	}
	return &out, nil
}

// Probe issues one project lookup purely for connect-time diagnostics.
func (c *Client) Probe(ctx context.Context) error {
	tgt, err := c.resolveTarget()
	if err != nil {
		return err
	}
	_, apiErr := c.do(ctx, c.listHTTP, tgt.apiBase+"/projects/"+tgt.projectID, tgt.token, "repository not found")
	if apiErr != nil {
		return apiErr
	}
	return nil
}

// do performs one authenticated GET and maps the outcome. A single attempt,
// no retries.
func (c *Client) do(ctx context.Context, client *http.Client, endpoint, token, notFoundMsg string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Kind: KindInternal, Message: err.Error()}
	}
	req.Header.Set("PRIVATE-TOKEN", token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindInternal, Message: "gitlab request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindInternal, Message: "gitlab response read failed: " + err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		const max = 2048
		msg := string(body)
		if len(msg) > max {
			msg = msg[:max]
		}
		return nil, classify(resp.StatusCode, msg, notFoundMsg)
	}
	return body, nil
}
