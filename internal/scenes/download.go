package scenes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// DefaultProduct is the image product downloaded when none is given.
const DefaultProduct = "visual"

// DownloadRequest names the scenes to fetch and where to put them.
type DownloadRequest struct {
	IDs       []string
	SceneType string // defaults to DefaultSceneType
	Product   string // defaults to DefaultProduct
	Dest      string // destination directory, defaults to "."
}

// Download fetches full scene imagery for each requested id, writing
// <dest>/<id>.tif. Scenes are fetched concurrently up to the client's
// worker count; the first failure is returned after all in-flight
// downloads finish.
func (c *Client) Download(ctx context.Context, req DownloadRequest) error {
	if c.apiKey == "" {
		return &InvalidAPIKey{Message: "No API key provided"}
	}
	if req.SceneType == "" {
		req.SceneType = DefaultSceneType
	}
	if req.Product == "" {
		req.Product = DefaultProduct
	}
	if req.Dest == "" {
		req.Dest = "."
	}

	if err := os.MkdirAll(req.Dest, 0755); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	workers := c.workers
	if workers > len(req.IDs) {
		workers = len(req.IDs)
	}
	if workers < 1 {
		workers = 1
	}

	ids := make(chan string)
	errs := make(chan error, len(req.IDs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ids {
				if err := c.downloadScene(ctx, id, req); err != nil {
					errs <- fmt.Errorf("downloading %s: %w", id, err)
				}
			}
		}()
	}

	for _, id := range req.IDs {
		ids <- id
	}
	close(ids)
	wg.Wait()
	close(errs)

	return <-errs
}

// downloadScene streams one scene to disk. A partial file is removed
// on failure.
func (c *Client) downloadScene(ctx context.Context, id string, req DownloadRequest) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("product", req.Product)
	u := fmt.Sprintf("%s/scenes/%s/%s/full?%s", c.baseURL, req.SceneType, id, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return checkResponse(resp.StatusCode, data)
	}

	path := filepath.Join(req.Dest, id+".tif")
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return out.Close()
}
