// Package download transfers a placeholder file to local disk.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/cheggaaa/pb.v1"
)

// Downloader fetches placeholder files over HTTP and writes them under a
// local directory. Placeholder files are single-shot transfers: no ranges,
// no resume.
type Downloader struct {
	httpClient *http.Client
	dirpath    string
	progress   bool
}

// NewDownloader returns a Downloader saving files under dirpath.
func NewDownloader(dirpath string) *Downloader {
	return &Downloader{
		httpClient: &http.Client{},
		dirpath:    dirpath,
	}
}

// SetHTTPClient sets the http client
// default: http.Client{}
func (d *Downloader) SetHTTPClient(httpClient *http.Client) {
	if httpClient != nil {
		d.httpClient = httpClient
	}
}

// SetProgress enables a byte progress bar on stdout during transfers.
// Leave it off for concurrent transfers, the bars would interleave.
func (d *Downloader) SetProgress(progress bool) {
	d.progress = progress
}

// Fetch downloads the resource at url and saves it as dstFilename under the
// downloader's directory. A partial file is removed on failure.
func (d *Downloader) Fetch(ctx context.Context, url string, dstFilename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create GET request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: unexpected HTTP status code %d", url, resp.StatusCode)
	}

	dstPath := filepath.Join(d.dirpath, dstFilename)
	dst, err := os.Create(dstPath) //nolint:gosec // G304: destination is built from the configured output directory
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstPath, err)
	}
	defer func() { _ = dst.Close() }()

	src := io.Reader(resp.Body)
	var bar *pb.ProgressBar
	if d.progress && resp.ContentLength > 0 {
		bar = pb.New64(resp.ContentLength).SetUnits(pb.U_BYTES)
		bar.Start()
		src = bar.NewProxyReader(resp.Body)
	}

	_, err = io.Copy(dst, src)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		_ = dst.Close()
		_ = os.Remove(dstPath) // clean up the partial file
		return fmt.Errorf("failed to write %s: %w", dstPath, err)
	}
	return nil
}
