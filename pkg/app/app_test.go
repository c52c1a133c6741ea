package app_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbospeed/speedfiles/pkg/app"
	"github.com/turbospeed/speedfiles/pkg/catalog"
	"github.com/turbospeed/speedfiles/pkg/config"
	"github.com/turbospeed/speedfiles/pkg/hooks"
)

// stateRecorder implements render.Renderer and records which view states
// were displayed, in order.
type stateRecorder struct {
	states []string
	rows   []catalog.Row
}

func (r *stateRecorder) Loading() { r.states = append(r.states, "loading") }
func (r *stateRecorder) Populated(rows []catalog.Row) {
	r.states = append(r.states, "populated")
	r.rows = rows
}
func (r *stateRecorder) Empty()        { r.states = append(r.states, "empty") }
func (r *stateRecorder) Failed(error) { r.states = append(r.states, "errored") }

// catalogServer serves the configuration document at /file-sizes.yaml and
// placeholder bytes everywhere else.
func catalogServer(t *testing.T, document string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/file-sizes.yaml" {
				fmt.Fprint(w, document)
				return
			}
			_, _ = w.Write(bytes.Repeat([]byte{0}, 2048))
		}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestApp(t *testing.T, ts *httptest.Server, cfg *config.Config) (*app.App, *stateRecorder) {
	t.Helper()
	cfg.CatalogURL = ts.URL + "/file-sizes.yaml"
	if cfg.WatchIntervalSeconds == 0 {
		cfg.WatchIntervalSeconds = 30
	}
	a, err := app.NewApp(cfg)
	require.NoError(t, err)
	a.SetHTTPClient(ts.Client())
	rec := &stateRecorder{}
	a.SetRenderer(rec)
	return a, rec
}

func TestNewApp_InvalidConfig(t *testing.T) {
	_, err := app.NewApp(&config.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrInvalidConfig)
}

func TestApp_Run_Populated(t *testing.T) {
	ts := catalogServer(t, "files:\n  - \"1gb\"\n  - \"1kb\"\n  - \"100mb\"\n")
	a, rec := newTestApp(t, ts, &config.Config{})

	err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"loading", "populated"}, rec.states)
	require.Len(t, rec.rows, 3)
	assert.Equal(t, "1kb", rec.rows[0].RawToken)
	assert.Equal(t, "100mb", rec.rows[1].RawToken)
	assert.Equal(t, "1gb", rec.rows[2].RawToken)
	// short URLs point one directory above the document, token appended
	assert.Equal(t, ts.URL+"/1kb", rec.rows[0].URL)
}

func TestApp_Run_Empty(t *testing.T) {
	ts := catalogServer(t, "")
	a, rec := newTestApp(t, ts, &config.Config{})

	err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"loading", "empty"}, rec.states)
}

func TestApp_Run_Errored(t *testing.T) {
	ts := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
	defer ts.Close()

	a, rec := newTestApp(t, ts, &config.Config{})

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrRetrieval)
	assert.Equal(t, []string{"loading", "errored"}, rec.states)
}

func TestApp_Run_EmptyAndErroredAreDistinct(t *testing.T) {
	emptyTS := catalogServer(t, "")
	emptyApp, emptyRec := newTestApp(t, emptyTS, &config.Config{})
	require.NoError(t, emptyApp.Run(context.Background()))

	failTS := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
	defer failTS.Close()
	failApp, failRec := newTestApp(t, failTS, &config.Config{})
	require.Error(t, failApp.Run(context.Background()))

	assert.NotEqual(t, emptyRec.states, failRec.states)
}

func TestApp_Copy(t *testing.T) {
	ts := catalogServer(t, "files:\n  - \"100mb\"\n")
	marker := filepath.Join(t.TempDir(), "copied")
	a, _ := newTestApp(t, ts, &config.Config{
		Hooks: hooks.Hooks{Copy: "touch " + marker},
	})

	url, err := a.Copy(context.Background(), "100MB")
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/100mb", url)

	_, err = os.Stat(marker)
	assert.NoError(t, err, "copy hook should have run")
}

func TestApp_Copy_UnknownToken(t *testing.T) {
	ts := catalogServer(t, "files:\n  - \"100mb\"\n")
	a, _ := newTestApp(t, ts, &config.Config{})

	_, err := a.Copy(context.Background(), "9gb")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrUnknownToken)
}

func TestApp_Download(t *testing.T) {
	ts := catalogServer(t, "files:\n  - \"1kb\"\n  - \"2kb\"\n")
	dir := t.TempDir()
	a, _ := newTestApp(t, ts, &config.Config{OutputDir: dir})

	err := a.Download(context.Background(), []string{"1kb", "2kb"})
	require.NoError(t, err)

	for _, name := range []string{"turbospeed-1kb.bin", "turbospeed-2kb.bin"} {
		stat, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, int64(2048), stat.Size())
	}
}

func TestApp_Download_PostDownloadHookGetsSavedPath(t *testing.T) {
	ts := catalogServer(t, "files:\n  - \"1kb\"\n")
	dir := t.TempDir()
	copied := filepath.Join(t.TempDir(), "copied.bin")
	// the hook must be able to act on the file where it was saved, not on a
	// basename relative to the current working directory
	a, _ := newTestApp(t, ts, &config.Config{
		OutputDir: dir,
		Hooks:     hooks.Hooks{PostDownload: "cp %FILE% " + copied},
	})

	err := a.Download(context.Background(), []string{"1kb"})
	require.NoError(t, err)

	stat, err := os.Stat(copied)
	require.NoError(t, err, "post-download hook should have copied the saved file")
	assert.Equal(t, int64(2048), stat.Size())
}

func TestApp_Download_UnknownToken(t *testing.T) {
	ts := catalogServer(t, "files:\n  - \"1kb\"\n")
	a, _ := newTestApp(t, ts, &config.Config{OutputDir: t.TempDir()})

	err := a.Download(context.Background(), []string{"1kb", "9gb"})
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrUnknownToken)
}

func TestApp_Download_OutputDirMustExist(t *testing.T) {
	ts := catalogServer(t, "files:\n  - \"1kb\"\n")
	a, _ := newTestApp(t, ts, &config.Config{OutputDir: "/does/not/exist"})

	err := a.Download(context.Background(), []string{"1kb"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a directory"))
}
