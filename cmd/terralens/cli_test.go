package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/terralens/terralens/internal/creds"
	"github.com/terralens/terralens/internal/scenes"
)

// Fixtures standing in for service payloads.
const (
	searchFixture = `{"type": "FeatureCollection", "features": [{"type": "Feature", "id": "20150615_190229_0905"}]}`

	metadataFixture = `{"type": "Feature", "id": "20150615_190229_0905", "properties": {"sat.alt": 451}}`

	workspaceFixture = `{"id": "24socsaav8mifh7h9i6v05hbk6", "name": "california", "filters": {"sat.alt": {"gte": 200}}}`
)

// fakeAPI records calls and plays back canned responses.
type fakeAPI struct {
	response *scenes.Response
	err      error

	gotSceneType   string
	gotOptions     scenes.SearchOptions
	gotSceneID     string
	gotWorkspace   map[string]any
	gotWorkspaceID string
	gotEmail       string
	gotPassword    string
	gotDownload    scenes.DownloadRequest

	setWorkspaceCalls int
}

func (f *fakeAPI) GetScenesList(ctx context.Context, sceneType string, opts scenes.SearchOptions) (*scenes.Response, error) {
	f.gotSceneType = sceneType
	f.gotOptions = opts
	return f.response, f.err
}

func (f *fakeAPI) GetSceneMetadata(ctx context.Context, id, sceneType string) (*scenes.Response, error) {
	f.gotSceneID = id
	f.gotSceneType = sceneType
	return f.response, f.err
}

func (f *fakeAPI) SetWorkspace(ctx context.Context, workspace map[string]any, id string) (*scenes.Response, error) {
	f.setWorkspaceCalls++
	f.gotWorkspace = workspace
	f.gotWorkspaceID = id
	return f.response, f.err
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*scenes.Response, error) {
	f.gotEmail = email
	f.gotPassword = password
	return f.response, f.err
}

func (f *fakeAPI) Download(ctx context.Context, req scenes.DownloadRequest) error {
	f.gotDownload = req
	return f.err
}

// useFake routes all client construction through the fake for the
// duration of the test.
func useFake(t *testing.T, fake *fakeAPI) {
	t.Helper()
	saved := newClient
	newClient = func() scenes.API { return fake }
	t.Cleanup(func() { newClient = saved })
}

// resetFlags restores flag-bound state between invocations; the cobra
// command tree is package-global and remembers values otherwise.
func resetFlags() {
	params = clientParams{Workers: scenes.DefaultWorkers}
	searchType = scenes.DefaultSceneType
	searchLimit = scenes.DefaultSearchCount
	metadataType = scenes.DefaultSceneType
	metadataCached = false
	downloadType = scenes.DefaultSceneType
	downloadProduct = scenes.DefaultProduct
	downloadDest = "."
	wsCreate = false
	wsID = ""
	wsName = ""
	wsAOI = ""
	initEmail = ""
	initPassword = ""
}

// runCLI executes the root command with the given stdin and args,
// returning captured stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func assertJSONEqual(t *testing.T, got, want string) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal([]byte(got), &g); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(g, w) {
		t.Errorf("output = %s, want %s", got, want)
	}
}

func fromJSON(t *testing.T, raw string) map[string]any {
	t.Helper()
	var v map[string]any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, "", "--version")
	if err != nil {
		t.Fatalf("--version error = %v", err)
	}
	if out != Version+"\n" {
		t.Errorf("--version output = %q, want %q", out, Version+"\n")
	}
}

func TestWorkersFlag(t *testing.T) {
	useFake(t, &fakeAPI{response: scenes.NewResponse(searchFixture)})

	if _, err := runCLI(t, "", "--workers", "19", "search"); err != nil {
		t.Fatalf("search error = %v", err)
	}
	if params.Workers != 19 {
		t.Errorf("params.Workers = %d, want 19", params.Workers)
	}
}

func TestAPIKeyFlag(t *testing.T) {
	useFake(t, &fakeAPI{response: scenes.NewResponse(searchFixture)})

	if _, err := runCLI(t, "", "-k", "shazbot", "search"); err != nil {
		t.Fatalf("search error = %v", err)
	}
	if params.APIKey != "shazbot" {
		t.Errorf("params.APIKey = %q, want %q", params.APIKey, "shazbot")
	}
}

func TestSearch(t *testing.T) {
	fake := &fakeAPI{response: scenes.NewResponse(searchFixture)}
	useFake(t, fake)

	out, err := runCLI(t, "", "search")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	assertJSONEqual(t, out, searchFixture)
	if fake.gotOptions.Intersects != "" {
		t.Errorf("empty stdin produced intersects %q", fake.gotOptions.Intersects)
	}
}

func TestSearchByAOI(t *testing.T) {
	fake := &fakeAPI{response: scenes.NewResponse(searchFixture)}
	useFake(t, fake)

	aoi := `{"type": "Point", "coordinates": [-122.3, 37.8]}`
	out, err := runCLI(t, aoi, "search")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	assertJSONEqual(t, out, searchFixture)
	if fake.gotOptions.Intersects != aoi {
		t.Errorf("intersects = %q, want the stdin AOI", fake.gotOptions.Intersects)
	}
}

func TestSearchTranslatesErrors(t *testing.T) {
	useFake(t, &fakeAPI{err: &scenes.BadQuery{Message: "bogus"}})

	_, err := runCLI(t, "", "search")
	if err == nil || err.Error() != "BadQuery: bogus" {
		t.Errorf("search error = %v, want %q", err, "BadQuery: bogus")
	}
}

func TestMetadata(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	fake := &fakeAPI{response: scenes.NewResponse(metadataFixture)}
	useFake(t, fake)

	out, err := runCLI(t, "", "metadata", "20150615_190229_0905")
	if err != nil {
		t.Fatalf("metadata error = %v", err)
	}
	assertJSONEqual(t, out, metadataFixture)
	if fake.gotSceneID != "20150615_190229_0905" {
		t.Errorf("scene id = %q", fake.gotSceneID)
	}
}

func TestMetadataCached(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	useFake(t, &fakeAPI{response: scenes.NewResponse(metadataFixture)})

	// First fetch populates the cache.
	if _, err := runCLI(t, "", "metadata", "20150615_190229_0905"); err != nil {
		t.Fatalf("metadata error = %v", err)
	}

	// Second read never touches the client.
	useFake(t, &fakeAPI{err: &scenes.APIError{StatusCode: 503, Message: "down"}})
	out, err := runCLI(t, "", "metadata", "--cached", "20150615_190229_0905")
	if err != nil {
		t.Fatalf("metadata --cached error = %v", err)
	}
	assertJSONEqual(t, out, metadataFixture)
}

func TestMetadataCachedMiss(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	useFake(t, &fakeAPI{})

	if _, err := runCLI(t, "", "metadata", "--cached", "never-fetched"); err == nil {
		t.Error("metadata --cached of unknown scene did not fail")
	}
}

func TestDownload(t *testing.T) {
	fake := &fakeAPI{}
	useFake(t, fake)

	dest := t.TempDir()
	_, err := runCLI(t, "", "download", "--dest", dest, "a1", "b2")
	if err != nil {
		t.Fatalf("download error = %v", err)
	}
	want := scenes.DownloadRequest{
		IDs:       []string{"a1", "b2"},
		SceneType: scenes.DefaultSceneType,
		Product:   scenes.DefaultProduct,
		Dest:      dest,
	}
	if !reflect.DeepEqual(fake.gotDownload, want) {
		t.Errorf("download request = %+v, want %+v", fake.gotDownload, want)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	saved := creds.Path
	creds.Path = func() (string, error) { return path, nil }
	t.Cleanup(func() { creds.Path = saved })

	fake := &fakeAPI{response: scenes.NewResponse(`{"api_key": "SECRIT"}`)}
	useFake(t, fake)

	if _, err := runCLI(t, "", "init", "--email", "bil@ly", "--password", "secret"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if fake.gotEmail != "bil@ly" || fake.gotPassword != "secret" {
		t.Errorf("login called with (%q, %q)", fake.gotEmail, fake.gotPassword)
	}

	key, err := creds.Load()
	if err != nil {
		t.Fatalf("credentials not stored: %v", err)
	}
	if key != "SECRIT" {
		t.Errorf("stored key = %q, want %q", key, "SECRIT")
	}
}

// setWorkspace invokes set-workspace with the given document and extra
// args and returns the recorded call.
func setWorkspace(t *testing.T, fake *fakeAPI, doc map[string]any, stdin string, extra ...string) {
	t.Helper()
	fake.response = scenes.NewResponse(`{"status": "OK"}`)
	useFake(t, fake)

	args := append([]string{"set-workspace"}, extra...)
	if doc != nil {
		raw, err := json.Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		args = append(args, string(raw))
	}

	if _, err := runCLI(t, stdin, args...); err != nil {
		t.Fatalf("set-workspace error = %v", err)
	}
	if fake.setWorkspaceCalls != 1 {
		t.Fatalf("SetWorkspace called %d times, want 1", fake.setWorkspaceCalls)
	}
}

func TestWorkspaceCreateNoID(t *testing.T) {
	ws := fromJSON(t, workspaceFixture)
	delete(ws, "id")

	fake := &fakeAPI{}
	setWorkspace(t, fake, ws, "")

	if !reflect.DeepEqual(fake.gotWorkspace, ws) {
		t.Errorf("workspace body = %v, want %v", fake.gotWorkspace, ws)
	}
	if fake.gotWorkspaceID != "" {
		t.Errorf("workspace id = %q, want empty", fake.gotWorkspaceID)
	}
}

func TestWorkspaceCreateFromExisting(t *testing.T) {
	ws := fromJSON(t, workspaceFixture)

	fake := &fakeAPI{}
	setWorkspace(t, fake, ws, "", "--create")

	// The body keeps its id; only the addressed id is forced empty.
	if !reflect.DeepEqual(fake.gotWorkspace, ws) {
		t.Errorf("workspace body = %v, want %v", fake.gotWorkspace, ws)
	}
	if fake.gotWorkspaceID != "" {
		t.Errorf("workspace id = %q, want empty", fake.gotWorkspaceID)
	}
}

func TestWorkspaceUpdateWithExplicitID(t *testing.T) {
	ws := fromJSON(t, workspaceFixture)

	fake := &fakeAPI{}
	setWorkspace(t, fake, ws, "", "--id", "12345")

	if !reflect.DeepEqual(fake.gotWorkspace, ws) {
		t.Errorf("workspace body = %v, want %v", fake.gotWorkspace, ws)
	}
	if fake.gotWorkspaceID != "12345" {
		t.Errorf("workspace id = %q, want %q", fake.gotWorkspaceID, "12345")
	}
}

func TestWorkspaceUpdateStdin(t *testing.T) {
	ws := fromJSON(t, workspaceFixture)

	// No positional document: the CLI reads it from stdin.
	fake := &fakeAPI{}
	setWorkspace(t, fake, nil, workspaceFixture)

	if !reflect.DeepEqual(fake.gotWorkspace, ws) {
		t.Errorf("workspace body = %v, want %v", fake.gotWorkspace, ws)
	}
	if fake.gotWorkspaceID != ws["id"] {
		t.Errorf("workspace id = %q, want the document id %q", fake.gotWorkspaceID, ws["id"])
	}
}

func TestWorkspaceCreateAOI(t *testing.T) {
	geometry := `{"type": "Point"}`
	want := fromJSON(t, `{
		"name": "foobar",
		"filters": {
			"geometry": {
				"intersects": {"type": "Point"}
			}
		}
	}`)

	// AOI as a literal flag value.
	fake := &fakeAPI{}
	setWorkspace(t, fake, map[string]any{}, "", "--name", "foobar", "--aoi", geometry)
	if !reflect.DeepEqual(fake.gotWorkspace, want) {
		t.Errorf("workspace body = %v, want %v", fake.gotWorkspace, want)
	}
	if fake.gotWorkspaceID != "" {
		t.Errorf("workspace id = %q, want empty", fake.gotWorkspaceID)
	}

	// AOI from stdin via the @- sentinel; the document itself is the
	// positional so stdin stays free for the geometry.
	fake = &fakeAPI{}
	setWorkspace(t, fake, map[string]any{}, geometry, "--name", "foobar", "--aoi", "@-")
	if !reflect.DeepEqual(fake.gotWorkspace, want) {
		t.Errorf("workspace body = %v, want %v", fake.gotWorkspace, want)
	}
}
