package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/topics/internal/filestore"
	"github.com/mesh-intelligence/topics/pkg/types"
)

// recordingOpener records the URLs it is asked to open.
type recordingOpener struct {
	urls []string
	err  error
}

func (r *recordingOpener) Open(ctx context.Context, url string) error {
	r.urls = append(r.urls, url)
	return r.err
}

// testEnv is an isolated config and data directory pair.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
	opener    *recordingOpener
	logger    *zap.Logger
}

type cmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func newTestEnv(t *testing.T, backend string) *testEnv {
	t.Helper()
	for _, key := range []string{"TOPICS_BACKEND", "TOPICS_SYNC_STRATEGY", "TOPICS_LOG_LEVEL", "TOPICS_DATA_DIR", "TOPICS_CONFIG_DIR"} {
		t.Setenv(key, "")
	}

	tempDir := t.TempDir()
	env := &testEnv{
		t:         t,
		configDir: filepath.Join(tempDir, "config"),
		dataDir:   filepath.Join(tempDir, "data"),
		opener:    &recordingOpener{},
	}
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	content := "backend: " + backend + "\nlog_level: error\n"
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte(content), 0o644))
	return env
}

func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	opts := []Option{WithOpener(e.opener)}
	if e.logger != nil {
		opts = append(opts, WithLogger(e.logger))
	}
	root := NewRootCmd(opts...)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	if err != nil {
		stderr.WriteString(err.Error())
	}
	return cmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: ExitCode(err)}
}

func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	require.Equal(e.t, exitSuccess, res.ExitCode, "topics %v\nstdout: %s\nstderr: %s", args, res.Stdout, res.Stderr)
	return res
}

func (e *testEnv) listJSON(args ...string) []types.Topic {
	e.t.Helper()
	res := e.mustRun(append([]string{"--json", "list"}, args...)...)
	var got []types.Topic
	require.NoError(e.t, json.Unmarshal([]byte(res.Stdout), &got), res.Stdout)
	return got
}

func names(topics []types.Topic) []string {
	out := make([]string, len(topics))
	for i, t := range topics {
		out[i] = t.Name
	}
	return out
}

func TestInitSeedsAndPersists(t *testing.T) {
	for _, backend := range []string{types.BackendSQLite, types.BackendFile} {
		t.Run(backend, func(t *testing.T) {
			env := newTestEnv(t, backend)

			res := env.mustRun("init")
			assert.Contains(t, res.Stdout, "Topics initialized successfully")
			assert.Contains(t, res.Stdout, "10 (seed)")

			res = env.mustRun("init")
			assert.Contains(t, res.Stdout, "10 (snapshot)")
		})
	}
}

func TestInitWritesDefaultConfig(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)
	configDir := filepath.Join(t.TempDir(), "fresh")

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config-dir", configDir, "--data-dir", env.dataDir, "init"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.Contains(t, string(data), "sync_strategy: async")
}

func TestListAndSearch(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)

	all := env.listJSON()
	require.Len(t, all, 10)
	assert.Equal(t, "HTML", all[0].Name)
	assert.Equal(t, "10", all[9].ID)

	assert.Equal(t, []string{"HTML"}, names(env.listJSON("--search", "html")))
	assert.Equal(t, []string{"JavaScript"}, names(env.listJSON("--search", "SCRIPT")))
	assert.Empty(t, env.listJSON("--search", "cobol"))

	res := env.mustRun("list")
	assert.Contains(t, res.Stdout, "Tech Topics")
	assert.Contains(t, res.Stdout, "(3 links)")
}

func TestListWhere(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)

	got := env.listJSON("--where", "!asset")
	assert.Equal(t, []string{"JavaScript"}, names(got))

	got = env.listJSON("--search", "react", "--where", `name endsWith "Native"`)
	assert.Equal(t, []string{"React Native"}, names(got))

	res := env.run("list", "--where", "name +")
	assert.Equal(t, exitUserError, res.ExitCode)
}

func TestAddTopic(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)

	res := env.mustRun("add-topic", "--name", "Go", "--links", " https://go.dev , ,https://go.dev/doc ")
	assert.Contains(t, res.Stdout, "Topic Added: Go has been added successfully")

	all := env.listJSON()
	require.Len(t, all, 11)
	added := all[10]
	assert.Equal(t, "Go", added.Name)
	assert.Equal(t, []string{"https://go.dev", "https://go.dev/doc"}, added.Links)
	assert.Equal(t, types.PlaceholderImage, added.Image)
	assert.NotEmpty(t, added.ID)
}

func TestAddTopicValidation(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing name", args: []string{"add-topic", "--links", "https://go.dev"}},
		{name: "missing links", args: []string{"add-topic", "--name", "Go"}},
		{name: "only separators", args: []string{"add-topic", "--name", "Go", "--links", " , "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(tt.args...)
			assert.Equal(t, exitUserError, res.ExitCode)
		})
	}
	assert.Len(t, env.listJSON(), 10)
}

func TestAddLink(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)

	res := env.mustRun("add-link", "2", "--url", "https://web.dev/learn/css", "--header", "Learn CSS", "--image", "https://example.com/css.png")
	assert.Contains(t, res.Stdout, "Link added to CSS (2 links)")

	res = env.mustRun("--json", "show", "2")
	var css types.Topic
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &css))
	assert.Equal(t, "Learn CSS: https://web.dev/learn/css", css.Links[1])
	assert.Equal(t, "https://example.com/css.png", css.Image)

	res = env.mustRun("show", "2")
	assert.Contains(t, res.Stdout, "2. Learn CSS https://web.dev/learn/css")
}

func TestAddLinkRejected(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown topic", args: []string{"add-link", "nonexistent-id", "--url", "http://x"}},
		{name: "empty url", args: []string{"add-link", "1"}},
		{name: "header with separator", args: []string{"add-link", "1", "--url", "http://x", "--header", "a: b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(tt.args...)
			assert.Equal(t, exitUserError, res.ExitCode)
		})
	}

	all := env.listJSON()
	assert.Len(t, all[0].Links, 3)
}

func TestShowNotFound(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)
	res := env.run("show", "42")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, `topic "42" not found`)
}

func TestOpen(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)
	env.mustRun("add-link", "1", "--url", "https://web.dev/learn/html", "--header", "Learn HTML")

	res := env.mustRun("open", "1", "4")
	assert.Contains(t, res.Stdout, "Opened https://web.dev/learn/html")
	assert.Equal(t, []string{"https://web.dev/learn/html"}, env.opener.urls)

	assert.Equal(t, exitUserError, env.run("open", "1", "5").ExitCode)
	assert.Equal(t, exitUserError, env.run("open", "1", "zero").ExitCode)
	assert.Equal(t, exitUserError, env.run("open", "missing", "1").ExitCode)
}

func TestOpenFailureDoesNotFail(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)
	env.opener.err = errors.New("no browser")

	res := env.mustRun("open", "2", "1")
	assert.Contains(t, res.Stderr, "could not open https://developer.mozilla.org/en-US/docs/Web/CSS")
}

func TestTheme(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)

	assert.Equal(t, "theme: dark\n", env.mustRun("theme").Stdout)
	assert.Equal(t, "theme: light\n", env.mustRun("theme", "toggle").Stdout)
	assert.Equal(t, "theme: light\n", env.mustRun("theme").Stdout)
	assert.Equal(t, "theme: dark\n", env.mustRun("theme", "dark").Stdout)
	assert.Equal(t, exitUserError, env.run("theme", "sepia").ExitCode)
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t, types.BackendFile)
	env.mustRun("add-topic", "--name", "Go", "--links", "https://go.dev")

	file := filepath.Join(t.TempDir(), "topics.jsonl")
	res := env.mustRun("export", file)
	assert.Contains(t, res.Stdout, "Exported 11 topics")

	records, malformed, err := filestore.ReadJSONL(file)
	require.NoError(t, err)
	assert.Empty(t, malformed)
	require.Len(t, records, 11)

	other := newTestEnv(t, types.BackendFile)
	res = other.mustRun("import", file)
	assert.Contains(t, res.Stdout, "Imported 11 topics (0 skipped)")

	all := other.listJSON()
	require.Len(t, all, 21)
	assert.Equal(t, "HTML", all[10].Name)
	assert.Equal(t, "Go", all[20].Name)
	assert.NotEqual(t, "1", all[10].ID)
}

func TestImportSkipsInvalid(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)
	core, logs := observer.New(zap.WarnLevel)
	env.logger = zap.New(core)

	file := filepath.Join(t.TempDir(), "in.jsonl")
	content := `{"name":"Go","links":["https://go.dev"]}
not json
[1,2]
{"name":"","links":["https://x"]}
{"name":"Rust","links":[]}
{broken
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	res := env.mustRun("import", file)
	assert.Contains(t, res.Stdout, "Imported 1 topics (5 skipped)")

	malformed := logs.FilterMessage("skipping malformed line").All()
	require.Len(t, malformed, 2)
	assert.Equal(t, int64(2), malformed[0].ContextMap()["line"])
	assert.Equal(t, int64(6), malformed[1].ContextMap()["line"])
	assert.Equal(t, 1, logs.FilterMessage("skipping undecodable record").Len())
	assert.Equal(t, 2, logs.FilterMessage("skipping invalid topic").Len())

	assert.Equal(t, exitUserError, env.run("import", filepath.Join(t.TempDir(), "missing.jsonl")).ExitCode)
}

func TestHelpAndCompletionSkipConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "help", args: []string{"help"}},
		{name: "help for a command", args: []string{"help", "list"}},
		{name: "completion", args: []string{"completion", "bash"}},
		{name: "version", args: []string{"version"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TOPICS_CONFIG_DIR", "")
			configDir := filepath.Join(t.TempDir(), "config")

			root := NewRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(append([]string{"--config-dir", configDir}, tt.args...))
			require.NoError(t, root.Execute())

			_, err := os.Stat(configDir)
			assert.True(t, os.IsNotExist(err), "config dir created by %v", tt.args)
		})
	}
}

func TestMemoryBackendDoesNotPersist(t *testing.T) {
	env := newTestEnv(t, types.BackendMemory)
	env.mustRun("add-topic", "--name", "Go", "--links", "https://go.dev")
	assert.Len(t, env.listJSON(), 10)
}

func TestInvalidConfiguration(t *testing.T) {
	env := newTestEnv(t, "postgres")
	res := env.run("list")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "invalid configuration")

	env = newTestEnv(t, types.BackendSQLite)
	t.Setenv("TOPICS_SYNC_STRATEGY", "sometimes")
	assert.Equal(t, exitUserError, env.run("list").ExitCode)
}

func TestSyncStrategyFromEnv(t *testing.T) {
	for _, strategy := range []string{types.SyncAsync, types.SyncImmediate, types.SyncOnClose} {
		t.Run(strategy, func(t *testing.T) {
			env := newTestEnv(t, types.BackendSQLite)
			t.Setenv("TOPICS_SYNC_STRATEGY", strategy)
			env.mustRun("add-topic", "--name", "Go", "--links", "https://go.dev")
			assert.Len(t, env.listJSON(), 11)
		})
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)
	res := env.mustRun("version")
	assert.Contains(t, res.Stdout, "topics v")
	assert.Contains(t, res.Stdout, "module: github.com/mesh-intelligence/topics")
}

func TestExitCode(t *testing.T) {
	base := errors.New("boom")
	assert.Equal(t, exitSuccess, ExitCode(nil))
	assert.Equal(t, exitUserError, ExitCode(base))
	assert.Equal(t, exitUserError, ExitCode(userError(base)))
	assert.Equal(t, exitSysError, ExitCode(sysError(base)))
	assert.ErrorIs(t, sysError(base), base)
}

func TestSplitLinks(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "a", want: []string{"a"}},
		{in: " a , b ,,c ", want: []string{"a", "b", "c"}},
		{in: "Docs: https://x, https://y", want: []string{"Docs: https://x", "https://y"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitLinks(tt.in), "input %q", tt.in)
	}
}
