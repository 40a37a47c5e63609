package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/topics/internal/filestore"
	"github.com/mesh-intelligence/topics/internal/memkv"
	"github.com/mesh-intelligence/topics/internal/paths"
	"github.com/mesh-intelligence/topics/internal/render"
	"github.com/mesh-intelligence/topics/internal/settings"
	"github.com/mesh-intelligence/topics/internal/topics"
	"github.com/mesh-intelligence/topics/pkg/sqlite"
	"github.com/mesh-intelligence/topics/pkg/types"
)

// session is one attached backend with the store and settings opened on it.
type session struct {
	config   types.Config
	backend  types.Backend
	store    *topics.Store
	settings *settings.Settings
	logger   *zap.Logger
}

// storageConfig builds the backend configuration from config.yaml, the
// environment and the --data-dir flag.
func (a *app) storageConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg := types.Config{
		Backend:      a.config.GetString(cfgKeyBackend),
		DataDir:      dataDir,
		SyncStrategy: a.config.GetString(cfgKeySyncStrategy),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, userError(fmt.Errorf("invalid configuration: %w", err))
	}
	return cfg, nil
}

// attachBackend creates the backend named by cfg and attaches it. The
// caller must Detach it.
func attachBackend(cfg types.Config) (types.Backend, error) {
	var backend types.Backend
	switch cfg.Backend {
	case types.BackendMemory:
		// A new memory backend is already attached.
		return memkv.New(), nil
	case types.BackendFile:
		backend = filestore.NewBackend()
	default:
		backend = sqlite.NewBackend()
	}
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", cfg.Backend, err)
	}
	return backend, nil
}

// openSession attaches the configured backend and opens the topic store.
func (a *app) openSession() (*session, error) {
	cfg, err := a.storageConfig()
	if err != nil {
		return nil, err
	}
	backend, err := attachBackend(cfg)
	if err != nil {
		return nil, sysError(err)
	}

	store, err := topics.Open(backend,
		topics.WithLogger(a.logger),
		topics.WithSyncStrategy(cfg.GetSyncStrategy()),
	)
	if err != nil {
		_ = backend.Detach()
		return nil, sysError(fmt.Errorf("open topics: %w", err))
	}

	a.logger.Debug("topics loaded",
		zap.String("source", string(store.Source())),
		zap.Int("count", store.Len()))

	return &session{
		config:   cfg,
		backend:  backend,
		store:    store,
		settings: settings.New(backend, a.logger),
		logger:   a.logger,
	}, nil
}

// close flushes the store and detaches the backend.
func (s *session) close() error {
	storeErr := s.store.Close()
	detachErr := s.backend.Detach()
	if err := errors.Join(storeErr, detachErr); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

// withSession runs fn on a freshly opened session and closes it afterwards.
// A close failure is reported only when fn succeeded.
func (a *app) withSession(fn func(s *session) error) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	err = fn(s)
	if cerr := s.close(); cerr != nil && err == nil {
		err = sysError(cerr)
	}
	return err
}

// renderer returns a renderer for w using the stored theme.
func (s *session) renderer(w io.Writer) *render.Renderer {
	return render.New(w, s.settings.Theme())
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return sysError(err)
	}
	return nil
}
