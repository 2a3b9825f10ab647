package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/classify"
	"github.com/abhisek/memoriz/internal/config"
	"github.com/abhisek/memoriz/internal/interpret"
	"github.com/abhisek/memoriz/internal/llm"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/session"
	"github.com/abhisek/memoriz/internal/store"
)

// resolveDBPath returns the database path using --db flag (highest priority),
// then MEMORIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadFileConfig reads --config, or the default config path.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.LoadConfig(path)
}

// sessionConfig applies the file overrides to the defaults. A non-nil
// mode overrides the mode from the file.
func sessionConfig(fc config.FileConfig, mode *session.Mode) (session.Config, error) {
	cfg, err := fc.ApplySession(session.DefaultConfig())
	if err != nil {
		return session.Config{}, err
	}
	if mode != nil {
		cfg.Mode = *mode
	}
	return cfg, nil
}

// newInterpreter builds the narrative interpreter. When no provider is
// configured, or it fails to initialize, nil is returned and the callers
// fall back to the rule-based narrative.
func newInterpreter(ctx context.Context, fc config.FileConfig, events store.EventRepo) *interpret.Interpreter {
	cfg, ok := fc.ResolveLLM(llm.DefaultConfig())
	if !ok {
		return nil
	}
	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Interpretations will use built-in rules.")
		return nil
	}
	return interpret.New(provider)
}

// buildDeps assembles the services shared by the screens.
func buildDeps(cmd *cobra.Command, st *store.Store, mode *session.Mode) (screen.Deps, error) {
	fc, err := loadFileConfig(cmd)
	if err != nil {
		return screen.Deps{}, err
	}
	sess, err := sessionConfig(fc, mode)
	if err != nil {
		return screen.Deps{}, fmt.Errorf("session config: %w", err)
	}
	cls, err := fc.ApplyClassify(classify.DefaultConfig())
	if err != nil {
		return screen.Deps{}, fmt.Errorf("classify config: %w", err)
	}
	events := st.EventRepo()
	return screen.Deps{
		Results:     st.ResultRepo(),
		Events:      events,
		Session:     sess,
		Classify:    cls,
		Interpreter: newInterpreter(cmd.Context(), fc, events),
	}, nil
}
