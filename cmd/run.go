package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmakino/kotoba/internal/catalog"
	"github.com/tmakino/kotoba/internal/config"
	"github.com/tmakino/kotoba/internal/hints"
	"github.com/tmakino/kotoba/internal/llm"
	"github.com/tmakino/kotoba/internal/profile"
	"github.com/tmakino/kotoba/internal/store"
	"github.com/tmakino/kotoba/internal/trainer"
)

// deps bundles everything a command needs after wiring.
type deps struct {
	Config  *config.Config
	Store   *store.Store
	Catalog *catalog.Catalog
	Profile *profile.Profile
	Trainer *trainer.Trainer
	Hints   *hints.Service
}

func (d *deps) Close() {
	if d.Store != nil {
		d.Store.Close()
	}
}

// setup loads config, opens the store, loads the catalog and profile, and
// builds the trainer. Configured study options override stored preferences.
func setup(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cat, err := catalog.Load(cfg.Decks.Dir)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load decks: %w", err)
	}

	p, err := st.LoadProfile(cmd.Context())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load profile: %w", err)
	}
	applyConfig(p, cfg)

	d := &deps{
		Config:  cfg,
		Store:   st,
		Catalog: cat,
		Profile: p,
		Trainer: trainer.New(cat, p, st),
	}
	d.Hints = buildHints(cmd.Context(), cfg)
	return d, nil
}

// applyConfig overlays the config file's study options onto the stored
// preferences. The file and env vars are explicit user intent and win.
func applyConfig(p *profile.Profile, cfg *config.Config) {
	p.Prefs.SessionSize = cfg.Study.SessionSize
	p.Prefs.NewItemCap = cfg.Study.NewItemCap
	p.Prefs.GradeTiers = cfg.Study.GradeTiers
	p.Prefs.AutoSuggest = cfg.Study.AutoSuggest
	if cfg.Decks.Dir != "" {
		p.Prefs.DecksDir = cfg.Decks.Dir
	}
}

// buildHints wires the optional LLM hint service. Missing or invalid
// provider configuration disables hints rather than failing startup.
func buildHints(ctx context.Context, cfg *config.Config) *hints.Service {
	llmCfg := llm.ConfigFromEnv()
	if cfg.LLM.Provider != "" {
		llmCfg.Provider = cfg.LLM.Provider
	}
	if cfg.LLM.Model != "" {
		switch llmCfg.Provider {
		case "anthropic":
			llmCfg.Anthropic.Model = cfg.LLM.Model
		case "openai":
			llmCfg.OpenAI.Model = cfg.LLM.Model
		case "gemini":
			llmCfg.Gemini.Model = cfg.LLM.Model
		}
	}

	if err := llmCfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil
		}
		llmCfg = discovered
	}

	provider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Mnemonic hints will be unavailable.")
		return nil
	}
	return hints.NewService(provider)
}
