package cli

import (
	"log/slog"

	"github.com/roach88/yearspans/internal/config"
	"github.com/roach88/yearspans/internal/engine"
	"github.com/roach88/yearspans/internal/gazetteer"
	"github.com/roach88/yearspans/internal/store"
)

// resolver is an engine plus the resources behind its gazetteer.
type resolver struct {
	engine    *engine.Engine
	gazetteer gazetteer.Gazetteer
	store     *store.Store
}

// newResolver builds the engine an invocation resolves with.
//
// Named periods are looked up, first hit wins, in: --periods tables, the
// --db index, PeriodO (when enabled) and the embedded tables. The chain is
// memoized, so a batch asks each source about a label once.
func newResolver(cfg *config.Config, logger *slog.Logger) (*resolver, error) {
	variant, err := engine.ForLanguage(cfg.Language)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "unsupported language", err).WithCode(ErrCodeLanguage)
	}

	r := &resolver{}
	g, err := r.openGazetteer(cfg, variant.Language, logger)
	if err != nil {
		r.Close()
		return nil, err
	}

	eng, err := engine.New(variant,
		engine.WithPresent(cfg.Present),
		engine.WithAuthority(cfg.Authority),
		engine.WithGazetteer(g),
		engine.WithLookupTimeout(cfg.LookupTimeout),
		engine.WithLogger(logger),
	)
	if err != nil {
		r.Close()
		return nil, WrapExitError(ExitCommandError, "failed to build engine", err).WithCode(ErrCodeLanguage)
	}
	r.engine = eng
	r.gazetteer = g

	logger.Debug("engine ready",
		"language", eng.Language(),
		"authority", eng.Authority(),
		"present", eng.Present(),
		"rules", len(eng.RuleNames()),
	)
	return r, nil
}

func (r *resolver) openGazetteer(cfg *config.Config, language string, logger *slog.Logger) (gazetteer.Gazetteer, error) {
	var chain gazetteer.Chain

	if len(cfg.Periods) > 0 {
		files := make([]*gazetteer.TableFile, 0, len(cfg.Periods))
		for _, path := range cfg.Periods {
			f, err := gazetteer.ReadTable(path)
			if err != nil {
				return nil, WrapExitError(ExitCommandError, "failed to read period table", err).WithCode(ErrCodeInput)
			}
			files = append(files, f)
		}
		chain = append(chain, gazetteer.NewTable(files...))
	}

	if cfg.DB != "" {
		st, err := store.Open(cfg.DB)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open periods index", err).WithCode(ErrCodeStore)
		}
		r.store = st
		chain = append(chain, gazetteer.NewIndex(st))
	}

	if cfg.PeriodO.Enabled {
		chain = append(chain, gazetteer.NewPeriodO(
			gazetteer.WithBaseURL(cfg.PeriodO.BaseURL),
			gazetteer.WithRate(cfg.PeriodO.Rate),
			gazetteer.WithLanguage(language),
			gazetteer.WithLogger(logger),
		))
	}

	builtin, err := gazetteer.DefaultTable()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load built-in period tables", err).WithCode(ErrCodeStore)
	}
	chain = append(chain, builtin)

	logger.Debug("gazetteer ready",
		"tables", len(cfg.Periods),
		"index", cfg.DB,
		"periodo", cfg.PeriodO.Enabled,
	)
	return gazetteer.NewMemo(chain, gazetteer.WithLogger(logger)), nil
}

// Close releases the periods index, if one was opened.
func (r *resolver) Close() {
	if r.store == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		slog.Error("error closing periods index", "error", err)
	}
}
