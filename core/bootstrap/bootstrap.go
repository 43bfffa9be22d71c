package bootstrap

import (
	"errors"
	"fmt"

	coreconfig "github.com/m3rciful/shoplistbot/core/config"
	"github.com/m3rciful/shoplistbot/core/logger"
	"github.com/m3rciful/shoplistbot/list/store"
)

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	OpenStore  func(path string) (*store.Store, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Store *store.Store
}

// Run initializes the logger and opens the shopping list document store.
// A corrupt store file is fatal: starting with an empty document would
// silently discard the users' data on the next save.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	openStore := opts.OpenStore
	if openStore == nil {
		openStore = store.Open
	}
	st, err := openStore(opts.Config.Store.Path)
	if err != nil {
		if errors.Is(err, store.ErrCorrupt) {
			return nil, fmt.Errorf("bootstrap: store file is corrupt, refusing to start: %w", err)
		}
		return nil, fmt.Errorf("bootstrap: store initialization failed: %w", err)
	}

	return &Result{Store: st}, nil
}
