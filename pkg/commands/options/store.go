package options

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/jotty/pkg/logging"
	"tableflip.dev/jotty/pkg/store"
)

// StoreOptions selects the journal backend from the command line.
type StoreOptions struct {
	DatabasePath string
	Ephemeral    bool
	Backend      string
	Log          string
}

// flag name -> config key
var storeFlags = map[string]string{
	"database-path": store.KeyPath,
	"backend":       store.KeyBackend,
	"log":           store.KeyLog,
}

func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.DatabasePath, "database-path", "d", "",
		`Journal location: a SQLite file, or a directory for --backend=diskv. Default "~/.jotty/v1.db".`)
	f.BoolVarP(&o.Ephemeral, "ephemeral", "e", false,
		"Keep the journal in memory only; nothing is saved.")
	f.StringVar(&o.Backend, "backend", "",
		`Storage backend, one of "sqlite", "diskv" or "memory".`)
	f.StringVar(&o.Log, "log", "",
		"Append logs to this file.")
	cmd.MarkFlagsMutuallyExclusive("database-path", "ephemeral")
}

// Viper returns a viper instance with the store flags bound over the config
// file and environment.
func (o *StoreOptions) Viper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	for name, key := range storeFlags {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}
	if o.Ephemeral {
		v.Set(store.KeyBackend, store.KindMemory)
	}
	return v, nil
}

// Session is an opened journal and its logger.
type Session struct {
	Config  *store.Config
	Journal store.Backend
	Logger  *slog.Logger

	log io.Closer
}

// Open loads the configuration, starts logging and opens the journal.
func (o *StoreOptions) Open(cmd *cobra.Command) (*Session, error) {
	v, err := o.Viper(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := store.LoadConfig(v)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Open(cfg.Log, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	journal, err := store.Load(cfg, store.WithLogger(logger))
	if err != nil {
		logger.Error("open journal", "backend", cfg.Backend, "path", cfg.Path, "err", err)
		_ = closer.Close()
		return nil, err
	}
	logger.Info("journal opened", "backend", cfg.Backend, "path", cfg.Path)
	return &Session{Config: cfg, Journal: journal, Logger: logger, log: closer}, nil
}

// Close closes the journal, then the log.
func (s *Session) Close() error {
	err := s.Journal.Close()
	if err != nil {
		s.Logger.Error("close journal", "err", err)
	}
	return errors.Join(err, s.log.Close())
}
