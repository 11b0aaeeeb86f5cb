package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sebasblancogonz/bulkup/internal/config"
	"github.com/sebasblancogonz/bulkup/internal/engine"
	"github.com/sebasblancogonz/bulkup/internal/remote"
	"github.com/sebasblancogonz/bulkup/internal/session"
	"github.com/sebasblancogonz/bulkup/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "bulkup",
	Short: "Weekly training weight tracker with offline-first sync",
}

var verbose bool

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cobra.OnInitialize(func() {
		logrus.SetLevel(logrus.WarnLevel)
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	})
}

// newEngine wires the sync engine with its real collaborators: local libsql
// store, remote HTTP client and the session from the environment.
func newEngine() (*engine.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("Failed to load config (run 'bulkup init' first?): %w", err)
	}

	sess, err := session.Load()
	if err != nil {
		return nil, err
	}

	st, err := storage.NewStorage()
	if err != nil {
		return nil, err
	}

	client := remote.NewClient(cfg.API.BaseURL, sess.APIToken)
	return engine.New(st, client, st, sess.UserID, cfg.Sync.LookbackWeeks), nil
}
