// Package cli implements the realmctl operator commands.
package cli

import (
	"fmt"

	"github.com/pageza/recipe-realm/backend/config"
	"github.com/pageza/recipe-realm/backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runtime is loaded once per invocation by the root command
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "realmctl",
		Short:         "Recipe Realm server and maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logger.New(logger.Config{
				Level:       cfg.LogLevel,
				Format:      cfg.LogFormat,
				Development: cfg.Env == config.Development,
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			rt.cfg, rt.logger = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	root.AddCommand(newServeCmd(rt), newMigrateCmd(rt), newSeedCmd(rt))
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
