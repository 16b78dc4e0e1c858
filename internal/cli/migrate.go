package cli

import (
	"fmt"

	"github.com/deppfellow/roundtrip/internal/config"
	"github.com/deppfellow/roundtrip/internal/database"
	"github.com/deppfellow/roundtrip/internal/logger"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded postgres migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.Database == nil {
				return fmt.Errorf("migrate needs the database block (ROUNDTRIP_DATABASE.*)")
			}

			log := logger.NewLogger(cfg.Observability)
			return database.Migrate(cmd.Context(), &log, cfg)
		},
	}
}
