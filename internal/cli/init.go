package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/trove/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var storage string
	var dataDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the trove home directory",
		Long: `Write config.json into the trove home directory (~/.trove, or
$TROVE_HOME if set) and choose the storage backend:
- json:   one JSON file per collection (default)
- sqlite: all collections in a single SQLite database`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !config.IsValidStorage(storage) {
				return fmt.Errorf("invalid storage backend: %s (valid: %s, %s)",
					storage, config.StorageJSON, config.StorageSQLite)
			}

			home, err := config.Home()
			if err != nil {
				return err
			}

			cfg := config.Default()
			cfg.Storage = storage
			cfg.DataDir = dataDir
			if err := config.SaveConfig(home, cfg); err != nil {
				return err
			}

			fmt.Printf("✓ Initialized trove at %s\n", home)
			fmt.Printf("  Storage: %s\n", cfg.Storage)
			fmt.Printf("  Data:    %s\n", cfg.DataDirPath(home))
			return nil
		},
	}

	cmd.Flags().StringVar(&storage, "storage", config.StorageJSON, "Storage backend (json or sqlite)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Override the data directory")
	return cmd
}
