package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/kairu/internal/store"
	"github.com/mesh-intelligence/kairu/pkg/types"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	StaleDays int    `yaml:"stale_days,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize kairu storage",
		Long: "Record the resolved backend and data directory in config.yaml, then\n" +
			"create the store so later commands find it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := filepath.Join(a.configDir, configFileExt)
			if err := writeConfig(configPath, a.cfg); err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}

			st, err := store.Open(a.cfg, a.logger)
			if err != nil {
				return sysError(fmt.Errorf("initialize storage: %w", err))
			}
			defer st.Close()

			state, err := st.Load()
			if err != nil {
				return sysError(fmt.Errorf("load storage: %w", err))
			}
			if err := st.Save(state); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Kairu initialized.\nconfig: %s\nstore:  %s\n", configPath, st.Path())
			return nil
		},
	}
}

// writeConfig records cfg in config.yaml, replacing the first-run default.
func writeConfig(path string, cfg types.Config) error {
	data, err := yaml.Marshal(&configFile{
		Backend:   cfg.Backend,
		DataDir:   cfg.DataDir,
		LogLevel:  cfg.LogLevel,
		StaleDays: cfg.StaleDays,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
