package cli

import (
	"github.com/rileyhilliard/nerdminer/internal/config"
	"github.com/spf13/cobra"
)

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration nerdminer would run with, after merging
defaults, NERDMINER_* environment variables, the config file and flags.

The output is valid YAML and can be saved as a starting config:

  nerdminer config > .nerdminer.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
