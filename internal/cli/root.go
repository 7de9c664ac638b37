package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/nerdminer/internal/config"
	"github.com/rileyhilliard/nerdminer/internal/logger"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile    string
	noColor    bool
	debugFlag  bool
	plainFlag  bool
	statusAddr string
)

// rootCmd runs the dashboard
var rootCmd = &cobra.Command{
	Use:   "nerdminer",
	Short: "Simulated NerdMiner dashboard for your terminal",
	Long: `NerdMiner emulates a small solo-mining appliance in the terminal.

It runs a synthetic hashing workload, shows hashrate, shares and a rate
graph, and enriches the screen with live Bitcoin price, block height and
difficulty. Two emulated buttons drive it:

  p      power: screen on/off
  v v    volume double press: start/stop mining
  r      refresh network data now
  q      quit

Examples:
  nerdminer
  nerdminer --plain --no-color
  nerdminer --status-addr 127.0.0.1:8088`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			logger.SetDebug(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return dashboardCommand(cmd.Context(), cfg, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .nerdminer.yaml, then ~/.config/nerdminer/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&plainFlag, "plain", false, "use the plain terminal front end instead of the TUI")
	rootCmd.PersistentFlags().StringVar(&statusAddr, "status-addr", "", "status API address (e.g. 127.0.0.1:8088); the dashboard serves on it, doctor checks it")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the dashboard,
// which still stops mining and prints its shutdown messages.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the config file and layers flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config) {
	if plainFlag {
		cfg.Display.Mode = config.ModePlain
	}
	if noColor {
		cfg.Display.Color = config.ColorNever
	}
	if statusAddr != "" {
		cfg.Status.Addr = statusAddr
	}
}
