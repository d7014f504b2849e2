package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/punchamoorthee/catalogops/internal/config"
	"github.com/punchamoorthee/catalogops/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	domainName string
	baseURL    string
	verbose    bool

	clientCfg *config.ClientConfig
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse and edit the countries and planets collections",
	Long: `catalog loads a remote record collection and lets you list, sort,
create, update and delete its records, from the command line or an
interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		var err error
		clientCfg, err = config.LoadClient()
		if err != nil {
			return err
		}
		if baseURL != "" {
			clientCfg.BaseURL = baseURL
		}

		// The TUI owns the terminal, so it gets no log output.
		if cmd == tuiCmd {
			logger = zap.NewNop()
			return nil
		}
		level := clientCfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&domainName, "domain", "d", "countries", "Collection to work on: countries | planets")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Server base URL (overrides CATALOG_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	listCmd.Flags().Bool("sort", false, "Sort by rank, highest first")
	exportCmd.Flags().Bool("sort", false, "Sort by rank, highest first")
	createCmd.Flags().StringArrayP("set", "s", nil, "Field value as key=value (repeatable)")
	updateCmd.Flags().StringArrayP("set", "s", nil, "Field value as key=value (repeatable)")

	rootCmd.AddCommand(listCmd, showCmd, createCmd, updateCmd, deleteCmd, exportCmd, tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
