package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tool-directory/pkg/cli"
	"tool-directory/pkg/config"
	"tool-directory/pkg/logger"
	"tool-directory/pkg/models"
)

var (
	mode  string
	debug bool

	// Set up in PersistentPreRunE.
	app *cli.App
	log *zap.SugaredLogger

	draft models.Draft
)

var rootCmd = &cobra.Command{
	Use:   "tool-directory",
	Short: "Submit tools and apps to the directory",
	Long: `tool-directory is a terminal client for the tool directory.

Run without a subcommand to open the interactive submission form. In
simulate mode submissions go to a local simulator that answers after a
short delay; in api mode they are posted to the directory API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.ConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.LoadFrom(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err = logger.New(logger.Options{
			Dir:   cfg.Log.Dir,
			Name:  "cli",
			Debug: debug || cfg.Log.Debug,
		})
		if err != nil {
			return err
		}

		app = cli.NewApp(cfg, cfgPath, log)
		if mode != "" {
			return app.SetMode(mode)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context())
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a tool without the interactive form",
	Example: `  tool-directory submit --name ripgrep --url github.com/BurntSushi/ripgrep \
    --description "Recursively search directories for a regex" \
    --tags "cli, search" --date 2024-01-15`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Submit(cmd.Context(), draft)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tools in the directory (api mode)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ListTools(cmd.Context())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ShowConfig()
	},
}

var configSetCmd = &cobra.Command{
	Use:     "set section.key=value",
	Short:   "Set a config value",
	Example: "  tool-directory config set simulator.policy=fixed-duplicate",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.SetConfig(args[0]); err != nil {
			return fmt.Errorf("failed to set config: %w", err)
		}
		logger.Log("config updated: %s", args[0])
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration updated successfully")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "Submission mode: simulate or api (default from config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	submitCmd.Flags().StringVar(&draft.Name, "name", "", "App name")
	submitCmd.Flags().StringVar(&draft.URL, "url", "", "App URL")
	submitCmd.Flags().StringVar(&draft.Description, "description", "", "What the app does (10+ characters)")
	submitCmd.Flags().StringVar(&draft.Tags, "tags", "", "Comma-separated tags")
	submitCmd.Flags().StringVar(&draft.Date, "date", "", "Date added (yyyy-MM-dd)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.LogError(err, "command failed")
		logger.Sync()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
