package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alchemy/internal/app"
	"alchemy/internal/config"
	"alchemy/internal/render"
)

// Version is set at build time with -ldflags "-X alchemy/cmd.Version=...".
var Version = "dev"

var (
	cfgFile     string
	outputFlag  string // bound to output.format
	queryFlag   string
	outputFmt   = render.FormatTable
	loadedCfg   *config.Config
	skipAppInit = map[string]bool{"help": true, "version": true, "doctor": true, "completion": true}
)

var rootCmd = &cobra.Command{
	Use:   "alchemy",
	Short: "Watson Alchemy CLI",
	Long: `alchemy calls the IBM Watson AlchemyLanguage, AlchemyData News and
Language Translation services, keeps a history of every call and can run
as an HTTP API or a background worker.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is given, print help.
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		loadedCfg = cfg

		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("invalid log.level %q: %w", cfg.Log.Level, err)
		}
		log.SetLevel(level)
		log.SetOutput(os.Stderr)

		if skipAppInit[cmd.Name()] {
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if outputFmt, err = render.ParseFormat(cfg.Output.Format); err != nil {
			return err
		}

		appInstance, err := app.NewApp(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store the app instance in the command's context
		cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if appInstance, err := GetAppFromContext(cmd.Context()); err == nil {
			return appInstance.Close()
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Define a custom type for the context key to avoid collisions.
type contextKey string

const appKey contextKey = "app"

// Helper function to retrieve the app instance from context
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		// This should not happen if PersistentPreRunE ran successfully
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml or ~/.alchemy/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&queryFlag, "query", "", "JSONPath expression applied to the result, e.g. '$.keywords[*].text'")
	// An explicit --output wins over output.format from the config file or environment.
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))

	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and database connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		fmt.Fprint(out, "Checking configuration... ")
		if err := loadedCfg.Validate(); err != nil {
			fmt.Fprintln(out, render.Status("failed"))
			return err
		}
		fmt.Fprintln(out, render.Status("OK"))

		appInstance, err := app.NewApp(ctx, loadedCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		defer appInstance.Close()

		fmt.Fprint(out, "Checking database connectivity... ")
		if err := appInstance.Results.Ping(ctx); err != nil {
			fmt.Fprintln(out, render.Status("failed"))
			return fmt.Errorf("database ping failed: %w", err)
		}
		fmt.Fprintln(out, render.Status("OK"))

		if appInstance.JobClient == nil {
			fmt.Fprintln(out, "Background jobs: disabled (redis.address is empty)")
		} else {
			fmt.Fprintf(out, "Background jobs: redis at %s\n", loadedCfg.Redis.Address)
		}
		return nil
	},
}
