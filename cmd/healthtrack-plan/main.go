package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/claude/healthtrack/internal/catalog"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/upload"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "healthtrack-plan",
		Short: "Work with weekly exercise plan files",
		Long: `healthtrack-plan parses generated exercise plans into structured days,
fills exercise details from the HealthTrack catalog and uploads plan
files to a HealthTrack server.

Plan files are markdown with "## Day N" headings and bold exercise names.
Use "-" as the file name to read from stdin.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	logger := func() *slog.Logger {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	cmd.AddCommand(parseCmd(), enrichCmd(logger), namesCmd(), uploadCmd(logger))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "healthtrack-plan version %s\n", Version)
		},
	})

	return cmd
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Print a plan file as structured JSON days",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPlan(cmd, args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), plan.Parse(text))
		},
	}
}

func enrichCmd(logger func() *slog.Logger) *cobra.Command {
	var (
		envName    string
		catalogURL string
	)

	cmd := &cobra.Command{
		Use:   "enrich [file]",
		Short: "Parse a plan file and fill exercise details from a catalog",
		Long: `Parse a plan file and match every exercise against the exercise catalog.
Without --catalog-url the built-in catalog is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := plan.ParseEnvironment(envName)
			if err != nil {
				return err
			}
			text, err := readPlan(cmd, args)
			if err != nil {
				return err
			}

			var src plan.CatalogSource = catalog.Static{}
			if catalogURL != "" {
				src = catalog.NewHTTPClient(catalogURL)
			}
			days := plan.Parse(text)
			if len(days) == 0 {
				logger().Warn("no day headings found")
			}
			return printJSON(cmd.OutOrStdout(), plan.Enrich(cmd.Context(), days, env, src))
		},
	}
	cmd.Flags().StringVarP(&envName, "environment", "e", string(plan.Gym), "Catalog environment (home or gym)")
	cmd.Flags().StringVar(&catalogURL, "catalog-url", os.Getenv("HEALTHTRACK_SERVER_URL"), "HealthTrack server to read the catalog from")
	return cmd
}

func namesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "names [file]",
		Short: "List the distinct bold exercise names in a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPlan(cmd, args)
			if err != nil {
				return err
			}
			for _, name := range plan.BoldNames(text, limit) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of names (0 for all)")
	return cmd
}

func uploadCmd(logger func() *slog.Logger) *cobra.Command {
	var (
		serverURL string
		apiKey    string
		envName   string
		stateDir  string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file or dir>...",
		Short: "Save plan files as the current home or gym plan on the server",
		Long: `Upload plan files to a HealthTrack server. Directories are searched for
.md, .markdown and .txt files. The environment comes from --environment or,
when unset, from the file name ("gym" or "home"). Files already uploaded
with the same content are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()

			var env plan.Environment
			if envName != "" {
				var err error
				if env, err = plan.ParseEnvironment(envName); err != nil {
					return err
				}
			}
			if !dryRun && (serverURL == "" || apiKey == "") {
				return fmt.Errorf("--server and --api-key are required (or use --dry-run)")
			}

			if stateDir == "" {
				homeDir, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}
				stateDir = filepath.Join(homeDir, ".healthtrack-plan")
			}
			state, err := upload.OpenStateDB(stateDir)
			if err != nil {
				return err
			}
			defer state.Close()

			if dryRun {
				log.Info("DRY RUN mode: files will be parsed but not sent")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stats, err := upload.New(upload.NewClient(serverURL, apiKey), state, env, dryRun, log).Run(ctx, args)
			log.Info("upload complete",
				"files_total", stats.FilesTotal,
				"files_uploaded", stats.FilesUploaded,
				"files_skipped", stats.FilesSkipped,
				"files_errored", stats.FilesErrored,
				"days_parsed", stats.DaysParsed,
			)
			if err != nil {
				return err
			}
			if stats.FilesErrored > 0 {
				return fmt.Errorf("%d file(s) failed", stats.FilesErrored)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", os.Getenv("HEALTHTRACK_SERVER_URL"), "HealthTrack server URL")
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("HEALTHTRACK_API_KEY"), "API key for write endpoints")
	cmd.Flags().StringVarP(&envName, "environment", "e", "", "Force the environment of every file (home or gym)")
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "Upload state directory (default ~/.healthtrack-plan)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse files but do not send them")
	return cmd
}

// readPlan reads the named file, or stdin when no file or "-" is given.
func readPlan(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading plan: %w", err)
	}
	return string(data), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
