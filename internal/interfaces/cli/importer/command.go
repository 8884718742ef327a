package importer

import (
	"fmt"

	"github.com/spf13/cobra"

	"supportarchive/internal/importer"
	"supportarchive/internal/infrastructure/config"
	"supportarchive/internal/infrastructure/database"
	"supportarchive/internal/shared/logger"
)

var (
	env       string
	batchSize int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Offline import tools",
		Long:  `Rebuild the archive, knowledge-base, and help stores from exported source files. Each import atomically replaces its store.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().IntVar(&batchSize, "batch-size", 0, "Rows per insert batch (0 uses the configured default)")

	cmd.AddCommand(
		newTicketsCommand(),
		newCannedCommand(),
		newHelpCommand(),
	)

	return cmd
}

func newTicketsCommand() *cobra.Command {
	var csvPaths []string

	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Import ticket action exports into the archive store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			paths := csvPaths
			if len(paths) == 0 {
				paths = cfg.Importer.ActionCSVPaths
			}
			if len(paths) == 0 {
				return fmt.Errorf("no action CSV paths given (flag --csv or importer.action_csv_paths)")
			}

			db, err := database.OpenReadWrite(cfg.Database.ArchivePath)
			if err != nil {
				return fmt.Errorf("failed to open archive store: %w", err)
			}

			result, err := importer.ImportActions(db, paths, effectiveBatchSize(cfg))
			if err != nil {
				return err
			}
			logger.Info("ticket import finished",
				"files_loaded", result.FilesLoaded,
				"files_missing", result.FilesMissing,
				"rows_loaded", result.RowsLoaded,
				"rows_visible", result.RowsVisible,
				"rows_skipped", result.RowsSkipped,
				"tickets", result.TicketsWritten,
				"messages", result.MessagesWritten)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&csvPaths, "csv", nil, "Action export CSV files (repeatable)")
	return cmd
}

func newCannedCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "canned",
		Short: "Import the canned-response export into the knowledge-base store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.Importer.CannedPath
			}
			if path == "" {
				return fmt.Errorf("no canned-response export given (flag --file or importer.canned_path)")
			}

			db, err := database.OpenReadWrite(cfg.Database.KBPath)
			if err != nil {
				return fmt.Errorf("failed to open kb store: %w", err)
			}

			result, err := importer.ImportCanned(db, path, effectiveBatchSize(cfg))
			if err != nil {
				return err
			}
			logger.Info("knowledge-base import finished",
				"imported", result.Imported,
				"skipped", result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "Canned-response export file (CSV or TSV)")
	return cmd
}

func newHelpCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "help-articles",
		Short: "Import help-center JSON documents into the help store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Importer.HelpArticleDir
			}
			if dir == "" {
				return fmt.Errorf("no help-article directory given (flag --dir or importer.help_article_dir)")
			}

			db, err := database.OpenReadWrite(cfg.Database.HelpPath)
			if err != nil {
				return fmt.Errorf("failed to open help store: %w", err)
			}

			result, err := importer.ImportHelp(db, dir, effectiveBatchSize(cfg))
			if err != nil {
				return err
			}
			logger.Info("help-article import finished",
				"imported", result.Imported,
				"skipped", result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory of help-article JSON documents")
	return cmd
}

func setup() (*config.Config, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

func effectiveBatchSize(cfg *config.Config) int {
	if batchSize > 0 {
		return batchSize
	}
	return cfg.Importer.BatchSize
}
