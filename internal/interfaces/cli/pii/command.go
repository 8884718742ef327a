package pii

import (
	"fmt"

	"github.com/spf13/cobra"

	"supportarchive/internal/infrastructure/config"
	"supportarchive/internal/pii"
	"supportarchive/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pii",
		Short: "PII masking tools",
		Long:  `Mask personally identifiable information in delimited exports before they leave the trust boundary, and reverse a masking run from its mapping artifact.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newMaskCommand(),
		newUnmaskCommand(),
	)

	return cmd
}

func newMaskCommand() *cobra.Command {
	var (
		input   string
		output  string
		mapping string
	)

	cmd := &cobra.Command{
		Use:   "mask",
		Short: "Mask a delimited export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			masker := pii.NewMaskerFromConfig(&cfg.PII)
			result, err := masker.MaskFile(input, output, mapping)
			if err != nil {
				return err
			}

			logger.Info("masking finished",
				"rows_processed", result.RowsProcessed,
				"total_pii_found", result.TotalFound,
				"output", output,
				"mapping", result.MappingPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (CSV/TSV, delimiter sniffed)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Masked output CSV")
	cmd.Flags().StringVarP(&mapping, "mapping", "m", "", "Mapping artifact path (confidential)")
	must(cmd.MarkFlagRequired("input"))
	must(cmd.MarkFlagRequired("output"))
	must(cmd.MarkFlagRequired("mapping"))
	return cmd
}

func newUnmaskCommand() *cobra.Command {
	var (
		input   string
		output  string
		mapping string
	)

	cmd := &cobra.Command{
		Use:   "unmask",
		Short: "Reverse a masking run using its mapping artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(); err != nil {
				return err
			}

			unmasker, err := pii.NewUnmaskerFromFile(mapping)
			if err != nil {
				return fmt.Errorf("failed to load mapping: %w", err)
			}

			cells, err := unmasker.UnmaskFile(input, output)
			if err != nil {
				return err
			}

			logger.Info("unmasking finished",
				"tokens_known", unmasker.TokenCount(),
				"cells_processed", cells,
				"output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Masked input CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Restored output CSV")
	cmd.Flags().StringVarP(&mapping, "mapping", "m", "", "Mapping artifact from the masking run")
	must(cmd.MarkFlagRequired("input"))
	must(cmd.MarkFlagRequired("output"))
	must(cmd.MarkFlagRequired("mapping"))
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

func must(err error) {
	if err != nil {
		panic(err)
	}
}
