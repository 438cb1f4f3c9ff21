package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/karthiknish/aroosi-swift-sub004/internal/catalog"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain/scoring"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "compatctl",
		Short:         "Inspect compatibility catalogs and score responses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("catalog", "", "path to a catalog YAML file (default: embedded catalog)")

	root.AddCommand(newCatalogCmd(), newScoreCmd())
	return root
}

func newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with questionnaire catalogs",
	}

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate a catalog and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "catalog %s: %d categories, %d questions\n",
				c.Version(), len(c.Categories()), c.TotalQuestions())
			for _, cat := range c.Categories() {
				fmt.Fprintf(out, "  %-16s weight=%.3f questions=%d\n", cat.ID, cat.Weight, len(cat.Questions))
			}

			if !c.WeightsNormalized(catalog.DefaultWeightTolerance) {
				fmt.Fprintf(out, "warning: category weights sum to %.4f, not 1\n", c.WeightSum())
			}
			return nil
		},
	})

	return catalogCmd
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score RESPONSE1.json RESPONSE2.json",
		Short: "Score two saved questionnaire responses",
		Long: "Score two saved questionnaire responses against the catalog and print\n" +
			"the compatibility score as JSON. Each file holds a response object with\n" +
			"user_id and responses fields.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			svc, err := scoring.NewDefaultService(c.Categories())
			if err != nil {
				return fmt.Errorf("failed to create scoring service: %w", err)
			}

			resp1, err := readResponse(args[0])
			if err != nil {
				return err
			}
			resp2, err := readResponse(args[1])
			if err != nil {
				return err
			}

			score, err := svc.OverallScore(resp1, resp2, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("failed to score responses: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(score)
		},
	}
}

func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func readResponse(path string) (*domain.CompatibilityResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read response file: %w", err)
	}

	var resp domain.CompatibilityResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid response in %s: %w", path, err)
	}
	return &resp, nil
}
