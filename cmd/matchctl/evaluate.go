package main

import (
	"fmt"

	"listing_exchange/internal/lib/criteriaform"
	"listing_exchange/internal/services/matching"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Count listings matching one criteria record",
	Long:  "Reads a JSON array of listing forms and one criteria form, prints the matching listings in input order together with the listings that could not be evaluated.",
	RunE:  runEvaluate,
}

var (
	evaluateListings    string
	evaluateCriteria    string
	evaluatePerspective string
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateListings, "listings", "l", "", "Path to JSON array of listings (required)")
	evaluateCmd.Flags().StringVarP(&evaluateCriteria, "criteria", "c", "", "Path to JSON criteria record (required)")
	evaluateCmd.Flags().StringVarP(&evaluatePerspective, "perspective", "p", "hot-sheet", "hot-sheet or reverse-prospecting")

	if err := evaluateCmd.MarkFlagRequired("listings"); err != nil {
		panic(fmt.Sprintf("failed to mark listings flag as required: %v", err))
	}
	if err := evaluateCmd.MarkFlagRequired("criteria"); err != nil {
		panic(fmt.Sprintf("failed to mark criteria flag as required: %v", err))
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	p, err := matching.ParsePerspective(evaluatePerspective)
	if err != nil {
		return err
	}

	var form criteriaform.CriteriaForm
	if err := readJSON(evaluateCriteria, &form); err != nil {
		return err
	}
	var forms []criteriaform.ListingForm
	if err := readJSON(evaluateListings, &forms); err != nil {
		return err
	}

	c, err := criteriaFor(p)(form)
	if err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}

	batch := criteriaform.ParseBatch(forms, criteriaform.ListingForm.Listing)
	res, err := matching.CountListings(c, batch.Records, p)
	if err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}

	return writeReport(cmd.OutOrStdout(), newReport(p, batch.Merge(res), summarizeListing))
}
