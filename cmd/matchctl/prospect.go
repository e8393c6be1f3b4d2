package main

import (
	"fmt"

	"listing_exchange/internal/lib/criteriaform"
	"listing_exchange/internal/services/matching"

	"github.com/spf13/cobra"
)

var prospectCmd = &cobra.Command{
	Use:   "prospect",
	Short: "Find buyer needs a listing satisfies",
	Long:  "Reverse prospecting: reads one listing form and a JSON array of buyer needs, prints the needs the listing satisfies in input order.",
	RunE:  runProspect,
}

var (
	prospectListing string
	prospectNeeds   string
)

func init() {
	prospectCmd.Flags().StringVarP(&prospectListing, "listing", "l", "", "Path to JSON listing (required)")
	prospectCmd.Flags().StringVarP(&prospectNeeds, "needs", "n", "", "Path to JSON array of buyer needs (required)")

	if err := prospectCmd.MarkFlagRequired("listing"); err != nil {
		panic(fmt.Sprintf("failed to mark listing flag as required: %v", err))
	}
	if err := prospectCmd.MarkFlagRequired("needs"); err != nil {
		panic(fmt.Sprintf("failed to mark needs flag as required: %v", err))
	}

	rootCmd.AddCommand(prospectCmd)
}

func runProspect(cmd *cobra.Command, _ []string) error {
	const p = matching.ReverseProspecting

	var form criteriaform.ListingForm
	if err := readJSON(prospectListing, &form); err != nil {
		return err
	}
	var forms []criteriaform.CriteriaForm
	if err := readJSON(prospectNeeds, &forms); err != nil {
		return err
	}

	l, err := form.Listing()
	if err != nil {
		return fmt.Errorf("invalid listing: %w", err)
	}

	batch := criteriaform.ParseBatch(forms, criteriaFor(p))
	res, err := matching.CountCriteria(l, batch.Records, p)
	if err != nil {
		return fmt.Errorf("invalid listing: %w", err)
	}

	return writeReport(cmd.OutOrStdout(), newReport(p, batch.Merge(res), summarizeNeed))
}
