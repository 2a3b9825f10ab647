package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoriz/internal/results"
	"github.com/abhisek/memoriz/internal/store"
)

// findResult returns the stored result with participant id, searching
// local results before the imported dataset. "latest" selects the most
// recent local result.
func findResult(cmd *cobra.Command, repo store.ResultRepo, id string) (results.TestResult, error) {
	if id == "latest" {
		local, err := repo.Results(cmd.Context())
		if err != nil {
			return results.TestResult{}, fmt.Errorf("load results: %w", err)
		}
		if len(local) == 0 {
			return results.TestResult{}, errors.New("no stored results yet")
		}
		return local[len(local)-1], nil
	}

	for _, load := range []func() ([]results.TestResult, error){
		func() ([]results.TestResult, error) { return repo.Results(cmd.Context()) },
		func() ([]results.TestResult, error) { return repo.Dataset(cmd.Context()) },
	} {
		recs, err := load()
		if err != nil {
			return results.TestResult{}, fmt.Errorf("load results: %w", err)
		}
		for i := len(recs) - 1; i >= 0; i-- {
			if recs[i].ParticipantID == id {
				return recs[i], nil
			}
		}
	}
	return results.TestResult{}, fmt.Errorf("no result with id %q", id)
}
