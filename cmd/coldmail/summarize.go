package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"coldmail/job-application-helper/internal/services"
)

func newSummarizeCmd(root *rootOptions) *cobra.Command {
	var jobFile string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a job description in 3-4 bullet points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobDescription, err := readTextFile(jobFile, "job description")
			if err != nil {
				return err
			}

			completion, err := completionFor(cmd.Context(), root)
			if err != nil {
				return err
			}

			summary, err := services.NewGeneratorService(completion).SummarizeJobDescription(cmd.Context(), jobDescription)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)
			return err
		},
	}

	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to job description text file (required)")
	if err := cmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	return cmd
}
