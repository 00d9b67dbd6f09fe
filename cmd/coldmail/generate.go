package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
	"coldmail/job-application-helper/internal/services"
)

type generateOptions struct {
	jobFile         string
	resumeFile      string
	portfolioFile   string
	tone            string
	format          string
	creativity      int
	personalization int
	summarize       bool
	outFile         string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a cold email and save it as a text file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.jobFile, "job", "j", "", "Path to job description text file (required)")
	cmd.Flags().StringVarP(&opts.resumeFile, "resume", "r", "", "Path to resume (PDF or DOCX)")
	cmd.Flags().StringVarP(&opts.portfolioFile, "portfolio", "p", "", "Path to portfolio/resume text file")
	cmd.Flags().StringVar(&opts.tone, "tone", string(models.Tones[0]), "Email tone: Professional, Friendly, Persuasive or Concise")
	cmd.Flags().StringVar(&opts.format, "format", string(models.EmailFormats[0]), "Email format: \"Formal Letter\" or \"Short Note\"")
	cmd.Flags().IntVar(&opts.creativity, "creativity", models.DefaultCreativity, "Creativity level (0-100)")
	cmd.Flags().IntVar(&opts.personalization, "personalization", models.DefaultPersonalization, "Personalization level (0-100)")
	cmd.Flags().BoolVar(&opts.summarize, "summarize", false, "Print a job description summary before generating")
	cmd.Flags().StringVarP(&opts.outFile, "out", "o", models.ArtifactFilename, "Path to write the generated email")

	if err := cmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	cmd.MarkFlagsOneRequired("resume", "portfolio")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	out := cmd.OutOrStdout()

	jobDescription, err := readTextFile(opts.jobFile, "job description")
	if err != nil {
		return err
	}

	portfolio, err := portfolioText(cmd, opts)
	if err != nil {
		return err
	}

	creativity, personalization := opts.creativity, opts.personalization
	req, err := models.GenerateRequest{
		JobDescription:  jobDescription,
		Portfolio:       portfolio,
		Tone:            opts.tone,
		EmailFormat:     opts.format,
		Creativity:      &creativity,
		Personalization: &personalization,
	}.ToGenerationRequest()
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	completion, err := completionFor(cmd.Context(), root)
	if err != nil {
		return err
	}
	generator := services.NewGeneratorService(completion)

	if opts.summarize {
		summary, err := generator.SummarizeJobDescription(cmd.Context(), jobDescription)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Job Description Summary:\n%s\n\n", summary)
	}

	result, err := generator.GenerateEmail(cmd.Context(), models.NewSession("cli"), req)
	if err != nil {
		return err
	}

	artifact := result.Artifact()
	if err := os.WriteFile(opts.outFile, []byte(artifact), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintln(out, artifact)
	fmt.Fprintf(out, "\nSaved to %s\n", opts.outFile)
	return nil
}

// portfolioText prefers the extracted resume and falls back to the portfolio file.
func portfolioText(cmd *cobra.Command, opts *generateOptions) (string, error) {
	if opts.resumeFile != "" {
		text, err := extractFile(opts.resumeFile)
		if err == nil && text == "" {
			err = apperrors.NewValidation("resume contains no text")
		}
		if err == nil {
			return text, nil
		}
		if opts.portfolioFile == "" {
			return "", err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %v; using --portfolio\n", err)
	}
	return readTextFile(opts.portfolioFile, "portfolio")
}
