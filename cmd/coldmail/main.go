// Package main implements the coldmail CLI for generating cold emails from local files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coldmail/job-application-helper/internal/config"
	"coldmail/job-application-helper/internal/services"
)

// newCompletion is replaced in tests.
var newCompletion = func(ctx context.Context, cfg *config.Config) (services.CompletionService, error) {
	return services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:        cfg.Gemini.APIKey,
		Model:         cfg.Gemini.Model,
		MaxConcurrent: cfg.Gemini.MaxConcurrent,
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	apiKey string
	model  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "coldmail",
		Short:         "Generate tailored cold emails from a job description and a resume",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	cmd.PersistentFlags().StringVar(&opts.model, "model", "", "Gemini model name (overrides GEMINI_MODEL env var)")

	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newSummarizeCmd(opts))
	cmd.AddCommand(newGenerateCmd(opts))

	return cmd
}

// completionFor loads configuration, applies flag overrides and validates the result.
func completionFor(ctx context.Context, opts *rootOptions) (services.CompletionService, error) {
	cfg := config.Load()
	if opts.apiKey != "" {
		cfg.Gemini.APIKey = opts.apiKey
	}
	if opts.model != "" {
		cfg.Gemini.Model = opts.model
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newCompletion(ctx, cfg)
}

func readTextFile(path, what string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s file: %w", what, err)
	}
	return string(content), nil
}
