package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"coldmail/job-application-helper/internal/models"
	"coldmail/job-application-helper/internal/services"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the plain text of a PDF or DOCX resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := extractFile(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

// extractFile picks the document kind from the file extension.
func extractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}

	doc := &models.ExtractedDocument{
		Filename: filepath.Base(path),
		Kind:     models.DetectKind("", path),
		RawBytes: data,
	}
	if err := services.ExtractUpload(services.NewDocumentExtractor(), doc); err != nil {
		return "", fmt.Errorf("could not read text from %s, paste it with --portfolio instead: %w", doc.Filename, err)
	}
	return doc.Text, nil
}
