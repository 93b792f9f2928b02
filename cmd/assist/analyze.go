package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mhpenta/assist"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze-image <path>",
	Short: "Describe a local image and list notable objects",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			fmt.Fprintln(out, "Usage: assist analyze-image <path>")
			return exitCodeError{exitError}
		}
		if err := requireAPIKey(out); err != nil {
			return err
		}

		a, err := newAssistant(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return runAnalyzeImage(cmd.Context(), a, out, args[0], requestConfig())
	},
}

func runAnalyzeImage(ctx context.Context, a assist.Assistant, out io.Writer, path string, config *assist.RequestConfig) error {
	image, err := loadInputImage(out, path)
	if err != nil {
		return err
	}

	result, err := a.DescribeImage(ctx, image, config)
	if err != nil {
		return err
	}
	printReply(out, result)
	return nil
}

// loadInputImage reads a local image file. A missing file is a recoverable
// user error: the message is printed and exit code 1 returned.
func loadInputImage(out io.Writer, path string) (assist.InputImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(out, "File not found: %s\n", path)
			return assist.InputImage{}, exitCodeError{exitError}
		}
		return assist.InputImage{}, err
	}
	return assist.InputImage{
		Data:     data,
		MIMEType: assist.MIMETypeFromPath(path),
	}, nil
}
