package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mhpenta/assist"
	"github.com/spf13/cobra"
)

var (
	aspectRatioFlag string
	sizeFlag        string
	outputDirFlag   string
)

var generateCmd = &cobra.Command{
	Use:   "generate-image <prompt...>",
	Short: "Generate an image from a text prompt",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			fmt.Fprintln(out, "Usage: assist generate-image <prompt>")
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

		store := &assist.DirStore{Root: outputDirFlag}
		return runGenerateImage(cmd.Context(), a, store, out, strings.Join(args, " "), imageRequestConfig(), time.Now)
	},
}

func init() {
	addImageFlags(generateCmd)
}

func addImageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&aspectRatioFlag, "aspect-ratio", "", "aspect ratio (e.g. '1:1', '16:9')")
	cmd.Flags().StringVar(&sizeFlag, "size", "", "image size ('1K', '2K', '4K')")
	cmd.Flags().StringVar(&outputDirFlag, "output-dir", assist.DefaultOutputDir, "directory for saved images")
}

func imageRequestConfig() *assist.RequestConfig {
	cfg := requestConfig()
	cfg.AspectRatio = assist.AspectRatio(aspectRatioFlag)
	cfg.Size = assist.ImageSize(sizeFlag)
	return cfg
}

func runGenerateImage(ctx context.Context, a assist.Assistant, store assist.ImageStore, out io.Writer, prompt string, config *assist.RequestConfig, now func() time.Time) error {
	result, err := a.GenerateImage(ctx, prompt, config)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Fprintf(out, "Image generation request failed: %v\n", err)
		return exitCodeError{exitError}
	}
	return saveImageResult(ctx, store, out, result, now)
}

// saveImageResult writes the first returned image and reports the path.
// Zero extracted images is a normal negative outcome, not an internal
// error: the fixed message is printed and exit code 1 returned.
func saveImageResult(ctx context.Context, store assist.ImageStore, out io.Writer, result *assist.GenerateResult, now func() time.Time) error {
	path, err := assist.SaveFirstImage(ctx, store, result, now())
	if err != nil {
		if errors.Is(err, assist.ErrNoImage) {
			fmt.Fprintln(out, "No image returned. Check API key, model access, and quota.")
			return exitCodeError{exitError}
		}
		return err
	}
	color.New(color.FgGreen).Fprintf(out, "Saved: %s\n", path)
	return nil
}
