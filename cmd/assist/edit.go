package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mhpenta/assist"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit-image <path> <instruction...>",
	Short: "Edit a local image using a text instruction",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: assist edit-image <path> <instruction>")
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
		return runEditImage(cmd.Context(), a, store, out, args[0], strings.Join(args[1:], " "), imageRequestConfig(), time.Now)
	},
}

func init() {
	addImageFlags(editCmd)
}

func runEditImage(ctx context.Context, a assist.Assistant, store assist.ImageStore, out io.Writer, path, instruction string, config *assist.RequestConfig, now func() time.Time) error {
	image, err := loadInputImage(out, path)
	if err != nil {
		return err
	}

	result, err := a.EditImage(ctx, image, instruction, config)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Fprintf(out, "Image edit request failed: %v\n", err)
		return exitCodeError{exitError}
	}
	return saveImageResult(ctx, store, out, result, now)
}
