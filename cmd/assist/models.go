package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mhpenta/assist"
	"github.com/mhpenta/assist/provider/gemini"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models and their capabilities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Static metadata; no API key or network call needed.
		return runModels(cmd.OutOrStdout(), []assist.ModelInfo{
			gemini.FlashInfo,
			gemini.FlashImageInfo,
			gemini.ProImageInfo,
		})
	},
}

func runModels(out io.Writer, models []assist.ModelInfo) error {
	bold := color.New(color.Bold)
	for _, m := range models {
		bold.Fprintln(out, m.Name)
		fmt.Fprintf(out, "  provider: %s\n", m.Provider)
		fmt.Fprintf(out, "  api name: %s\n", m.APIModelName)
		fmt.Fprintf(out, "  capabilities: %s\n", strings.Join(capabilityNames(m.Capabilities), ", "))
	}
	return nil
}

func capabilityNames(c assist.ModelCapabilities) []string {
	var names []string
	if c.SupportsChat {
		names = append(names, "chat")
	}
	if c.SupportsVision {
		names = append(names, "vision")
	}
	if c.SupportsImageOutput {
		names = append(names, "image output")
	}
	if c.SupportsConversation {
		names = append(names, "conversation")
	}
	return names
}
