package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mhpenta/assist"
	"github.com/mhpenta/assist/provider/gemini"
	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	exitOK        = 0
	exitError     = 1   // user or recoverable error
	exitConfig    = 2   // missing configuration
	exitInterrupt = 130 // interrupted
)

// exitCodeError carries a process exit status through cobra. Commands that
// have already printed their message return one of these; Execute maps it
// to the exit code without further output.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

var (
	modelFlag    string
	logLevelFlag string
	logger       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "assist",
	Short: "Command-line assistant for Google's Gemini API",
	Long: `assist is a command-line assistant for Google's Gemini API.

Examples:
  $ assist chat "Explain quantum computing"
  $ assist analyze-image photo.jpg
  $ assist generate-image "a lighthouse in a storm"
  $ assist edit-image photo.jpg "make the sky dramatic"

Requires a GEMINI_API_KEY environment variable.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// No subcommand given: show usage, exit 1.
		_ = cmd.Help()
		return exitCodeError{exitError}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "",
		"model to use (e.g. 'gemini-2.5-flash', 'gemini-2.5-flash-image')")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(modelsCmd)
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ec exitCodeError
	if errors.As(err, &ec) {
		return ec.code
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupt
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitError
}

func setupLogger() {
	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      parseLogLevel(logLevelFlag),
		TimeFormat: time.Kitchen,
	}))
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// requireAPIKey verifies GEMINI_API_KEY is set, printing guidance and
// returning exit code 2 when it is not.
func requireAPIKey(out io.Writer) error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Fprintln(out, "Error: GEMINI_API_KEY is not set. Set it in your shell and try again.")
		fmt.Fprintln(out, `Example: export GEMINI_API_KEY="YOUR_API_KEY"`)
		return exitCodeError{exitConfig}
	}
	return nil
}

func newAssistant(ctx context.Context) (*gemini.GeminiAssistant, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	return gemini.New(ctx, &assist.ProviderConfig{
		APIKey: apiKey,
		Logger: logger,
	})
}

func requestConfig() *assist.RequestConfig {
	cfg := assist.DefaultConfig()
	if modelFlag != "" {
		cfg.Model = assist.Model(modelFlag)
	}
	return cfg
}

// printReply prints a chat-style result, falling back to a placeholder when
// the model returned no usable text.
func printReply(out io.Writer, result *assist.ChatResult) {
	if result == nil || result.Text == "" {
		fmt.Fprintln(out, "(no response)")
		return
	}
	fmt.Fprintln(out, result.Text)
}
