package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mhpenta/assist"
	"github.com/spf13/cobra"
)

var chatInteractive bool

var chatCmd = &cobra.Command{
	Use:   "chat <message...>",
	Short: "Send a chat message and print the reply",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 && !chatInteractive {
			fmt.Fprintln(out, "Provide a message.")
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

		if chatInteractive {
			return runInteractiveChat(cmd.Context(), a, cmd.InOrStdin(), out, requestConfig())
		}
		return runChat(cmd.Context(), a, out, strings.Join(args, " "), requestConfig())
	},
}

func init() {
	chatCmd.Flags().BoolVarP(&chatInteractive, "interactive", "i", false,
		"start a multi-turn chat session (exit with 'quit' or Ctrl-D)")
}

func runChat(ctx context.Context, a assist.Assistant, out io.Writer, message string, config *assist.RequestConfig) error {
	result, err := a.Chat(ctx, message, config)
	if err != nil {
		return err
	}
	printReply(out, result)
	return nil
}

func runInteractiveChat(ctx context.Context, a assist.ConversationalAssistant, in io.Reader, out io.Writer, config *assist.RequestConfig) error {
	conv := a.StartConversation()
	prompt := color.New(color.FgCyan).Sprint("> ")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		result, err := conv.Send(ctx, line, nil, config)
		if err != nil {
			return err
		}
		printReply(out, result)
	}
	return scanner.Err()
}
