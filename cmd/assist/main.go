// Command assist is a small command-line front-end to Google's Gemini API:
// text chat, image description, image generation, and image editing.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(Execute(ctx))
}
