package tts

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// WriteFile synthesizes text and writes the audio to outputPath. Nothing is
// written when synthesis fails, so a failed run leaves no partial artifact.
func WriteFile(ctx context.Context, c Client, text, outputPath string) error {
	data, err := c.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write audio file %s: %w", outputPath, err)
	}
	log.Info("audio file written", "path", outputPath, "bytes", len(data))
	return nil
}
