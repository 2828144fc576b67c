// Command readaloud extracts an article from a page in a running browser and
// turns it into a speech audio file.
//
// It attaches to the browser over the remote-debugging protocol, so the
// browser must already be running with --remote-debugging-port=9222. A
// Coqui-style TTS server must be listening for the synthesis step.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"

	"readaloud/internal/browser"
	"readaloud/internal/config"
	"readaloud/internal/extract"
	"readaloud/internal/pipeline"
	"readaloud/internal/tts"
)

const connectHelp = `
Please ensure:
  1. Your browser is running
  2. It was started with --remote-debugging-port=9222
  3. No other process is using port 9222

Start your browser with remote debugging, e.g.:
  macOS: open -a 'Microsoft Edge' --args --remote-debugging-port=9222
  Linux: chromium --remote-debugging-port=9222
`

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	initialURL := flag.String("url", "", "Starting URL (overrides config)")
	endpoint := flag.String("endpoint", "", "Browser remote-debugging endpoint (overrides config)")
	output := flag.String("output", "", "Audio output file (overrides config)")
	waitMS := flag.Int("wait", 0, "Settle wait after navigation, in milliseconds (overrides config)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Error("could not load configuration", "path", *configPath, "err", err)
			os.Exit(1)
		}
	}
	if *initialURL != "" {
		cfg.InitialURL = *initialURL
	}
	if *endpoint != "" {
		cfg.BrowserEndpoint = *endpoint
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *waitMS > 0 {
		cfg.SettleWaitMS = *waitMS
	}

	banner(cfg)

	ctx := context.Background()

	fmt.Println("Testing browser connection...")
	if err := browser.CheckConnection(ctx, cfg.BrowserEndpoint); err != nil {
		log.Error("browser connection failed", "endpoint", cfg.BrowserEndpoint, "err", err)
		fmt.Print(connectHelp)
		os.Exit(1)
	}

	if err := run(ctx, cfg); err != nil {
		log.Error("run failed", "err", err)
		if msg := remediation(err, cfg); msg != "" {
			fmt.Print(msg)
		}
		os.Exit(1)
	}
}

// remediation returns operator guidance matching the failure class; an
// unrecognized error gets none.
func remediation(err error, cfg config.Config) string {
	var connErr *browser.ConnectionError
	var notFound *pipeline.ElementNotFoundError
	var synthErr *tts.SynthesisError
	switch {
	case errors.As(err, &connErr):
		return connectHelp
	case errors.As(err, &notFound):
		return "\nNote: the selectors may need updating if the target page structure changed.\n"
	case errors.As(err, &synthErr):
		return fmt.Sprintf("\nNote: check that the speech server is running at %s and was started with a working model.\n", cfg.TTS.Endpoint)
	default:
		return ""
	}
}

func banner(cfg config.Config) {
	rule := strings.Repeat("=", 80)
	fmt.Println(rule)
	fmt.Println("READALOUD - article to speech")
	fmt.Println(rule)
	fmt.Printf("Browser endpoint: %s\n", cfg.BrowserEndpoint)
	fmt.Printf("Speech server:    %s\n", cfg.TTS.Endpoint)
	fmt.Printf("Output file:      %s\n", cfg.Output)
	fmt.Println(rule)
}

func run(ctx context.Context, cfg config.Config) error {
	sess, err := browser.Connect(ctx, cfg.BrowserEndpoint)
	if err != nil {
		return err
	}
	defer sess.Close()

	// The speech client is created once per process and injected; the model
	// state lives in the server across calls.
	speech := tts.NewServerClient(tts.Config{
		Endpoint:   cfg.TTS.Endpoint,
		SpeakerID:  cfg.TTS.SpeakerID,
		LanguageID: cfg.TTS.LanguageID,
		Timeout:    cfg.TTS.Timeout(),
	})
	if !speech.IsAvailable(ctx) {
		log.Warn("speech server not reachable, synthesis will likely fail", "endpoint", cfg.TTS.Endpoint)
	}

	site := pipeline.Site{
		InitialURL:      cfg.InitialURL,
		ClickSelector:   cfg.ClickSelector,
		LinkMarker:      cfg.LinkMarker,
		ContentSelector: cfg.ContentSelector,
	}
	newTab := func() (pipeline.Page, func(), error) {
		return sess.NewTab()
	}
	runner := pipeline.New(sess.Page(), newTab, site,
		pipeline.WithSettleWait(cfg.SettleWait()),
	)

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	sp.Suffix = " extracting article content"
	sp.Start()
	result, err := runner.Run()
	sp.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("\n✓ Extracted %d elements\n\n", len(result.Items))
	for _, item := range result.Items {
		fmt.Printf("[%s]\n%s\n\n", strings.ToUpper(item.Tag), item.Text)
	}

	if cfg.Report != "" {
		if err := extract.SaveJSON(cfg.Report, result); err != nil {
			log.Warn("could not write extraction report", "path", cfg.Report, "err", err)
		}
	}

	sp.Suffix = " synthesizing speech"
	sp.Start()
	err = tts.WriteFile(ctx, speech, result.FullText, cfg.Output)
	sp.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("✓ Audio written to %s\n", cfg.Output)
	return nil
}
