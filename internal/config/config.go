// Package config carries the run settings, most importantly the site
// selectors. The selectors are versioned configuration tied to one target
// site's current markup: they are expected to break when that markup
// changes, and live here so they can be updated without touching the
// pipeline.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Defaults reproduce the fixed run this tool was built for.
const (
	// defaultClickSelector reveals the notification list in the sidebar.
	defaultClickSelector = `#root > div.border-subtlest.ring-subtlest.divide-subtlest.bg-base > div > div > div.group\/sidebar.relative.z-10.hidden.min-h-0.flex-none.flex-row-reverse.md\:flex.border-r.border-subtlest.ring-subtlest.divide-subtlest.bg-base > div.pb-md.scrollbar-none.relative.flex.h-full.flex-col.items-center.overflow-y-auto.overflow-x-hidden.border-subtlest.ring-subtlest.divide-subtlest.bg-transparent > div.gap-md.pt-sm.mt-auto.flex.w-full.min-w-0.flex-col.items-center.justify-center.\[\&\>\*\]\:w-full.pb-sm > div.relative.flex.flex-col.items-center.justify-center > span > div > div > button`

	// defaultLinkMarker is the class of the notification entry whose first
	// anchor points at the article to read.
	defaultLinkMarker = "group/notification-list-item"

	// defaultContentSelector is the article body container on the linked page.
	defaultContentSelector = "#markdown-content-0 > div > div > div"
)

// TTS holds the speech server settings.
type TTS struct {
	Endpoint   string `yaml:"endpoint"`
	SpeakerID  string `yaml:"speaker_id"`
	LanguageID string `yaml:"language_id"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// Timeout returns the configured request timeout.
func (t TTS) Timeout() time.Duration {
	return time.Duration(t.TimeoutSec) * time.Second
}

// Config is the full run configuration.
type Config struct {
	BrowserEndpoint string `yaml:"browser_endpoint"`
	InitialURL      string `yaml:"initial_url"`
	ClickSelector   string `yaml:"click_selector"`
	LinkMarker      string `yaml:"link_marker"`
	ContentSelector string `yaml:"content_selector"`
	SettleWaitMS    int    `yaml:"settle_wait_ms"`
	Output          string `yaml:"output"`
	Report          string `yaml:"report"`
	TTS             TTS    `yaml:"tts"`
}

// SettleWait returns the pause used to let client-side rendering finish.
func (c Config) SettleWait() time.Duration {
	return time.Duration(c.SettleWaitMS) * time.Millisecond
}

// Default returns the compiled-in configuration for the fixed target site.
func Default() Config {
	return Config{
		BrowserEndpoint: "http://localhost:9222",
		InitialURL:      "https://www.perplexity.ai/",
		ClickSelector:   defaultClickSelector,
		LinkMarker:      defaultLinkMarker,
		ContentSelector: defaultContentSelector,
		SettleWaitMS:    5000,
		Output:          "content.wav",
		Report:          "content.json",
		TTS: TTS{
			Endpoint:   "http://localhost:5002",
			TimeoutSec: 360,
		},
	}
}

// Load reads a YAML file over the defaults, so a config file only needs the
// keys it wants to change.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
