// Package tts submits text to an external speech-synthesis server and writes
// the returned audio to disk. The model itself lives in the server process;
// this package is only a client, constructed once at startup and injected
// wherever synthesis is needed.
package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultEndpoint is where a locally started Coqui-style tts-server listens.
const DefaultEndpoint = "http://localhost:5002"

const defaultTimeout = 360 * time.Second

// availabilityTimeout bounds the reachability ping. The synthesis timeout is
// generous by design; a hung server must not stall startup for that long.
const availabilityTimeout = 5 * time.Second

// Client converts text into synthesized audio bytes.
type Client interface {
	// Synthesize submits the entire text as one synthesis unit. No sentence
	// splitting is applied; very long inputs are the caller's problem and
	// may degrade output quality.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// IsAvailable is a lightweight reachability check against the server.
	IsAvailable(ctx context.Context) bool
}

// SynthesisError is returned when the server rejects or fails on the input.
type SynthesisError struct {
	Reason string
	Err    error
}

func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("synthesis failed: %s: %v", e.Reason, e.Err)
	}
	return "synthesis failed: " + e.Reason
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// Config holds the synthesis server settings.
type Config struct {
	Endpoint   string
	SpeakerID  string
	LanguageID string
	Timeout    time.Duration
}

// ServerClient talks to a TTS server over HTTP (GET /api/tts).
type ServerClient struct {
	cfg    Config
	client *http.Client
}

// NewServerClient creates the client. Synthesis of long texts is slow, so the
// default timeout is generous.
func NewServerClient(cfg Config) *ServerClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &ServerClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Synthesize submits text and returns the audio bytes the server produced.
// Exactly one attempt is made; failures propagate to the caller.
func (c *ServerClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SynthesisError{Reason: "empty input text"}
	}

	q := url.Values{}
	q.Set("text", text)
	if c.cfg.SpeakerID != "" {
		q.Set("speaker_id", c.cfg.SpeakerID)
	}
	if c.cfg.LanguageID != "" {
		q.Set("language_id", c.cfg.LanguageID)
	}

	reqURL := c.cfg.Endpoint + "/api/tts?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &SynthesisError{Reason: "create request", Err: err}
	}

	log.Debug("submitting text for synthesis", "endpoint", c.cfg.Endpoint, "chars", len(text))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &SynthesisError{Reason: "request to speech server", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &SynthesisError{
			Reason: fmt.Sprintf("speech server returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{Reason: "read audio response", Err: err}
	}
	if len(data) == 0 {
		return nil, &SynthesisError{Reason: "speech server returned no audio"}
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) {
		log.Warn("audio response does not look like a WAV file", "bytes", len(data))
	}
	return data, nil
}

// IsAvailable checks that the server answers at all, within a short bound
// independent of the synthesis timeout.
func (c *ServerClient) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
