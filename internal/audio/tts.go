// Package audio synthesizes reference pronunciations of practice text so a
// learner can hear the target before recording an attempt.
package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const ttsRequestTimeout = 10 * time.Second

// maxNameLength caps the sanitized text used in cache filenames
const maxNameLength = 60

// TTSService generates and caches MP3 reference audio for target text
type TTSService struct {
	audioDir string
	client   *http.Client
	logger   *zap.Logger
}

// NewTTSService creates a TTS service caching files in audioDir
func NewTTSService(audioDir string, logger *zap.Logger) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		logger:   logger,
	}
}

// sanitizeName turns target text into a safe cache filename fragment
func sanitizeName(text string) string {
	name := strings.ToLower(strings.TrimSpace(text))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	name = b.String()
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return name
}

// Synthesize returns the cache filename of the reference audio for text,
// generating it on first use
func (s *TTSService) Synthesize(ctx context.Context, text string) (string, error) {
	name := sanitizeName(text)
	if name == "" {
		return "", fmt.Errorf("no speakable text")
	}

	filename := fmt.Sprintf("target_%s.mp3", name)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := s.fetchGoogleTTS(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	s.logger.Info("reference audio generated", zap.String("file", filename))
	return filename, nil
}

// Open returns a reader over a previously synthesized file
func (s *TTSService) Open(filename string) (io.ReadCloser, error) {
	// Reject anything that could escape the cache directory
	if filepath.Base(filename) != filename {
		return nil, fmt.Errorf("invalid audio filename")
	}
	return os.Open(filepath.Join(s.audioDir, filename))
}

// fetchGoogleTTS downloads speech from the Google Translate TTS endpoint,
// which needs no API key
func (s *TTSService) fetchGoogleTTS(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := "https://translate.google.com/translate_tts?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// The endpoint rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}
