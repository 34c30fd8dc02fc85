// Package ocr runs text recognition on receipt images and turns the result
// into a pre-filled expense draft.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ProgressFunc receives recognition progress from 0 to 100.
type ProgressFunc func(percent int)

// Recognizer extracts raw text from an image.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string, progress ProgressFunc) (string, error)
}

// Recognizer errors.
var (
	ErrBinaryNotFound = errors.New("tesseract binary not found")
	ErrImageNotFound  = errors.New("image not found")
)

// Config selects the tesseract binary and its settings.
type Config struct {
	Binary   string
	Language string
	Timeout  time.Duration
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Binary:   "tesseract",
		Language: "eng",
		Timeout:  60 * time.Second,
	}
}

// Tesseract recognizes text by running the tesseract command line tool.
type Tesseract struct {
	logger   *slog.Logger
	binary   string
	language string
	timeout  time.Duration
}

// NewTesseract checks that the binary is installed and returns a recognizer.
func NewTesseract(cfg Config) (*Tesseract, error) {
	defaults := DefaultConfig()
	if cfg.Binary == "" {
		cfg.Binary = defaults.Binary
	}
	if cfg.Language == "" {
		cfg.Language = defaults.Language
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}

	path, err := exec.LookPath(cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w at %s: install tesseract-ocr or set ocr.binary", ErrBinaryNotFound, cfg.Binary)
	}

	return &Tesseract{
		binary:   path,
		language: cfg.Language,
		timeout:  cfg.Timeout,
		logger:   slog.Default().With("component", "ocr"),
	}, nil
}

// Recognize runs `tesseract <image> stdout -l <lang>` and returns its output.
// Progress is reported at start, once the process is running and on
// completion; tesseract itself does not report finer steps.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string, progress ProgressFunc) (string, error) {
	if progress == nil {
		progress = func(int) {}
	}
	if _, err := os.Stat(imagePath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrImageNotFound, imagePath)
	}

	progress(0)

	cmdCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, t.binary, imagePath, "stdout", "-l", t.language)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start tesseract: %w", err)
	}
	progress(50)

	if err := cmd.Wait(); err != nil {
		if ctxErr := cmdCtx.Err(); ctxErr != nil {
			return "", fmt.Errorf("tesseract stopped: %w", ctxErr)
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("tesseract error: %s", strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("failed to execute tesseract: %w", err)
	}
	progress(100)

	t.logger.Debug("Recognized image",
		"path", imagePath,
		"chars", stdout.Len(),
		"duration", time.Since(start))
	return stdout.String(), nil
}
