package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	err  error
	text string
}

func (f fakeRecognizer) Recognize(ctx context.Context, _ string, progress ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, p := range []int{0, 50, 100} {
		progress(p)
	}
	return f.text, f.err
}

var scanNow = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.Local)

func newTestScanner(r Recognizer) *Scanner {
	return NewScanner(r, WithClock(func() time.Time { return scanNow }))
}

func TestScanRecognized(t *testing.T) {
	text := "Cafe Coffee Day\nDate: 14/03/2024\nCappuccino 180.00\nGrand Total: Rs. 210.00\n"
	var ticks []int
	result, err := newTestScanner(fakeRecognizer{text: text}).Scan(context.Background(), "bill.jpg", func(p int) {
		ticks = append(ticks, p)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 50, 100}, ticks)
	assert.Equal(t, StatusRecognized, result.Status)
	assert.True(t, result.Draft.Amount.Equal(decimal.NewFromInt(210)))
	assert.Equal(t, model.CategoryFood, result.Draft.Category)
	assert.Equal(t, "Cafe Coffee Day", result.Draft.Note)
	assert.Equal(t, "2024-03-14", result.Draft.Date.String())
}

func TestScanNoAmount(t *testing.T) {
	result, err := newTestScanner(fakeRecognizer{text: "Thank you for visiting\n"}).Scan(context.Background(), "bill.jpg", nil)
	require.NoError(t, err)

	assert.Equal(t, StatusNoAmount, result.Status)
	assert.Nil(t, result.Fields.Amount)
	assert.True(t, result.Draft.Amount.IsZero())
	assert.Equal(t, "2024-03-20", result.Draft.Date.String())
}

func TestScanRecognizerFailure(t *testing.T) {
	cause := errors.New("engine crashed")
	_, err := newTestScanner(fakeRecognizer{err: cause}).Scan(context.Background(), "bill.jpg", func(int) {})
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.ErrorIs(t, err, cause)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestScanner(fakeRecognizer{text: "Total 100"}).Scan(ctx, "bill.jpg", func(int) {})
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewTesseractMissingBinary(t *testing.T) {
	_, err := NewTesseract(Config{Binary: filepath.Join(t.TempDir(), "no-such-tesseract")})
	assert.ErrorIs(t, err, ErrBinaryNotFound)
}

func TestTesseractMissingImage(t *testing.T) {
	tess := &Tesseract{binary: "tesseract", language: "eng", timeout: time.Second}
	_, err := tess.Recognize(context.Background(), filepath.Join(t.TempDir(), "missing.png"), nil)
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestTesseractRunsBinary(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-tesseract")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"TOTAL 99.50\"\n"), 0o755))
	image := filepath.Join(dir, "bill.png")
	require.NoError(t, os.WriteFile(image, []byte("png"), 0o600))

	tess, err := NewTesseract(Config{Binary: script})
	if err != nil {
		t.Skipf("cannot execute shell scripts here: %v", err)
	}

	var ticks []int
	text, err := tess.Recognize(context.Background(), image, func(p int) { ticks = append(ticks, p) })
	require.NoError(t, err)
	assert.Equal(t, "TOTAL 99.50\n", text)
	assert.Equal(t, []int{0, 50, 100}, ticks)
}
