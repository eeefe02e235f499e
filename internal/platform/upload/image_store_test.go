package upload

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mbriand/railgo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smallest payloads that sniff as their respective formats.
var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
)

func newTestStore(t *testing.T) *ImageStore {
	t.Helper()
	s, err := NewImageStore(config.UploadConfig{Dir: t.TempDir()}, nil)
	require.NoError(t, err)
	return s
}

func TestSavePNG(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.timeFunc = func() time.Time { return time.UnixMilli(1717000000000) }

	path, err := s.Save(bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "1717000000000.png", filepath.Base(path))
	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestSaveJPEG(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	path, err := s.Save(bytes.NewReader(jpegHeader))
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(path))
}

func TestSaveRejectsNonImage(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Save(bytes.NewReader([]byte("#!/bin/sh\nrm -rf /\n")))
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestSaveRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Save(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestSaveRejectsOversizedPayload(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	payload := append(append([]byte{}, pngHeader...), make([]byte, MaxImageBytes)...)
	_, err := s.Save(bytes.NewReader(payload))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	assert.NoError(t, s.Remove(filepath.Join(t.TempDir(), "gone.png")))
	assert.NoError(t, s.Remove(""))
}
