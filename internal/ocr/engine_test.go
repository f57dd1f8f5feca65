package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner records invocations and plays back canned results per binary.
type stubRunner struct {
	calls   [][]string
	results map[string]struct {
		stdout string
		err    error
	}
	onRun func(name string, args []string)
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	if s.onRun != nil {
		s.onRun(name, args)
	}
	r := s.results[name]
	return []byte(r.stdout), nil, r.err
}

func TestRecognizePage(t *testing.T) {
	runner := &stubRunner{results: map[string]struct {
		stdout string
		err    error
	}{
		"tesseract": {stdout: "인식된 텍스트\n"},
	}}
	// Drop a rendered page into the temp dir the engine hands to pdftoppm.
	runner.onRun = func(name string, args []string) {
		if name != "pdftoppm" {
			return
		}
		prefix := args[len(args)-1]
		writeTestPNG(t, prefix+"-1.png", 40, 40)
	}

	engine := NewTesseractEngine(Config{}, nil)
	engine.runner = runner

	text, err := engine.RecognizePage(context.Background(), "doc.pdf", 3, RenderOptions{Scale: 2.0})
	require.NoError(t, err)
	assert.Equal(t, "인식된 텍스트\n", text)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"pdftoppm", "-f", "3", "-l", "3", "-r", "144", "-png"}, runner.calls[0][:8])
	assert.Equal(t, "tesseract", runner.calls[1][0])
	assert.Equal(t, []string{"stdout", "-l", "kor+eng"}, runner.calls[1][2:])
}

func TestRecognizePageRenderFailure(t *testing.T) {
	runner := &stubRunner{results: map[string]struct {
		stdout string
		err    error
	}{
		"pdftoppm": {err: errors.New("exit status 1")},
	}}

	engine := NewTesseractEngine(Config{}, nil)
	engine.runner = runner

	_, err := engine.RecognizePage(context.Background(), "doc.pdf", 1, RenderOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm")
}

func TestRecognizePageNoImageProduced(t *testing.T) {
	// pdftoppm succeeds but writes nothing, e.g. page out of range.
	runner := &stubRunner{results: map[string]struct {
		stdout string
		err    error
	}{}}

	engine := NewTesseractEngine(Config{}, nil)
	engine.runner = runner

	_, err := engine.RecognizePage(context.Background(), "doc.pdf", 99, RenderOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image")
}

func TestCropTopHalf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	writeTestPNG(t, path, 60, 100)

	require.NoError(t, cropTopHalf(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestConfigDefaults(t *testing.T) {
	engine := NewTesseractEngine(Config{}, nil)

	assert.Equal(t, "pdftoppm", engine.cfg.Pdftoppm)
	assert.Equal(t, "tesseract", engine.cfg.Tesseract)
	assert.Equal(t, "kor+eng", engine.cfg.Languages)
}

func TestRunnerUsesEngineLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := NewTesseractEngine(Config{}, logger)

	runner, ok := engine.runner.(execRunner)
	require.True(t, ok)
	assert.Same(t, logger, runner.logger)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("x", 20)
	got := truncate(long, 10)
	assert.Equal(t, "xxxxxxxxxx...(truncated)", got)
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}
