package basecase

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-rod/rod/lib/proto"

	"github.com/hazyhaar/basecase/pdftext"
	"github.com/hazyhaar/basecase/visualdiff"
)

// Screenshot captures the viewport as PNG. A relative path lands under the
// artifact directory.
func (c *Case) Screenshot(path string) error {
	data, err := c.screenshotPNG()
	if err != nil {
		return err
	}
	return c.writeArtifact(path, data)
}

func (c *Case) screenshotPNG() ([]byte, error) {
	if err := c.requireTab(); err != nil {
		return nil, err
	}
	data, err := c.tab.Page.Context(c.ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("basecase: screenshot: %w", err)
	}
	return data, nil
}

// SavePageSource writes the current DOM serialization to a file.
func (c *Case) SavePageSource(path string) error {
	src, err := c.PageSource()
	if err != nil {
		return err
	}
	return c.writeArtifact(path, []byte(src))
}

// SavePDF prints the current page to a PDF file.
func (c *Case) SavePDF(path string) error {
	if err := c.requireTab(); err != nil {
		return err
	}
	stream, err := c.tab.Page.Context(c.ctx).PDF(&proto.PagePrintToPDF{})
	if err != nil {
		return fmt.Errorf("basecase: save pdf: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("basecase: save pdf: %w", err)
	}
	return c.writeArtifact(path, data)
}

// PDFText extracts text from a PDF file. page 0 means the whole document.
func (c *Case) PDFText(path string, page int) (string, error) {
	if page == 0 {
		return pdftext.Extract(path)
	}
	return pdftext.ExtractPage(path, page)
}

// AssertPDFText fails unless the PDF contains text on the given page
// (0 = anywhere).
func (c *Case) AssertPDFText(path, text string, page int) error {
	ok, err := pdftext.Contains(path, text, page)
	if err != nil {
		return fmt.Errorf("basecase: assert pdf text: %w", err)
	}
	if !ok {
		return fmt.Errorf("expected %q in %s (page %d)", text, path, page)
	}
	return nil
}

// CheckWindow compares the current page structure against the named
// baseline at the given strictness level (1..3). The first run saves the
// baseline and passes; later runs fail on structural drift.
func (c *Case) CheckWindow(name string, level int) error {
	if err := c.requireTab(); err != nil {
		return err
	}
	html, err := c.PageSource()
	if err != nil {
		return err
	}
	url, err := c.CurrentURL()
	if err != nil {
		return err
	}
	current, err := visualdiff.Capture([]byte(html), url)
	if err != nil {
		return fmt.Errorf("basecase: check window %q: %w", name, err)
	}

	dir := filepath.Join(c.opts.BaselineDir, sanitizeName(name))
	baseline, err := visualdiff.LoadBaseline(dir)
	if errors.Is(err, visualdiff.ErrNoBaseline) {
		png, shotErr := c.screenshotPNG()
		if shotErr != nil {
			png = nil
		}
		if saveErr := visualdiff.SaveBaseline(dir, current, []byte(html), png); saveErr != nil {
			return fmt.Errorf("basecase: check window %q: save baseline: %w", name, saveErr)
		}
		c.log.Info("visual baseline created", "name", name, "dir", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("basecase: check window %q: %w", name, err)
	}

	if err := visualdiff.Compare(baseline, current, level); err != nil {
		return fmt.Errorf("basecase: check window %q (level %d): %w", name, level, err)
	}
	return nil
}

func (c *Case) writeArtifact(path string, data []byte) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.opts.ArtifactDir, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("basecase: write %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("basecase: write %s: %w", path, err)
	}
	c.log.Debug("artifact written", "path", path)
	return nil
}

// sanitizeName maps a free-form check name to a directory-safe slug.
func sanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ', r == '/':
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "default"
	}
	return sb.String()
}
