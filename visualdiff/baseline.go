package visualdiff

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// ErrNoBaseline reports a missing baseline directory, so callers can treat
// the first run of a test as ground-truth creation instead of a failure.
var ErrNoBaseline = errors.New("visualdiff: no baseline")

// Baseline file names inside a test's baseline directory.
const (
	fileLevel1  = "tags_level_1.json"
	fileLevel2  = "tags_level_2.json"
	fileLevel3  = "tags_level_3.json"
	fileURL     = "page_url.txt"
	filePNG     = "baseline.png"
	fileSummary = "page.md"
)

// SaveBaseline writes the snapshot as ground truth: the three tag-list JSON
// files, the page URL, the screenshot (when non-nil), and a readable
// markdown rendition of the page for humans reviewing the baseline.
func SaveBaseline(dir string, snap *Snapshot, pageHTML, png []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("visualdiff: mkdir: %w", err)
	}

	levels := []struct {
		name string
		list []string
	}{
		{fileLevel1, snap.Level1},
		{fileLevel2, snap.Level2},
		{fileLevel3, snap.Level3},
	}
	for _, l := range levels {
		data, err := json.MarshalIndent(l.list, "", "  ")
		if err != nil {
			return fmt.Errorf("visualdiff: marshal %s: %w", l.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, l.name), data, 0o644); err != nil {
			return fmt.Errorf("visualdiff: write %s: %w", l.name, err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, fileURL), []byte(snap.URL+"\n"), 0o644); err != nil {
		return fmt.Errorf("visualdiff: write %s: %w", fileURL, err)
	}

	if len(png) > 0 {
		if err := os.WriteFile(filepath.Join(dir, filePNG), png, 0o644); err != nil {
			return fmt.Errorf("visualdiff: write %s: %w", filePNG, err)
		}
	}

	if len(pageHTML) > 0 {
		md, err := pageMarkdown(pageHTML)
		if err == nil && md != "" {
			if err := os.WriteFile(filepath.Join(dir, fileSummary), []byte(md), 0o644); err != nil {
				return fmt.Errorf("visualdiff: write %s: %w", fileSummary, err)
			}
		}
	}

	return nil
}

// LoadBaseline reads a previously saved baseline.
func LoadBaseline(dir string) (*Snapshot, error) {
	snap := &Snapshot{}

	urlData, err := os.ReadFile(filepath.Join(dir, fileURL))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNoBaseline, dir)
		}
		return nil, fmt.Errorf("visualdiff: read %s: %w", fileURL, err)
	}
	snap.URL = trimNewline(string(urlData))

	levels := []struct {
		name string
		dst  *[]string
	}{
		{fileLevel1, &snap.Level1},
		{fileLevel2, &snap.Level2},
		{fileLevel3, &snap.Level3},
	}
	for _, l := range levels {
		data, err := os.ReadFile(filepath.Join(dir, l.name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w at %s", ErrNoBaseline, dir)
			}
			return nil, fmt.Errorf("visualdiff: read %s: %w", l.name, err)
		}
		if err := json.Unmarshal(data, l.dst); err != nil {
			return nil, fmt.Errorf("visualdiff: parse %s: %w", l.name, err)
		}
	}

	return snap, nil
}

// HasBaseline reports whether dir contains a saved baseline.
func HasBaseline(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, fileLevel1))
	return err == nil
}

// pageMarkdown converts page HTML to readable markdown for the page.md
// companion file.
func pageMarkdown(rawHTML []byte) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return conv.ConvertString(string(rawHTML))
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
