package basecase

import (
	"fmt"
	"path/filepath"

	"github.com/hazyhaar/basecase/recorder"
)

// StartRecorder attaches the interaction recorder to the active page.
// Requires an open page.
func (c *Case) StartRecorder() error {
	if err := c.requireTab(); err != nil {
		return err
	}
	rec := recorder.New(c.tab.Page, c.log)
	if err := rec.Attach(c.ctx); err != nil {
		return err
	}
	c.rec = rec
	return nil
}

// Recorder returns the attached recorder, or nil before StartRecorder.
func (c *Case) Recorder() *recorder.Recorder { return c.rec }

// ExportRecording drains the recorder, cleans the action stream, and writes
// a generated Go test named after name. Returns the written path.
func (c *Case) ExportRecording(name string) (string, error) {
	if c.rec == nil {
		return "", fmt.Errorf("basecase: export recording: recorder not started")
	}
	raw, err := c.rec.Drain(c.ctx)
	if err != nil {
		return "", err
	}
	actions := recorder.Process(raw)
	src, err := recorder.Generate(name, actions)
	if err != nil {
		return "", err
	}

	path := filepath.Join("recordings", sanitizeName(name)+"_test.go")
	if err := c.writeArtifact(path, []byte(src)); err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.opts.ArtifactDir, path)
	}
	c.log.Info("recording exported", "name", name, "path", path, "actions", len(actions))
	return path, nil
}
