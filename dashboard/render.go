package dashboard

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Render generates the dashboard HTML for the most recent runs.
func Render(ctx context.Context, store *Store, limit int) (string, error) {
	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<meta http-equiv=\"refresh\" content=\"10\">\n")
	sb.WriteString("<title>Test Dashboard</title>\n<style>\n" + dashboardCSS + "</style>\n")
	sb.WriteString("</head>\n<body>\n<h1>Test Dashboard</h1>\n")
	fmt.Fprintf(&sb, "<p class=\"stamp\">rendered %s</p>\n",
		time.Now().Format("2006-01-02 15:04:05"))

	if len(runs) == 0 {
		sb.WriteString("<p>No runs recorded yet.</p>\n")
	}
	for _, sum := range runs {
		renderRun(ctx, &sb, store, sum)
	}
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

func renderRun(ctx context.Context, sb *strings.Builder, store *Store, sum Summary) {
	state := "running"
	if !sum.Run.FinishedAt.IsZero() {
		state = sum.Run.FinishedAt.Sub(sum.Run.StartedAt).Round(time.Second).String()
	}
	fmt.Fprintf(sb, "<div class=\"run\">\n<h2>%s</h2>\n", html.EscapeString(runTitle(sum.Run)))
	fmt.Fprintf(sb, "<p>%s &middot; %s &middot; "+
		"<span class=\"pill passed\">%d passed</span> "+
		"<span class=\"pill failed\">%d failed</span> "+
		"<span class=\"pill skipped\">%d skipped</span></p>\n",
		sum.Run.StartedAt.Format("2006-01-02 15:04:05"), state,
		sum.Passed, sum.Failed, sum.Skipped)

	results, err := store.Results(ctx, sum.Run.RunID)
	if err != nil || len(results) == 0 {
		sb.WriteString("</div>\n")
		return
	}
	sb.WriteString("<table>\n<tr><th>Test</th><th>Status</th><th>Duration</th><th>Message</th></tr>\n")
	for _, r := range results {
		fmt.Fprintf(sb, "<tr><td>%s</td><td><span class=\"pill %s\">%s</span></td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(r.TestName), r.Status, r.Status,
			r.Duration.Round(time.Millisecond), html.EscapeString(r.Message))
	}
	sb.WriteString("</table>\n</div>\n")
}

func runTitle(r Run) string {
	if r.Label != "" {
		return r.Label
	}
	return r.RunID
}

// WriteHTML renders the dashboard and writes it atomically under the file
// lock, so readers and concurrent writer processes never see a torn page.
func WriteHTML(ctx context.Context, store *Store, path string, limit int) error {
	page, err := Render(ctx, store, limit)
	if err != nil {
		return err
	}

	lock := NewFileLock(path+".lock", 30*time.Second)
	if err := lock.Acquire(10 * time.Second); err != nil {
		return err
	}
	defer lock.Release()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dashboard: write html: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(page), 0o644); err != nil {
		return fmt.Errorf("dashboard: write html: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("dashboard: write html: %w", err)
	}
	return nil
}

const dashboardCSS = `
body { font-family: system-ui, sans-serif; margin: 2em auto; max-width: 64em; color: #222; }
h1 { border-bottom: 2px solid #ddd; padding-bottom: 0.3em; }
.stamp { color: #888; font-size: 0.85em; }
.run { margin: 1.5em 0; padding: 1em; border: 1px solid #ddd; border-radius: 6px; }
.run h2 { margin-top: 0; font-size: 1.1em; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.35em 0.7em; border-bottom: 1px solid #eee; font-size: 0.9em; }
.pill { padding: 0.1em 0.6em; border-radius: 999px; font-size: 0.85em; color: #fff; }
.pill.passed { background: #2da44e; }
.pill.failed { background: #cf222e; }
.pill.skipped { background: #bf8700; }
`
