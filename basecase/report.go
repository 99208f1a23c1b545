package basecase

import (
	"fmt"
	"time"

	"github.com/hazyhaar/basecase/dashboard"
)

// Report records one test outcome in the dashboard store, when one is
// configured. A Case without a store reports nowhere; tests run fine
// standalone.
func (c *Case) Report(testName string, status dashboard.Status, duration time.Duration, message string) error {
	if c.opts.Results == nil {
		return nil
	}
	if c.opts.RunID == "" {
		return fmt.Errorf("basecase: report: options set a store but no run id")
	}
	err := c.opts.Results.RecordResult(c.ctx, dashboard.Result{
		RunID:    c.opts.RunID,
		TestName: testName,
		Status:   status,
		Duration: duration,
		Message:  message,
	})
	if err != nil {
		return fmt.Errorf("basecase: report: %w", err)
	}
	return nil
}

// ReportPassed is shorthand for a passing Report.
func (c *Case) ReportPassed(testName string, duration time.Duration) error {
	return c.Report(testName, dashboard.StatusPassed, duration, "")
}

// ReportFailed is shorthand for a failing Report with the failure message.
func (c *Case) ReportFailed(testName string, duration time.Duration, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return c.Report(testName, dashboard.StatusFailed, duration, msg)
}
