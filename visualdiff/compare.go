package visualdiff

import "fmt"

// Compare checks the current snapshot against a baseline at the requested
// strictness level. It returns nil when the structures match; otherwise an
// error naming the first divergence.
func Compare(baseline, current *Snapshot, level int) error {
	want, err := baseline.Level(level)
	if err != nil {
		return err
	}
	got, err := current.Level(level)
	if err != nil {
		return err
	}

	if len(want) != len(got) {
		return fmt.Errorf("visualdiff: level %d: element count changed from %d to %d (first difference at %s)",
			level, len(want), len(got), firstDiff(want, got))
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("visualdiff: level %d: element %d changed: baseline %q, current %q",
				level, i, want[i], got[i])
		}
	}
	return nil
}

// firstDiff describes where two tag lists first disagree for the count
// mismatch message.
func firstDiff(want, got []string) string {
	n := len(want)
	if len(got) < n {
		n = len(got)
	}
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			return fmt.Sprintf("element %d (%q vs %q)", i, want[i], got[i])
		}
	}
	return fmt.Sprintf("element %d (list truncated)", n)
}
