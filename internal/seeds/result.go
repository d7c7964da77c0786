package seeds

// Severity decides whether a failed check fails the run.
type Severity int

const (
	// Hard checks fail the run when they do not pass.
	Hard Severity = iota
	// Soft checks only warn.
	Soft
)

func (s Severity) String() string {
	if s == Soft {
		return "soft"
	}
	return "hard"
}

// MarshalText renders the severity by name in JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string
	Severity Severity
	Passed   bool
	Detail   string
}

// Status is "pass", "warn" or "fail".
func (r CheckResult) Status() string {
	switch {
	case r.Passed:
		return "pass"
	case r.Severity == Soft:
		return "warn"
	default:
		return "fail"
	}
}

// Marker is the line prefix used in text output.
func (r CheckResult) Marker() string {
	switch r.Status() {
	case "pass":
		return "[PASS]"
	case "warn":
		return "[WARN]"
	default:
		return "[FAIL]"
	}
}

// Failed reports whether any hard check in results did not pass.
func Failed(results []CheckResult) bool {
	for _, r := range results {
		if r.Severity == Hard && !r.Passed {
			return true
		}
	}
	return false
}

// Report is the full output of one verification run.
type Report struct {
	Tier    Tier
	Results []CheckResult
	// Aborted is set when a query error stopped the run early.
	Aborted bool
}

// Passed is true when the run completed and no hard check failed.
func (r *Report) Passed() bool {
	return !r.Aborted && !Failed(r.Results)
}

// Tally counts results by status.
func (r *Report) Tally() (passed, warned, failed int) {
	for _, res := range r.Results {
		switch res.Status() {
		case "pass":
			passed++
		case "warn":
			warned++
		default:
			failed++
		}
	}
	return passed, warned, failed
}
