package diagnostics

import (
	"testing"
)

func TestComprehensiveDiagnosticsDemo(t *testing.T) {
	t.Log("Running comprehensive diagnostics demonstration...")

	// This test demonstrates the full capabilities of the diagnostics system
	RunComprehensiveDiagnosticsDemo()

	t.Log("Diagnostics demonstration completed successfully!")
}
