// SPDX-License-Identifier: MIT

package matrix

// Test bridge: exposes unexported helpers and panic strings to matrix_test.

var (
	// ExportedNewDenseWithPolicy exposes newDenseWithPolicy for white-box tests.
	ExportedNewDenseWithPolicy = newDenseWithPolicy
	// ExportedMaxAbs exposes Dense.maxAbs.
	ExportedMaxAbs = (*Dense).maxAbs
)

// Panic message exports to avoid "magic strings" in tests.
const (
	PanicEpsilonInvalid_TestOnly  = panicEpsilonInvalid
	PanicPivotTolInvalid_TestOnly = panicPivotTolInvalid
)

// OptionsSnapshot is a read-only view of resolved Options.
type OptionsSnapshot struct {
	Eps            float64
	PivotTol       float64
	ValidateNaNInf bool
}

// GatherOptionsSnapshot_TestOnly resolves opts through gatherOptions.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{Eps: o.eps, PivotTol: o.pivotTol, ValidateNaNInf: o.validateNaNInf}
}
