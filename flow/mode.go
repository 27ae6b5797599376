package flow

import "strings"

// AlgMode selects the execution algorithm a Flow runs its nodes under.
// It governs how a data port's value is propagated (push vs. pull) and
// whether the Flow dispatches through a bound Executor.
type AlgMode int

const (
	// AlgData pushes a value to every downstream input the instant an
	// output is written; this is the default mode.
	AlgData AlgMode = iota
	// AlgExec writes an output's value without propagating it; a
	// downstream read pulls the value by updating the upstream node
	// first, and propagation instead happens through exec connections.
	AlgExec
	// AlgDataOpt is observably equivalent to AlgData but dispatches
	// through a bound Executor that amortizes per-event bookkeeping
	// (e.g. input-port index lookups) across a precomputed cache,
	// rebuilt only when the graph shape changes.
	AlgDataOpt
)

// String returns the canonical spelling of the mode, the one ever
// emitted by Flow's AlgorithmModeChanged event and written by Data().
func (m AlgMode) String() string {
	switch m {
	case AlgData:
		return "data"
	case AlgExec:
		return "exec"
	case AlgDataOpt:
		return "data opt"
	default:
		return "unknown"
	}
}

// legacy aliases accepted only because a persisted project file written
// by an older host may still use them.
var legacyAlgAliases = map[string]AlgMode{
	"data flow": AlgData,
	"exec flow": AlgExec,
}

// parseAlgMode accepts both the canonical spelling and legacy aliases.
// The canonical spelling is always what gets echoed back by String, so
// load-then-save normalizes a legacy project file in place.
func parseAlgMode(s string) (AlgMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "data":
		return AlgData, true
	case "exec":
		return AlgExec, true
	case "data opt":
		return AlgDataOpt, true
	}
	if m, ok := legacyAlgAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, true
	}
	return AlgData, false
}
