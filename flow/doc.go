// Package flow implements a dataflow graph engine: typed Ports wired
// together by Connections, grouped into Nodes, owned by a Flow that
// enforces connection legality, dispatches activation through one of
// three pluggable algorithms, and serializes/restores itself through a
// project-file protocol.
//
// # Core Concepts
//
// ## Ports and Connections
// A Port is either a data port (carries a value) or an exec port
// (carries only an activation pulse), and either an input or an output.
// A Connection always runs output-to-input between ports of the same
// kind; Flow.ConnectNodes toggles a connection into or out of existence
// and rejects illegal pairs (same node, same I/O position, mismatched
// kind).
//
// ## Nodes and Behaviors
// A Node is a placed instance of a NodeClass: an ordered set of ports
// plus a pluggable Behavior that receives update/placement/removal
// hooks. BaseBehavior gives every hook a no-op default so a concrete
// Behavior only needs to override what it cares about.
//
// ## Algorithm modes
// A Flow runs in one of three modes (AlgData, AlgExec, AlgDataOpt).
// AlgData pushes a value to every downstream input as soon as it is
// written. AlgExec only writes on a data port and instead propagates
// through explicit Exec pulses, pulling a value from upstream each time
// it is read. AlgDataOpt behaves like AlgData but dispatches
// through a bound Executor that caches each input port's index, so a
// large flow does not re-scan a node's port list on every update;
// Flow.RunningWithExecutor is true if and only if the mode is
// AlgDataOpt.
//
// # Example Usage
//
//	f := flow.New(nil, nil, flow.FlowOptions{})
//	registry := &flow.Registry{}
//	registry.Register(&flow.NodeClass{
//		Identifier:  "math.add",
//		Version:     "1.0",
//		InitInputs:  []flow.PortBlueprint{{Label: "a", Kind: flow.KindData}, {Label: "b", Kind: flow.KindData}},
//		InitOutputs: []flow.PortBlueprint{{Label: "sum", Kind: flow.KindData}},
//		New:         func() flow.Behavior { return &addBehavior{} },
//	})
//
//	n1 := f.NewNode(registry.Visible[0])
//	n2 := f.NewNode(registry.Visible[0])
//	f.ConnectNodes(n1.Outputs()[0], n2.Inputs()[0])
//
// # Persistence
//
// Flow.Data and Flow.Load round-trip a flow through a FlowRecord, whose
// fields carry the exact keys a project file uses on disk. Serializer
// wraps every node's state and restored port values; NewJSONSerializer
// and NewYAMLSerializer are the two built-in choices. Package flowstore
// adapts this record to durable storage.
//
// # Thread Safety
//
// A Flow's execution model is synchronous and single-threaded: Update,
// Exec, and the event Emit calls they trigger all run depth-first on
// the calling goroutine. A Flow is not safe for concurrent use.
package flow
