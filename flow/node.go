package flow

import (
	"flowcore/log"
)

// Node is one placed instance of a NodeClass inside a Flow. It owns an
// ordered list of input and output ports and delegates every
// domain-specific hook to its Behavior; Node itself only ever knows how
// to wire ports together, dispatch through the active algorithm, and
// absorb a misbehaving Behavior without taking the rest of the flow
// down with it.
type Node struct {
	flow     *Flow
	class    *NodeClass
	behavior Behavior

	inputs  []*Port
	outputs []*Port

	loggers []log.Logger

	// blockUpdates suppresses UpdateEvent dispatch. Flow sets this for
	// the duration a node is being wired up during Load when its class
	// has BlockInitUpdates set.
	blockUpdates bool

	gid         string
	initialized bool
}

func newNode(f *Flow, class *NodeClass) *Node {
	n := &Node{flow: f, class: class, gid: newGID()}
	n.behavior = class.New()
	n.behavior.Bind(n)
	return n
}

func (n *Node) Identifier() string    { return n.class.Identifier }
func (n *Node) Version() string       { return n.class.Version }
func (n *Node) Class() *NodeClass     { return n.class }
func (n *Node) Flow() *Flow           { return n.flow }
func (n *Node) GID() string           { return n.gid }
func (n *Node) Inputs() []*Port       { return append([]*Port(nil), n.inputs...) }
func (n *Node) Outputs() []*Port      { return append([]*Port(nil), n.outputs...) }
func (n *Node) Behavior() Behavior    { return n.behavior }

// AddLogger registers l to receive every message this node reports.
func (n *Node) AddLogger(l log.Logger) { n.loggers = append(n.loggers, l) }

func (n *Node) logDebug(format string, args ...any) { n.logAt((log.Logger).Debug, format, args...) }
func (n *Node) logError(format string, args ...any) { n.logAt((log.Logger).Error, format, args...) }

func (n *Node) logAt(fn func(log.Logger, string, ...any), format string, args ...any) {
	loggers := n.loggers
	if len(loggers) == 0 {
		loggers = []log.Logger{log.GetDefaultLogger()}
	}
	for _, l := range loggers {
		fn(l, format, args...)
	}
}

// setupPortsFromBlueprint constructs ports from the class's
// InitInputs/InitOutputs, the path taken when a node is placed fresh
// rather than loaded from a record.
func (n *Node) setupPortsFromBlueprint() {
	for _, bp := range n.class.InitInputs {
		p := newPort(n, Input, bp.Kind, bp.Label, bp.DType)
		p.AddData = bp.AddData
		n.inputs = append(n.inputs, p)
	}
	for _, bp := range n.class.InitOutputs {
		p := newPort(n, Output, bp.Kind, bp.Label, bp.DType)
		p.AddData = bp.AddData
		n.outputs = append(n.outputs, p)
	}
}

// setupPortsFromData reconstructs ports from a persisted record,
// preserving order and any restored literal value.
func (n *Node) setupPortsFromData(inputs []InputPortRecord, outputs []OutputPortRecord) {
	for _, rec := range inputs {
		kind := KindData
		if rec.Type == "exec" {
			kind = KindExec
		}
		p := newPort(n, Input, kind, rec.Label, rec.DType)
		if rec.Val != "" {
			if v, err := n.flow.serializer.Deserialize(rec.Val); err == nil {
				p.val = v
			}
		}
		if rec.DTypeState != "" {
			if v, err := n.flow.serializer.Deserialize(rec.DTypeState); err == nil {
				p.dtypeState = v
			}
		}
		n.inputs = append(n.inputs, p)
	}
	for _, rec := range outputs {
		kind := KindData
		if rec.Type == "exec" {
			kind = KindExec
		}
		p := newPort(n, Output, kind, rec.Label, "")
		n.outputs = append(n.outputs, p)
	}
}

func (n *Node) initializeFresh() {
	n.setupPortsFromBlueprint()
	n.initialized = true
}

func (n *Node) initializeFromRecord(rec *NodeRecord) {
	n.setupPortsFromData(rec.Inputs, rec.Outputs)
	n.safeLoadAdditionalData(rec.AdditionalData)
	n.safeSetState(rec.StateData, rec.Version)
	n.initialized = true
}

func (n *Node) safeLoadAdditionalData(data map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			n.logError("panic loading additional data on node %s: %v", n.Identifier(), r)
		}
	}()
	if err := n.behavior.LoadAdditionalData(data); err != nil {
		n.logError("loading additional data failed on node %s: %v", n.Identifier(), err)
	}
}

func (n *Node) safeSetState(blob, version string) {
	if blob == "" {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			n.logError("panic restoring state on node %s: %v", n.Identifier(), r)
		}
	}()
	v, err := n.flow.serializer.Deserialize(blob)
	if err != nil {
		n.logError("failed to decode state on node %s: %v", n.Identifier(), err)
		return
	}
	if err := n.behavior.SetState(v, version); err != nil {
		n.logError("set_state failed on node %s: %v", n.Identifier(), err)
	}
}

func (n *Node) afterPlacement() {
	defer func() {
		if r := recover(); r != nil {
			n.logError("panic in place_event on node %s: %v", n.Identifier(), r)
		}
	}()
	n.behavior.PlaceEvent()
}

func (n *Node) prepareRemoval() {
	defer func() {
		if r := recover(); r != nil {
			n.logError("panic in remove_event on node %s: %v", n.Identifier(), r)
		}
	}()
	n.behavior.RemoveEvent()
}

// NodeViewPlaced notifies the node that a host-side view has been
// constructed for it, mirroring Flow.node_view_placed in the original.
func (n *Node) NodeViewPlaced() {
	defer func() {
		if r := recover(); r != nil {
			n.logError("panic in view_place_event on node %s: %v", n.Identifier(), r)
		}
	}()
	n.behavior.ViewPlaceEvent()
}

func (n *Node) inputIndex(p *Port) int {
	if n.flow.runningWithExecutor {
		n.flow.dataOpt.refreshIfDirty()
		if idx, ok := n.flow.dataOpt.portIndex[p]; ok {
			return idx
		}
	}
	for i, q := range n.inputs {
		if q == p {
			return i
		}
	}
	return -1
}

func (n *Node) outputIndex(p *Port) int {
	for i, q := range n.outputs {
		if q == p {
			return i
		}
	}
	return -1
}

// Update asks the node to recompute. inp is the triggering input's
// index, or -1 for a forced/pulled update. Dispatch follows §4.3: a
// blocked node only logs a debug message; otherwise the call goes
// through the Executor (used only while running in AlgDataOpt) or
// straight to the Behavior, absorbing any failure.
func (n *Node) Update(inp int) {
	if n.blockUpdates {
		n.logDebug("update suppressed on node %s (blocked)", n.Identifier())
		return
	}
	if n.flow.runningWithExecutor {
		n.flow.dataOpt.UpdateNode(n, inp)
		return
	}
	n.safeUpdateEvent(inp)
}

func (n *Node) safeUpdateEvent(inp int) {
	defer func() {
		if r := recover(); r != nil {
			n.logError("panic in update_event on node %s: %v", n.Identifier(), r)
		}
	}()
	if err := n.behavior.UpdateEvent(inp); err != nil {
		n.logError("update_event failed on node %s: %v", n.Identifier(), err)
	}
}

// Input reads data input i's value, pulling an upstream update first if
// the flow is running in AlgExec mode. Like Update/ExecOutput/
// SetOutputVal, it defers to the bound Executor when one is active so
// all four dispatch points share the same mode-aware path.
func (n *Node) Input(i int) any {
	if i < 0 || i >= len(n.inputs) {
		n.logError("PortKindMismatch: input index %d out of range on node %s", i, n.Identifier())
		return nil
	}
	if n.flow.runningWithExecutor {
		return n.flow.dataOpt.Input(n, i)
	}
	v, err := n.inputs[i].GetVal()
	if err != nil {
		n.logError("PortKindMismatch: %v", err)
		return nil
	}
	return v
}

// ExecOutput activates output exec port i.
func (n *Node) ExecOutput(i int) {
	if i < 0 || i >= len(n.outputs) {
		n.logError("PortKindMismatch: output index %d out of range on node %s", i, n.Identifier())
		return
	}
	if n.flow.runningWithExecutor {
		n.flow.dataOpt.ExecOutput(n, i)
		return
	}
	if err := n.outputs[i].Exec(); err != nil {
		n.logError("PortKindMismatch: %v", err)
	}
}

// SetOutputVal writes data output i's value, pushing it downstream
// unless the flow is running in AlgExec mode.
func (n *Node) SetOutputVal(i int, v any) {
	if i < 0 || i >= len(n.outputs) {
		n.logError("PortKindMismatch: output index %d out of range on node %s", i, n.Identifier())
		return
	}
	if n.flow.runningWithExecutor {
		n.flow.dataOpt.SetOutputVal(n, i, v)
		return
	}
	if err := n.outputs[i].SetVal(v); err != nil {
		n.logError("PortKindMismatch: %v", err)
	}
}

// CreateInput grows the node's input port list, folding §4.3's
// create_input and create_input_dt into one signature since Go has no
// overloading. insert is the index to place the new port at; -1 (or any
// out-of-range index) appends at the end.
func (n *Node) CreateInput(label string, kind PortKind, dtype string, addData map[string]any, insert int) *Port {
	p := newPort(n, Input, kind, label, dtype)
	p.AddData = addData
	n.inputs = insertPort(n.inputs, p, insert)
	return p
}

// CreateOutput grows the node's output port list; insert is the index
// to place the new port at, -1 (or any out-of-range index) appends.
func (n *Node) CreateOutput(label string, kind PortKind, dtype string, insert int) *Port {
	p := newPort(n, Output, kind, label, dtype)
	n.outputs = insertPort(n.outputs, p, insert)
	return p
}

func insertPort(ports []*Port, p *Port, insert int) []*Port {
	if insert < 0 || insert > len(ports) {
		return append(ports, p)
	}
	ports = append(ports, nil)
	copy(ports[insert+1:], ports[insert:])
	ports[insert] = p
	return ports
}

// RenameInput changes input i's label in place.
func (n *Node) RenameInput(i int, label string) { n.inputs[i].label = label }

// RenameOutput changes output i's label in place.
func (n *Node) RenameOutput(i int, label string) { n.outputs[i].label = label }

// DeleteInput disconnects and removes input i. Disconnection goes
// through Flow.ConnectNodes's toggle so the flow's derived state
// (successor map, dataOpt cache) stays consistent, and the dataOpt
// cache is marked stale once the port is gone.
func (n *Node) DeleteInput(i int) {
	p := n.inputs[i]
	for _, c := range append([]*Connection(nil), p.connections...) {
		n.flow.ConnectNodes(c.Out, c.Inp)
	}
	n.inputs = append(n.inputs[:i], n.inputs[i+1:]...)
	n.flow.flowChanged()
}

// DeleteOutput disconnects and removes output i.
func (n *Node) DeleteOutput(i int) {
	p := n.outputs[i]
	for _, c := range append([]*Connection(nil), p.connections...) {
		n.flow.ConnectNodes(c.Out, c.Inp)
	}
	n.outputs = append(n.outputs[:i], n.outputs[i+1:]...)
}

// Data serializes this node into a NodeRecord, including its
// Behavior's state (wrapped via the Flow's active Serializer) and any
// additional host metadata.
func (n *Node) Data() NodeRecord {
	rec := NodeRecord{
		Identifier: n.Identifier(),
		Version:    n.Version(),
		GID:        n.gid,
	}
	if state, err := n.behavior.GetState(); err != nil {
		n.logError("get_state failed on node %s: %v", n.Identifier(), err)
	} else if state != nil {
		blob, err := n.flow.serializer.Serialize(state)
		if err != nil {
			n.logError("failed to encode state on node %s: %v", n.Identifier(), err)
		} else {
			rec.StateData = blob
		}
	}
	rec.AdditionalData = n.behavior.AdditionalData()
	for _, p := range n.inputs {
		ir := InputPortRecord{Label: p.label, Type: "data", DType: p.dtype}
		if p.kind == KindExec {
			ir.Type = "exec"
		}
		if p.kind == KindData && p.val != nil {
			if blob, err := n.flow.serializer.Serialize(p.val); err == nil {
				ir.Val = blob
			}
		}
		if p.dtypeState != nil {
			if blob, err := n.flow.serializer.Serialize(p.dtypeState); err == nil {
				ir.DTypeState = blob
			}
		}
		rec.Inputs = append(rec.Inputs, ir)
	}
	for _, p := range n.outputs {
		or := OutputPortRecord{Label: p.label, Type: "data"}
		if p.kind == KindExec {
			or.Type = "exec"
		}
		rec.Outputs = append(rec.Outputs, or)
	}
	return rec
}
