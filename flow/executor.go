package flow

// Executor is the strategy FlowCore binds in place of direct Port
// dispatch for the one algorithm that needs it: AlgDataOpt. Data and
// Exec mode don't bind an Executor at all — they dispatch straight to
// Port methods, which branch on Flow.algMode themselves (see port.go)
// — so that "an Executor is bound" stays synonymous with "the flow is
// running in AlgDataOpt mode" (the invariant §4.5 calls out explicitly).
type Executor interface {
	UpdateNode(n *Node, inp int)
	Input(n *Node, i int) any
	ExecOutput(n *Node, i int)
	SetOutputVal(n *Node, i int, v any)
	// FlowChanged marks any structures the executor has precomputed
	// from the flow's graph as stale, to be rebuilt lazily on next use.
	FlowChanged()
}

// dataOptExecutor implements AlgDataOpt. It is observably identical to
// direct AlgData dispatch (push on write, read cached value) but caches
// each input port's index within its owning node so that repeated
// activation doesn't repeat a linear scan over every flow event between
// graph edits — the amortization §9's design note describes.
type dataOptExecutor struct {
	flow      *Flow
	dirty     bool
	portIndex map[*Port]int
}

var _ Executor = (*dataOptExecutor)(nil)

func newDataOptExecutor(f *Flow) *dataOptExecutor {
	return &dataOptExecutor{flow: f, dirty: true}
}

func (e *dataOptExecutor) FlowChanged() { e.dirty = true }

func (e *dataOptExecutor) refreshIfDirty() {
	if !e.dirty {
		return
	}
	e.portIndex = make(map[*Port]int)
	for _, n := range e.flow.nodes {
		for i, p := range n.inputs {
			e.portIndex[p] = i
		}
	}
	e.dirty = false
}

func (e *dataOptExecutor) UpdateNode(n *Node, inp int) {
	n.safeUpdateEvent(inp)
}

func (e *dataOptExecutor) Input(n *Node, i int) any {
	if i < 0 || i >= len(n.inputs) {
		n.logError("PortKindMismatch: input index %d out of range on node %s", i, n.Identifier())
		return nil
	}
	v, err := n.inputs[i].GetVal()
	if err != nil {
		n.logError("PortKindMismatch: %v", err)
		return nil
	}
	return v
}

func (e *dataOptExecutor) ExecOutput(n *Node, i int) {
	e.refreshIfDirty()
	out := n.outputs[i]
	if out.kind != KindExec {
		n.logError("PortKindMismatch: %v", &PortKindMismatchError{Port: out, Op: "ExecOutput"})
		return
	}
	for _, c := range out.connections {
		idx, ok := e.portIndex[c.Inp]
		if !ok {
			idx = c.Inp.node.inputIndex(c.Inp)
		}
		c.Inp.node.Update(idx)
	}
}

func (e *dataOptExecutor) SetOutputVal(n *Node, i int, v any) {
	e.refreshIfDirty()
	out := n.outputs[i]
	if out.kind != KindData {
		n.logError("PortKindMismatch: %v", &PortKindMismatchError{Port: out, Op: "SetOutputVal"})
		return
	}
	out.setRawValue(v)
	for _, c := range out.connections {
		idx, ok := e.portIndex[c.Inp]
		if !ok {
			idx = c.Inp.node.inputIndex(c.Inp)
		}
		c.Inp.node.Update(idx)
	}
}
