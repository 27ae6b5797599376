package flow

import "fmt"

// PortIOPos distinguishes a node's input ports from its output ports.
type PortIOPos int

const (
	Input PortIOPos = iota
	Output
)

// PortKind distinguishes a data port (carries a value) from an exec
// port (carries only an activation pulse).
type PortKind int

const (
	KindData PortKind = iota
	KindExec
)

// Port is one named connection point on a Node. Ports never outlive
// their owning Node; Flow addresses them only through the Node that
// created them.
type Port struct {
	node        *Node
	ioPos       PortIOPos
	kind        PortKind
	label       string
	dtype       string
	dtypeState  any
	val         any
	connections []*Connection

	// AddData is opaque host metadata attached at port-creation time
	// (e.g. a widget default). FlowCore never interprets it.
	AddData map[string]any

	// OnConnected/OnDisconnected, if set, are invoked whenever a
	// connection touching this port is added or removed. They are the
	// Go-idiomatic substitute for a per-port observer callback; most
	// node behaviors never need them.
	OnConnected    func(*Port)
	OnDisconnected func(*Port)
}

func newPort(n *Node, ioPos PortIOPos, kind PortKind, label, dtype string) *Port {
	return &Port{node: n, ioPos: ioPos, kind: kind, label: label, dtype: dtype}
}

func (p *Port) Node() *Node       { return p.node }
func (p *Port) IOPos() PortIOPos  { return p.ioPos }
func (p *Port) Kind() PortKind    { return p.kind }
func (p *Port) Label() string     { return p.label }
func (p *Port) DType() string     { return p.dtype }

// DTypeState returns opaque dtype-specific state attached to this port
// (e.g. a widget's extra configuration), round-tripped through
// InputPortRecord's "dtype state" key. FlowCore never interprets it.
func (p *Port) DTypeState() any      { return p.dtypeState }
func (p *Port) SetDTypeState(v any)  { p.dtypeState = v }
func (p *Port) Connections() []*Connection {
	out := make([]*Connection, len(p.connections))
	copy(out, p.connections)
	return out
}
func (p *Port) IsConnected() bool { return len(p.connections) > 0 }

func (p *Port) rawValue() any      { return p.val }
func (p *Port) setRawValue(v any)  { p.val = v }

// GetVal reads a data port's value. On an input of a flow running in
// AlgExec mode, this pulls: it updates the upstream node before reading
// the cached value the update just wrote, per §4.5's pull semantics.
// On an output, or an input in AlgData/AlgDataOpt mode, it simply
// returns the last written value.
func (p *Port) GetVal() (any, error) {
	if p.kind != KindData {
		return nil, &PortKindMismatchError{Port: p, Op: "GetVal"}
	}
	if p.ioPos == Output || len(p.connections) == 0 {
		return p.val, nil
	}
	c := p.connections[0]
	if p.node.flow.algMode == AlgExec {
		// -1: this update was not triggered by a specific input, it was
		// pulled by a downstream read.
		c.Out.node.Update(-1)
	}
	return c.Out.val, nil
}

// SetVal writes a data output's value. In AlgData and AlgDataOpt modes
// this also activates every downstream input (push). In AlgExec mode it
// only writes the value; propagation instead happens through Exec.
func (p *Port) SetVal(v any) error {
	if p.kind != KindData {
		return &PortKindMismatchError{Port: p, Op: "SetVal"}
	}
	p.val = v
	if p.ioPos != Output {
		return nil
	}
	if p.node.flow.algMode == AlgExec {
		return nil
	}
	for _, c := range p.connections {
		c.Inp.node.Update(c.Inp.node.inputIndex(c.Inp))
	}
	return nil
}

// Exec activates every exec connection leaving this output port. Exec
// propagation is mode-agnostic: an exec pulse behaves identically
// whether the flow is in AlgData, AlgExec, or AlgDataOpt mode.
func (p *Port) Exec() error {
	if p.kind != KindExec {
		return &PortKindMismatchError{Port: p, Op: "Exec"}
	}
	for _, c := range p.connections {
		c.Inp.node.Update(c.Inp.node.inputIndex(c.Inp))
	}
	return nil
}

func (p *Port) String() string {
	pos := "in"
	if p.ioPos == Output {
		pos = "out"
	}
	return fmt.Sprintf("%s.%s[%s]", p.node.Identifier(), p.label, pos)
}
