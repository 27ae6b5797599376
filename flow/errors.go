package flow

import "fmt"

// ErrUnknownAlgorithmMode is returned by Flow.SetAlgorithmMode when the
// requested mode string is neither a canonical algorithm name nor one of
// the legacy aliases accepted on load.
var ErrUnknownAlgorithmMode = fmt.Errorf("flow: unknown algorithm mode")

// IllegalConnectionError is returned by Flow.ConnectNodes when the
// requested pair of ports fails the legality check (same node, matching
// I/O position, or mismatched port kind). It is never logged: the caller
// is expected to have offered the connection speculatively and to treat
// this as an ordinary negative result.
type IllegalConnectionError struct {
	Out *Port
	Inp *Port
}

func (e *IllegalConnectionError) Error() string {
	return fmt.Sprintf("flow: illegal connection between %s and %s", e.Out.Label(), e.Inp.Label())
}

// NodeStillConnectedError is returned by Flow.RemoveNode when the node
// still has at least one incident connection. Callers must disconnect a
// node's ports before removing it; the flow never severs connections on
// a caller's behalf.
type NodeStillConnectedError struct {
	Node *Node
}

func (e *NodeStillConnectedError) Error() string {
	return fmt.Sprintf("flow: node %s still has connected ports", e.Node.Identifier())
}

// UnknownNodeIdentifierError is returned by Flow.Load when a node record
// names an identifier that is not registered in the Registry passed to
// Load. Unlike PortKindMismatch and UserUpdateFailure, this is not
// absorbed: it aborts the load and is returned to the caller.
type UnknownNodeIdentifierError struct {
	Identifier string
}

func (e *UnknownNodeIdentifierError) Error() string {
	return fmt.Sprintf("flow: unknown node identifier %q", e.Identifier)
}

// PortKindMismatchError describes a port used with the wrong value/exec
// operation (e.g. Exec on a data port, SetVal or GetVal on an exec port).
// Port's GetVal/SetVal/Exec return it; Node's Input/SetOutputVal/
// ExecOutput log it and absorb it instead of returning it.
type PortKindMismatchError struct {
	Port *Port
	Op   string
}

func (e *PortKindMismatchError) Error() string {
	return fmt.Sprintf("flow: %s not valid on port %s", e.Op, e.Port.Label())
}
