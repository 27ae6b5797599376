package flow

import (
	"github.com/google/uuid"

	"flowcore/log"
)

func newGID() string { return uuid.NewString() }

// FlowOptions configures a new Flow, following the teacher's
// XxxOptions-struct convention (store/sqlite.SqliteOptions,
// store/redis.RedisOptions) rather than functional options.
type FlowOptions struct {
	// Logger receives messages the flow itself reports (as opposed to
	// a node's own loggers). Defaults to a no-op logger.
	Logger log.Logger
	// Serializer wraps node state and port values across Data()/Load().
	// Defaults to NewJSONSerializer().
	Serializer Serializer
}

// Flow owns a set of Nodes and the Connections between their ports. It
// enforces connection legality, maintains a derived node-to-successors
// index, dispatches node activation through the algorithm currently
// selected, and serializes/restores itself via Data()/Load().
//
// A Flow is not safe for concurrent use: its execution model is
// single-threaded and depth-first-re-entrant (§5), not goroutine-safe.
type Flow struct {
	// Session and Script are opaque host handles a Flow carries but
	// never interprets, mirroring the original's session/script
	// backreferences used only so a node can reach host-level state.
	Session any
	Script  any

	nodes       []*Node
	connections []*Connection
	successors  map[*Node][]*Node

	algMode              AlgMode
	runningWithExecutor  bool
	dataOpt              *dataOptExecutor

	logger     log.Logger
	serializer Serializer
	gid        string

	NodeAdded                  Event[*Node]
	NodeRemoved                Event[*Node]
	ConnectionAdded            Event[*Connection]
	ConnectionRemoved          Event[*Connection]
	ConnectionRequestValid     Event[bool]
	NodesCreatedFromData       Event[[]*Node]
	ConnectionsCreatedFromData Event[[]*Connection]
	AlgorithmModeChanged       Event[string]
}

// New constructs an empty Flow in AlgData mode.
func New(session, script any, opts FlowOptions) *Flow {
	logger := opts.Logger
	if logger == nil {
		logger = &log.NoOpLogger{}
	}
	ser := opts.Serializer
	if ser == nil {
		ser = NewJSONSerializer()
	}
	f := &Flow{
		Session:    session,
		Script:     script,
		successors: make(map[*Node][]*Node),
		algMode:    AlgData,
		logger:     logger,
		serializer: ser,
		gid:        newGID(),
	}
	f.dataOpt = newDataOptExecutor(f)
	return f
}

func (f *Flow) Nodes() []*Node { return append([]*Node(nil), f.nodes...) }
func (f *Flow) Connections() []*Connection {
	return append([]*Connection(nil), f.connections...)
}
func (f *Flow) AlgorithmMode() AlgMode     { return f.algMode }
func (f *Flow) RunningWithExecutor() bool  { return f.runningWithExecutor }
func (f *Flow) GID() string                { return f.gid }

// Successors returns the multiset of nodes n reaches over its data
// connections, derived incrementally as connections are added/removed.
func (f *Flow) Successors(n *Node) []*Node {
	return append([]*Node(nil), f.successors[n]...)
}

func (f *Flow) flowChanged() { f.dataOpt.FlowChanged() }

// SetAlgorithmMode switches the active algorithm. s may be a canonical
// spelling ("data", "exec", "data opt") or one of the legacy aliases
// ("data flow", "exec flow") a project file written by an older host
// might still use; either way AlgorithmModeChanged only ever emits the
// canonical spelling. On an unrecognized mode the flow's state is left
// unchanged and ErrUnknownAlgorithmMode is returned.
func (f *Flow) SetAlgorithmMode(s string) error {
	mode, ok := parseAlgMode(s)
	if !ok {
		return ErrUnknownAlgorithmMode
	}
	f.algMode = mode
	f.runningWithExecutor = mode == AlgDataOpt
	f.AlgorithmModeChanged.Emit(f.algMode.String())
	return nil
}

// NewNode constructs and places a fresh (not loaded) node of class,
// running its place_event hook before returning.
func (f *Flow) NewNode(class *NodeClass) *Node {
	n := newNode(f, class)
	n.initializeFresh()
	f.AddNode(n)
	return n
}

// AddNode places an already-constructed node into the flow.
func (f *Flow) AddNode(n *Node) {
	n.flow = f
	f.nodes = append(f.nodes, n)
	f.successors[n] = nil
	n.afterPlacement()
	f.flowChanged()
	f.NodeAdded.Emit(n)
}

// RemoveNode removes n from the flow. A node with any connected port
// cannot be removed: callers must disconnect first (this flow's
// resolution of the "remove a still-connected node" open question —
// NodeStillConnectedError rather than a silent cascading disconnect).
func (f *Flow) RemoveNode(n *Node) error {
	for _, p := range n.inputs {
		if p.IsConnected() {
			return &NodeStillConnectedError{Node: n}
		}
	}
	for _, p := range n.outputs {
		if p.IsConnected() {
			return &NodeStillConnectedError{Node: n}
		}
	}
	n.prepareRemoval()
	f.nodes = removeNode(f.nodes, n)
	delete(f.successors, n)
	f.flowChanged()
	f.NodeRemoved.Emit(n)
	return nil
}

// CheckConnectionValidity reports whether p1 and p2 could legally be
// connected: distinct nodes, opposite I/O position, matching port kind.
// Emits ConnectionRequestValid either way, mirroring
// Flow.check_connection_validity's event in the original.
func (f *Flow) CheckConnectionValidity(p1, p2 *Port) bool {
	valid := p1.node != p2.node && p1.ioPos != p2.ioPos && p1.kind == p2.kind
	f.ConnectionRequestValid.Emit(valid)
	return valid
}

// ConnectNodes toggles the connection between p1 and p2: if none exists
// and the pair is legal, it creates one; if one already exists, it
// removes it. An illegal pair returns a non-nil error and no
// connection; a successful toggle-off returns (nil, nil) distinct from
// that illegal case. p1/p2 may be given in either input/output order.
func (f *Flow) ConnectNodes(p1, p2 *Port) (*Connection, error) {
	if !f.CheckConnectionValidity(p1, p2) {
		return nil, &IllegalConnectionError{Out: p1, Inp: p2}
	}
	out, inp := p1, p2
	if out.ioPos == Input {
		out, inp = inp, out
	}
	for _, c := range out.connections {
		if c.Inp == inp {
			f.RemoveConnection(c)
			return nil, nil
		}
	}
	c := newConnection(out, inp, newGID())
	f.AddConnection(c)
	return c, nil
}

// AddConnection adds an already-constructed connection, firing port
// callbacks, updating the successors index, and emitting
// ConnectionAdded. Most callers should use ConnectNodes instead (as the
// load path does); calling AddConnection directly skips the legality
// check and the toggle-off lookup.
func (f *Flow) AddConnection(c *Connection) {
	c.Out.connections = append(c.Out.connections, c)
	c.Inp.connections = append(c.Inp.connections, c)
	if c.Out.OnConnected != nil {
		c.Out.OnConnected(c.Out)
	}
	if c.Inp.OnConnected != nil {
		c.Inp.OnConnected(c.Inp)
	}
	f.connections = append(f.connections, c)
	if c.Kind == DataConnection {
		f.successors[c.Out.node] = append(f.successors[c.Out.node], c.Inp.node)
	}
	f.flowChanged()
	f.ConnectionAdded.Emit(c)
}

// RemoveConnection removes c, undoing everything AddConnection did.
func (f *Flow) RemoveConnection(c *Connection) {
	c.Out.connections = removeConn(c.Out.connections, c)
	c.Inp.connections = removeConn(c.Inp.connections, c)
	if c.Out.OnDisconnected != nil {
		c.Out.OnDisconnected(c.Out)
	}
	if c.Inp.OnDisconnected != nil {
		c.Inp.OnDisconnected(c.Inp)
	}
	f.connections = removeConn(f.connections, c)
	if c.Kind == DataConnection {
		f.successors[c.Out.node] = removeNode(f.successors[c.Out.node], c.Inp.node)
	}
	f.flowChanged()
	f.ConnectionRemoved.Emit(c)
}

func removeNode(s []*Node, n *Node) []*Node {
	for i, q := range s {
		if q == n {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func removeConn(s []*Connection, c *Connection) []*Connection {
	for i, q := range s {
		if q == c {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
