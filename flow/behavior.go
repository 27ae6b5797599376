package flow

// Behavior is the capability set a node type implements: everything a
// host plugs in at the points a Node itself only dispatches to. Embed
// BaseBehavior to pick up no-op defaults for whichever hooks a
// particular node type doesn't need, the same way the teacher's
// CheckpointListener embeds NoOpCallbackHandler (graph/checkpointing.go)
// rather than implementing every hook of a wide interface.
type Behavior interface {
	// Bind is called once, before any other hook, with the Node this
	// Behavior instance belongs to.
	Bind(n *Node)

	// UpdateEvent runs when the node is asked to recompute. inp is the
	// index of the input port that triggered the update, or -1 when the
	// update was not triggered by a specific input (a forced update, or
	// a pull triggered by a downstream read in AlgExec mode).
	UpdateEvent(inp int) error

	// PlaceEvent runs once, after a node has been fully added to a Flow
	// (all ports constructed) — the moment the original node-editor
	// framework calls after_placement.
	PlaceEvent()
	// ViewPlaceEvent runs when a host-side view for this node has been
	// constructed; FlowCore never calls this itself, but a host using
	// visual construction can, mirroring Flow.node_view_placed.
	ViewPlaceEvent()
	// RemoveEvent runs once, just before a node is removed from its
	// Flow (mirroring prepare_removal).
	RemoveEvent()

	// GetState/SetState serialize and restore opaque behavior-specific
	// state across a Data()/Load() round trip. version is the class
	// Version string the state was saved under; a Behavior that changed
	// its state shape across versions can use it to migrate.
	GetState() (any, error)
	SetState(data any, version string) error

	// AdditionalData/LoadAdditionalData round-trip host metadata that
	// isn't behavior state proper (e.g. a UI position) but still needs
	// to survive Data()/Load().
	AdditionalData() map[string]any
	LoadAdditionalData(data map[string]any) error
}

// BaseBehavior is a no-op Behavior meant to be embedded by value or
// pointer in a concrete node type, so that only the hooks that type
// actually cares about need overriding.
type BaseBehavior struct {
	Node *Node
}

func (b *BaseBehavior) Bind(n *Node)                             { b.Node = n }
func (b *BaseBehavior) UpdateEvent(inp int) error                 { return nil }
func (b *BaseBehavior) PlaceEvent()                               {}
func (b *BaseBehavior) ViewPlaceEvent()                           {}
func (b *BaseBehavior) RemoveEvent()                              {}
func (b *BaseBehavior) GetState() (any, error)                    { return nil, nil }
func (b *BaseBehavior) SetState(data any, version string) error   { return nil }
func (b *BaseBehavior) AdditionalData() map[string]any            { return nil }
func (b *BaseBehavior) LoadAdditionalData(data map[string]any) error { return nil }

var _ Behavior = (*BaseBehavior)(nil)
