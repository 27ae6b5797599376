package flow

// recorderBehavior counts UpdateEvent calls and pushes any value
// written to input 0 straight to output 0, so a connected pair of
// recorderBehavior nodes can be used to observe propagation.
type recorderBehavior struct {
	BaseBehavior
	updates    int
	lastInput  int
	placed     bool
	removed    bool
	state      any
	stateVer   string
	additional map[string]any
}

func (b *recorderBehavior) UpdateEvent(inp int) error {
	b.updates++
	b.lastInput = inp
	if inp >= 0 {
		if v := b.Node.Input(inp); v != nil {
			b.Node.SetOutputVal(0, v)
		}
	}
	return nil
}

func (b *recorderBehavior) PlaceEvent()  { b.placed = true }
func (b *recorderBehavior) RemoveEvent() { b.removed = true }

func (b *recorderBehavior) GetState() (any, error) { return b.state, nil }
func (b *recorderBehavior) SetState(data any, version string) error {
	b.state = data
	b.stateVer = version
	return nil
}

func (b *recorderBehavior) AdditionalData() map[string]any { return b.additional }
func (b *recorderBehavior) LoadAdditionalData(data map[string]any) error {
	b.additional = data
	return nil
}

func newRecorderClass(identifier string) *NodeClass {
	return &NodeClass{
		Identifier: identifier,
		Version:    "1.0",
		InitInputs: []PortBlueprint{
			{Label: "in", Kind: KindData},
		},
		InitOutputs: []PortBlueprint{
			{Label: "out", Kind: KindData},
		},
		New: func() Behavior { return &recorderBehavior{} },
	}
}

// execRecorderBehavior only reacts to its exec trigger input (index 0):
// it pulls its data input (index 1) and writes the result to its data
// output (index 0), the shape S6 describes for an exec-pulsed node.
type execRecorderBehavior struct {
	BaseBehavior
	updates int
}

func (b *execRecorderBehavior) UpdateEvent(inp int) error {
	b.updates++
	if inp == 0 {
		b.Node.SetOutputVal(0, b.Node.Input(1))
	}
	return nil
}

func newExecClass(identifier string) *NodeClass {
	return &NodeClass{
		Identifier: identifier,
		Version:    "1.0",
		InitInputs: []PortBlueprint{
			{Label: "trigger", Kind: KindExec},
			{Label: "in", Kind: KindData},
		},
		InitOutputs: []PortBlueprint{
			{Label: "out", Kind: KindData},
			{Label: "exec out", Kind: KindExec},
		},
		New: func() Behavior { return &execRecorderBehavior{} },
	}
}

func newTestFlow() *Flow {
	return New(nil, nil, FlowOptions{})
}
