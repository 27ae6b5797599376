package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectNodes_TogglesConnection(t *testing.T) {
	f := newTestFlow()
	class := newRecorderClass("test.recorder")
	a := f.NewNode(class)
	b := f.NewNode(class)

	c, err := f.ConnectNodes(a.outputs[0], b.inputs[0])
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, a.outputs[0].IsConnected())
	assert.True(t, b.inputs[0].IsConnected())
	assert.Equal(t, []*Node{b}, f.Successors(a))

	// second call on the same pair toggles the connection back off
	c2, err := f.ConnectNodes(b.inputs[0], a.outputs[0])
	require.NoError(t, err)
	assert.Nil(t, c2)
	assert.False(t, a.outputs[0].IsConnected())
	assert.Empty(t, f.Successors(a))
}

func TestConnectNodes_RejectsKindMismatch(t *testing.T) {
	f := newTestFlow()
	dataClass := newRecorderClass("test.recorder")
	execClass := newExecClass("test.exec")
	a := f.NewNode(dataClass)
	b := f.NewNode(execClass)

	_, err := f.ConnectNodes(a.outputs[0], b.inputs[0]) // data out -> exec in
	require.Error(t, err)
	var illegal *IllegalConnectionError
	assert.ErrorAs(t, err, &illegal)
}

func TestConnectNodes_RejectsSameNode(t *testing.T) {
	f := newTestFlow()
	class := newExecClass("test.exec")
	n := f.NewNode(class)

	_, err := f.ConnectNodes(n.outputs[0], n.inputs[1]) // same node, both data
	require.Error(t, err)
}

func TestConnectNodes_RejectsSameIOPosition(t *testing.T) {
	f := newTestFlow()
	class := newRecorderClass("test.recorder")
	a := f.NewNode(class)
	b := f.NewNode(class)

	_, err := f.ConnectNodes(a.inputs[0], b.inputs[0])
	require.Error(t, err)
}

func TestRemoveNode_RejectsStillConnected(t *testing.T) {
	f := newTestFlow()
	class := newRecorderClass("test.recorder")
	a := f.NewNode(class)
	b := f.NewNode(class)
	_, err := f.ConnectNodes(a.outputs[0], b.inputs[0])
	require.NoError(t, err)

	err = f.RemoveNode(a)
	var stillConnected *NodeStillConnectedError
	require.ErrorAs(t, err, &stillConnected)

	_, err = f.ConnectNodes(a.outputs[0], b.inputs[0]) // disconnect first
	require.NoError(t, err)
	require.NoError(t, f.RemoveNode(a))
	assert.NotContains(t, f.Nodes(), a)
}

func TestSetOutputVal_PropagatesInDataMode(t *testing.T) {
	f := newTestFlow()
	class := newRecorderClass("test.recorder")
	a := f.NewNode(class)
	b := f.NewNode(class)
	_, err := f.ConnectNodes(a.outputs[0], b.inputs[0])
	require.NoError(t, err)

	a.SetOutputVal(0, 42)

	bb := b.behavior.(*recorderBehavior)
	assert.Equal(t, 1, bb.updates)
	got, _ := b.inputs[0].GetVal()
	assert.Equal(t, 42, got)
}

func TestSetOutputVal_DoesNotPropagateInExecMode(t *testing.T) {
	f := newTestFlow()
	require.NoError(t, f.SetAlgorithmMode("exec"))
	class := newRecorderClass("test.recorder")
	a := f.NewNode(class)
	b := f.NewNode(class)
	_, err := f.ConnectNodes(a.outputs[0], b.inputs[0])
	require.NoError(t, err)

	a.SetOutputVal(0, 7)

	bb := b.behavior.(*recorderBehavior)
	assert.Equal(t, 0, bb.updates, "exec mode must not push on write")

	// a pull reads the upstream value by updating it first
	got, _ := b.inputs[0].GetVal()
	assert.Equal(t, 7, got)
}

func TestRunningWithExecutorMatchesAlgDataOptOnly(t *testing.T) {
	f := newTestFlow()
	assert.False(t, f.RunningWithExecutor())

	require.NoError(t, f.SetAlgorithmMode("exec"))
	assert.False(t, f.RunningWithExecutor())

	require.NoError(t, f.SetAlgorithmMode("data opt"))
	assert.True(t, f.RunningWithExecutor())
}

func TestSetAlgorithmMode_AcceptsLegacyAliasEmitsCanonical(t *testing.T) {
	f := newTestFlow()
	require.NoError(t, f.SetAlgorithmMode("data flow"))
	assert.Equal(t, AlgData, f.AlgorithmMode())

	var gotEvent string
	f.AlgorithmModeChanged.Subscribe(func(s string) { gotEvent = s })
	require.NoError(t, f.SetAlgorithmMode("exec flow"))
	assert.Equal(t, "exec", gotEvent, "legacy alias is accepted but canonical form is emitted")
}

func TestSetAlgorithmMode_UnknownLeavesStateUnchanged(t *testing.T) {
	f := newTestFlow()
	require.NoError(t, f.SetAlgorithmMode("exec"))

	err := f.SetAlgorithmMode("bogus")
	assert.ErrorIs(t, err, ErrUnknownAlgorithmMode)
	assert.Equal(t, AlgExec, f.AlgorithmMode(), "state must be unchanged after a rejected mode switch")
}

func TestDataOptMode_ObservablyEquivalentToData(t *testing.T) {
	f := newTestFlow()
	require.NoError(t, f.SetAlgorithmMode("data opt"))
	class := newRecorderClass("test.recorder")
	a := f.NewNode(class)
	b := f.NewNode(class)
	_, err := f.ConnectNodes(a.outputs[0], b.inputs[0])
	require.NoError(t, err)

	a.SetOutputVal(0, "hello")

	bb := b.behavior.(*recorderBehavior)
	assert.Equal(t, 1, bb.updates)
	got, _ := b.inputs[0].GetVal()
	assert.Equal(t, "hello", got)
}

func TestDataRoundTrip(t *testing.T) {
	f := newTestFlow()
	registry := &Registry{}
	registry.Register(newRecorderClass("test.recorder"))

	a := f.NewNode(registry.Visible[0])
	b := f.NewNode(registry.Visible[0])
	a.behavior.(*recorderBehavior).state = map[string]any{"count": float64(3)}
	_, err := f.ConnectNodes(a.outputs[0], b.inputs[0])
	require.NoError(t, err)

	rec := f.Data()
	assert.Equal(t, "data", rec.AlgorithmMode)
	require.Len(t, rec.Nodes, 2)
	require.Len(t, rec.Connections, 1)
	require.NotNil(t, rec.Connections[0].ConnectedNode)
	assert.Equal(t, 1, *rec.Connections[0].ConnectedNode)

	f2 := newTestFlow()
	nodes, conns, err := f2.Load(rec, registry)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Len(t, conns, 1)
	assert.Equal(t, "data", f2.AlgorithmMode().String())
	assert.Equal(t, map[string]any{"count": float64(3)}, nodes[0].behavior.(*recorderBehavior).state)
}

func TestLoad_SuppressesInitUpdatesWhenClassRequestsIt(t *testing.T) {
	f := newTestFlow()
	registry := &Registry{}
	blockClass := newRecorderClass("test.blocked")
	blockClass.BlockInitUpdates = true
	registry.Register(blockClass)

	rec := FlowRecord{
		AlgorithmMode: "data",
		Nodes: []NodeRecord{
			{Identifier: "test.blocked", Version: "1.0", Inputs: []InputPortRecord{{Label: "in", Type: "data"}}, Outputs: []OutputPortRecord{{Label: "out", Type: "data"}}},
			{Identifier: "test.blocked", Version: "1.0", Inputs: []InputPortRecord{{Label: "in", Type: "data"}}, Outputs: []OutputPortRecord{{Label: "out", Type: "data"}}},
		},
		Connections: []ConnectionRecord{
			{ParentNodeIndex: 0, OutputPortIndex: 0, ConnectedNode: intPtr(1), ConnectedInputPortIndex: 0},
		},
	}

	nodes, _, err := f.Load(rec, registry)
	require.NoError(t, err)

	downstream := nodes[1].behavior.(*recorderBehavior)
	assert.Equal(t, 0, downstream.updates, "connecting during load must not trigger update_event")
	assert.False(t, nodes[0].blockUpdates, "blockUpdates must be released once load finishes")
}

func TestLoad_UnknownIdentifierAborts(t *testing.T) {
	f := newTestFlow()
	registry := &Registry{}

	_, _, err := f.Load(FlowRecord{
		AlgorithmMode: "data",
		Nodes:         []NodeRecord{{Identifier: "nope"}},
	}, registry)

	var unknown *UnknownNodeIdentifierError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Identifier)
}

func TestGenConnsData_OmitsConnectionsLeavingSelection(t *testing.T) {
	f := newTestFlow()
	class := newRecorderClass("test.recorder")
	a := f.NewNode(class)
	b := f.NewNode(class)
	_, err := f.ConnectNodes(a.outputs[0], b.inputs[0])
	require.NoError(t, err)

	recs := f.GenConnsData([]*Node{a})
	assert.Empty(t, recs, "connection leaving the selection must be omitted")

	recs = f.GenConnsData([]*Node{a, b})
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].ConnectedNode)
	assert.Equal(t, 1, *recs[0].ConnectedNode)
}

func TestExecPulse_TriggersDownstreamPullThenUpdate(t *testing.T) {
	f := newTestFlow()
	require.NoError(t, f.SetAlgorithmMode("exec"))
	class := newExecClass("test.exec")
	a := f.NewNode(class)
	b := f.NewNode(class)

	_, err := f.ConnectNodes(a.outputs[0], b.inputs[1]) // data: a.out -> b.in
	require.NoError(t, err)
	_, err = f.ConnectNodes(a.outputs[1], b.inputs[0]) // exec: a.exec out -> b.trigger
	require.NoError(t, err)

	a.SetOutputVal(0, "pulse-payload")

	bb := b.behavior.(*execRecorderBehavior)
	assert.Equal(t, 0, bb.updates, "writing a's data output must not itself trigger b in exec mode")

	a.ExecOutput(1)

	assert.Equal(t, 1, bb.updates, "the exec pulse must trigger exactly one update on b")
	got, _ := b.outputs[0].GetVal()
	assert.Equal(t, "pulse-payload", got, "b must have pulled a's value through its data input and written its own output")
}

func intPtr(i int) *int { return &i }
