package flow

// Data serializes the flow into a FlowRecord: the active algorithm
// mode, every node, and every connection expressed as index pairs into
// the node list, via GenConnsData.
func (f *Flow) Data() FlowRecord {
	return FlowRecord{
		AlgorithmMode: f.algMode.String(),
		Nodes:         f.genNodesData(f.nodes),
		Connections:   f.GenConnsData(f.nodes),
		GID:           f.gid,
	}
}

func (f *Flow) genNodesData(nodes []*Node) []NodeRecord {
	recs := make([]NodeRecord, len(nodes))
	for i, n := range nodes {
		recs[i] = n.Data()
	}
	return recs
}

// GenConnsData serializes every connection whose source and destination
// nodes are both in nodes. A connection whose destination node is NOT in
// nodes is omitted, so that a selection-scoped save (copy/export a subset
// of a flow) never references an index that wouldn't resolve in the
// exported subset.
func (f *Flow) GenConnsData(nodes []*Node) []ConnectionRecord {
	index := make(map[*Node]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}
	var recs []ConnectionRecord
	for i, n := range nodes {
		for j, out := range n.outputs {
			for _, c := range out.connections {
				idx, ok := index[c.Inp.node]
				if !ok {
					continue
				}
				ci := idx
				rec := ConnectionRecord{
					GID:                     c.GID,
					ParentNodeIndex:         i,
					OutputPortIndex:         j,
					ConnectedNode:           &ci,
					ConnectedInputPortIndex: c.Inp.node.inputIndex(c.Inp),
				}
				recs = append(recs, rec)
			}
		}
	}
	return recs
}

// Load reconstructs nodes and connections from rec, resolving each
// node's identifier through registry. It follows the protocol in §6:
//  1. switch algorithm mode (accepting legacy aliases)
//  2. construct every node (aborting with UnknownNodeIdentifierError on
//     the first unresolvable identifier)
//  3. block update_event on every node whose class requests it
//  4. connect nodes per the connection records
//  5. unblock those nodes
//
// Load returns the newly created nodes and connections so a caller
// doing a partial/merge load can track what was added.
func (f *Flow) Load(rec FlowRecord, registry *Registry) ([]*Node, []*Connection, error) {
	if err := f.SetAlgorithmMode(rec.AlgorithmMode); err != nil {
		return nil, nil, err
	}
	newNodes, err := f.createNodesFromData(rec.Nodes, registry)
	if err != nil {
		return nil, nil, err
	}
	var blocked []*Node
	for _, n := range newNodes {
		if n.class.BlockInitUpdates {
			n.blockUpdates = true
			blocked = append(blocked, n)
		}
	}
	newConns, err := f.connectNodesFromData(newNodes, rec.Connections)
	for _, n := range blocked {
		n.blockUpdates = false
	}
	if err != nil {
		return newNodes, newConns, err
	}
	return newNodes, newConns, nil
}

func (f *Flow) createNodesFromData(recs []NodeRecord, registry *Registry) ([]*Node, error) {
	nodes := make([]*Node, 0, len(recs))
	for _, rec := range recs {
		class, ok := registry.Lookup(rec.Identifier)
		if !ok {
			return nil, &UnknownNodeIdentifierError{Identifier: rec.Identifier}
		}
		n := newNode(f, class)
		if rec.GID != "" {
			n.gid = rec.GID
		}
		r := rec
		n.initializeFromRecord(&r)
		f.AddNode(n)
		nodes = append(nodes, n)
	}
	f.NodesCreatedFromData.Emit(nodes)
	return nodes, nil
}

func (f *Flow) connectNodesFromData(nodes []*Node, recs []ConnectionRecord) ([]*Connection, error) {
	var conns []*Connection
	for _, rec := range recs {
		if rec.ConnectedNode == nil {
			continue
		}
		if rec.ParentNodeIndex < 0 || rec.ParentNodeIndex >= len(nodes) {
			continue
		}
		if *rec.ConnectedNode < 0 || *rec.ConnectedNode >= len(nodes) {
			continue
		}
		parent := nodes[rec.ParentNodeIndex]
		connected := nodes[*rec.ConnectedNode]
		if rec.OutputPortIndex < 0 || rec.OutputPortIndex >= len(parent.outputs) {
			continue
		}
		if rec.ConnectedInputPortIndex < 0 || rec.ConnectedInputPortIndex >= len(connected.inputs) {
			continue
		}
		out := parent.outputs[rec.OutputPortIndex]
		inp := connected.inputs[rec.ConnectedInputPortIndex]
		c, err := f.ConnectNodes(out, inp)
		if err != nil {
			return conns, err
		}
		if c != nil {
			conns = append(conns, c)
		}
	}
	f.ConnectionsCreatedFromData.Emit(conns)
	return conns, nil
}
