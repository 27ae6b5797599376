// FlowCore - a dataflow graph engine for Go
//
// FlowCore models a program as a graph of typed Ports wired together by
// Connections, grouped into Nodes, owned by a Flow that enforces
// connection legality, dispatches activation through one of three
// pluggable algorithms, and serializes/restores itself through a
// project-file protocol.
//
// # Quick Start
//
// Install the package:
//
//	go get flowcore
//
// Basic example:
//
//	package main
//
//	import (
//		"fmt"
//
//		"flowcore/flow"
//	)
//
//	func main() {
//		f := flow.New(nil, nil, flow.FlowOptions{})
//
//		registry := &flow.Registry{}
//		registry.Register(&flow.NodeClass{
//			Identifier:  "math.constant",
//			Version:     "1.0",
//			InitOutputs: []flow.PortBlueprint{{Label: "value", Kind: flow.KindData}},
//			New:         func() flow.Behavior { return &flow.BaseBehavior{} },
//		})
//
//		n := f.NewNode(registry.Visible[0])
//		n.SetOutputVal(0, 42)
//		fmt.Println(n.Outputs()[0])
//	}
//
// # Key Features
//
//   - Typed ports and toggle-connect semantics with legality enforcement
//   - Three pluggable activation algorithms: push (data), pull (exec),
//     and an optimized push that caches port-index lookups (data opt)
//   - A synchronous, single-threaded, depth-first event bus
//   - A project-file load/save protocol (flow.FlowRecord) in JSON or YAML
//   - Durable storage backends for flow records: memory, file, SQLite,
//     Postgres, and Redis (package flowstore)
//
// # Package Structure
//
// flow/
// The graph model itself: Port, Connection, Node, Behavior, Flow, and
// the load/save protocol. See package flow's own doc comment for a
// walkthrough.
//
// flowstore/
// Durable persistence for flow.FlowRecord, with one backend per storage
// engine (memory, file, sqlite, postgres, redis) behind a common
// flowstore.Store interface.
//
// log/
// The logging surface every Node and Flow can report through.
//
//	logger := log.NewDefaultLogger(log.LogLevelInfo)
//	f := flow.New(nil, nil, flow.FlowOptions{Logger: logger})
//
// # License
//
// This project is licensed under the MIT License - see the LICENSE file for details.
package flowcore
