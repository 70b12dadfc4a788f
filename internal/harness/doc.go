// Package harness loads declarative query scenarios from CUE files and
// compiles them through the public builder API, so that a directory of
// scenarios plus golden SQL files forms a conformance suite for the
// dialect renderer.
//
// A scenario file declares queries under a top-level "scenario" struct:
//
//	scenario: active_users: {
//		kind:    "select"
//		table:   "users"
//		columns: ["id", "name"]
//		where: [{column: "status", op: "eq", value: "active"}]
//		orderBy: [{column: "id", desc: true}]
//		limit: 10
//	}
//
// Scenarios are pure descriptions; Build turns one into SQL text and
// AssertGolden compares that text against testdata/golden/<name>.golden.
package harness
