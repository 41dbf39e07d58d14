// Package state holds the viewer session state: the input mode, the last
// action for replay, the pending repeat count and the view transform.
//
// State is created once with New and owned by the application loop. It is
// not safe for concurrent use.
package state
