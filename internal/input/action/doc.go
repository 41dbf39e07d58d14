// Package action defines the closed vocabulary exchanged between the input
// resolver, the mode machine and the application loop.
//
// Action is a single intent such as Next or Zoom(In). ProcessAction pairs an
// Action with a repeat count. MultiNormalAction is what count entry produces:
// either a request for more digits or a finished ProcessAction to run.
package action
