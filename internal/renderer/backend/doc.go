// Package backend provides the terminal frontend for riv, built on tcell.
//
// Terminal converts tcell events into input.Event values, keeps textures
// in main memory and draws each frame with upper half block characters,
// two image pixels per cell. Run drives a renderer.Viewer from the tcell
// event queue.
package backend
