// Package window provides the graphical frontend for riv, built on ebiten.
//
// Backend creates GPU textures and uploads surfaces into them one row band
// at a time with WritePixels on a sub-image. Game adapts a
// renderer.Viewer to ebiten's Update/Draw loop: input is collected in
// Update, converted to input.Event values and handed to the viewer, and
// Draw places the texture with a GeoM built from the renderer layout.
package window
