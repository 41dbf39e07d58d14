// Package renderer provides the frontend-agnostic display layer for riv.
//
// The renderer is responsible for:
//   - Placing the image in the viewport (fit, zoom, pan, rotation, flips)
//   - Composing the infobar and help overlay text
//   - Colors and styles shared by the frontends
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│        app.Application (Frame)          │
//	├─────────────────────────────────────────┤
//	│  Layout │ Infobar │ Help │ Color/Style  │
//	├─────────────────────────────────────────┤
//	│  backend (tcell)  │  window (ebiten)    │
//	└─────────────────────────────────────────┘
//
// Both frontends draw the same Frame. Layout produces an affine transform
// from image pixels to screen pixels; the window frontend hands it to
// ebiten as a GeoM and the terminal frontend resamples through
// golang.org/x/image/draw into half-block cells.
package renderer
