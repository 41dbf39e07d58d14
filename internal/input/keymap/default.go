package keymap

// DefaultKeymap returns the built-in bindings.
//
// Digits, shifted arrows, window events and the mouse are resolved outside
// the table because their meaning does not depend on configuration.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			// Navigation
			{Keys: "j", Action: "next", Description: "Next image", Category: "Navigation"},
			{Keys: "k", Action: "prev", Description: "Previous image", Category: "Navigation"},
			{Keys: "g", Action: "first", Description: "First image", Category: "Navigation"},
			{Keys: "G", Action: "last", Description: "Last image", Category: "Navigation"},
			{Keys: "w", Action: "skipForward", Description: "Skip forward", Category: "Navigation"},
			{Keys: "b", Action: "skipBack", Description: "Skip back", Category: "Navigation"},
			{Keys: "Right", Action: "next", Category: "Navigation"},
			{Keys: "Left", Action: "prev", Category: "Navigation"},
			{Keys: "Home", Action: "first", Category: "Navigation"},
			{Keys: "End", Action: "last", Category: "Navigation"},
			{Keys: "PageUp", Action: "skipForward", Category: "Navigation"},
			{Keys: "PageDown", Action: "skipBack", Category: "Navigation"},

			// View
			{Keys: "i", Action: "zoom(in)", Description: "Zoom in", Category: "View"},
			{Keys: "o", Action: "zoom(out)", Description: "Zoom out", Category: "View"},
			{Keys: "Up", Action: "zoom(in)", Category: "View"},
			{Keys: "Down", Action: "zoom(out)", Category: "View"},
			{Keys: "H", Action: "pan(left)", Description: "Pan left", Category: "View"},
			{Keys: "J", Action: "pan(down)", Description: "Pan down", Category: "View"},
			{Keys: "K", Action: "pan(up)", Description: "Pan up", Category: "View"},
			{Keys: "L", Action: "pan(right)", Description: "Pan right", Category: "View"},
			{Keys: "r", Action: "rotate(cw)", Description: "Rotate clockwise", Category: "View"},
			{Keys: "R", Action: "rotate(ccw)", Description: "Rotate counterclockwise", Category: "View"},
			{Keys: "h", Action: "flipHorizontal", Description: "Flip horizontally", Category: "View"},
			{Keys: "v", Action: "flipVertical", Description: "Flip vertically", Category: "View"},
			{Keys: "z", Action: "toggleFit", Description: "Toggle fit / actual size", Category: "View"},
			{Keys: "Z", Action: "centerImage", Description: "Center image", Category: "View"},
			{Keys: "f", Action: "toggleFullscreen", Description: "Toggle fullscreen", Category: "View"},
			{Keys: "F11", Action: "toggleFullscreen", Category: "View"},
			{Keys: "t", Action: "toggleInfobar", Description: "Toggle infobar", Category: "View"},
			{Keys: "?", Action: "toggleHelp", Description: "Toggle help", Category: "View"},

			// Files
			{Keys: "c", Action: "copy", Description: "Copy", Category: "Files"},
			{Keys: "m", Action: "move", Description: "Move", Category: "Files"},
			{Keys: "d", Action: "trash", Description: "Trash", Category: "Files"},
			{Keys: "D", Action: "delete", Description: "Delete", Category: "Files"},
			{Keys: "Delete", Action: "delete", Category: "Files"},
			{Keys: "p", Action: "cmd", Description: "Run command", Category: "Files"},

			// General
			{Keys: "Period", Action: "repeatLastAction", Description: "Repeat last action", Category: "General"},
			{Keys: ".", Action: "repeatLastAction", Category: "General"},
			{Keys: "Backspace", Action: "backspace", Category: "General"},
			{Keys: "q", Action: "quit", Description: "Quit", Category: "General"},
			{Keys: "Escape", Action: "quit", Category: "General"},
		},
	}
}
