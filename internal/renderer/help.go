package renderer

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/riv/internal/input/keymap"
)

// HelpLines formats the key bindings for the help overlay, grouped by
// category. Bindings for the same action in a category share a line.
func HelpLines(bindings []keymap.Binding) []string {
	type row struct {
		keys []string
		desc string
	}

	var lines []string
	for _, cat := range keymap.GroupByCategory(bindings) {
		var rows []*row
		byAction := make(map[string]*row)
		for _, b := range cat.Bindings {
			r, ok := byAction[b.Action]
			if !ok {
				r = &row{desc: b.Action}
				byAction[b.Action] = r
				rows = append(rows, r)
			}
			r.keys = append(r.keys, b.Keys)
			if b.Description != "" && r.desc == b.Action {
				r.desc = b.Description
			}
		}

		width := 0
		for _, r := range rows {
			width = max(width, runewidth.StringWidth(strings.Join(r.keys, ", ")))
		}

		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, cat.Name)
		for _, r := range rows {
			keys := runewidth.FillRight(strings.Join(r.keys, ", "), width)
			lines = append(lines, "  "+keys+"  "+r.desc)
		}
	}

	lines = append(lines, "", "Counts", "  1-9  Repeat the next action (e.g. 25j)")
	return lines
}

// FitLines truncates lines to width columns and keeps at most height of
// them.
func FitLines(lines []string, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = runewidth.Truncate(l, width, "…")
	}
	return out
}
