// SPDX-License-Identifier: EPL-2.0

package board

import (
	"fmt"
	"image/color"
	"strings"
)

// DefaultColor is assigned to newly created buttons.
var DefaultColor = color.RGBA{R: 100, G: 100, B: 255, A: 255}

// Clip is an imported audio file bound to a button: display name, source
// path, visualization envelope and duration in seconds (0 means unknown).
// A clip is built once at import time and only ever replaced wholesale.
//
// Path is stored as given; platform separators are not normalized, so a
// board saved on one platform may not resolve its files on another.
type Clip struct {
	Name     string
	Path     string
	Envelope []float32
	Duration float64
}

// Vec2 is a 2D float vector. Button positions are reserved for future free
// placement; the grid currently derives position from the slot index.
type Vec2 struct {
	X, Y float32
}

// Button is one grid slot. A nil Clip marks an empty slot. Color is
// premultiplied-alpha in memory (image/color.RGBA); the codec converts to
// straight alpha at the storage boundary.
type Button struct {
	Label    string
	Position Vec2
	Color    color.RGBA
	Clip     *Clip
}

// Tab is an ordered run of buttons; the slot index is the identity.
type Tab struct {
	Name    string
	Buttons []Button
}

// EnsureSlot grows the button list on demand so that slot exists. New
// buttons are empty slots with the default color.
func (t *Tab) EnsureSlot(slot int) {
	for len(t.Buttons) <= slot {
		t.Buttons = append(t.Buttons, Button{Color: DefaultColor})
	}
}

// Board is the full persisted model: at least one tab plus the active tab
// index, which is clamped into range on every tab-list mutation.
type Board struct {
	Tabs      []Tab
	ActiveTab int
}

// New returns a board with a single empty "Tab 1".
func New() *Board {
	return &Board{Tabs: []Tab{{Name: "Tab 1"}}}
}

// AddTab appends an auto-named tab and makes it active. Returns its index.
func (b *Board) AddTab() int {
	b.Tabs = append(b.Tabs, Tab{Name: fmt.Sprintf("Tab %d", len(b.Tabs)+1)})
	b.ActiveTab = len(b.Tabs) - 1
	return b.ActiveTab
}

// RemoveTab deletes the tab at index. The last remaining tab cannot be
// removed.
func (b *Board) RemoveTab(index int) error {
	if index < 0 || index >= len(b.Tabs) {
		return ErrNoSuchTab
	}
	if len(b.Tabs) == 1 {
		return ErrLastTab
	}
	b.Tabs = append(b.Tabs[:index], b.Tabs[index+1:]...)
	b.clampActive()
	return nil
}

// RenameTab sets the tab's name, trimmed. Blank names are rejected.
func (b *Board) RenameTab(index int, name string) error {
	if index < 0 || index >= len(b.Tabs) {
		return ErrNoSuchTab
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyTabName
	}
	b.Tabs[index].Name = name
	return nil
}

// SetActiveTab selects a tab, clamping out-of-range indices.
func (b *Board) SetActiveTab(index int) {
	b.ActiveTab = index
	b.clampActive()
}

func (b *Board) clampActive() {
	if b.ActiveTab < 0 {
		b.ActiveTab = 0
	}
	if b.ActiveTab >= len(b.Tabs) {
		b.ActiveTab = len(b.Tabs) - 1
	}
}

// PlaceClip puts clip into the given slot, growing the tab's button list
// on demand, and labels the button with the clip's name.
func (b *Board) PlaceClip(tab, slot int, clip Clip) error {
	if tab < 0 || tab >= len(b.Tabs) {
		return ErrNoSuchTab
	}
	if slot < 0 {
		return ErrNoSuchSlot
	}

	t := &b.Tabs[tab]
	t.EnsureSlot(slot)
	btn := &t.Buttons[slot]
	btn.Label = clip.Name
	btn.Clip = &clip
	return nil
}

// ReplaceClip swaps the clip of an existing button, relabeling it but
// keeping color and position. Unlike PlaceClip it never grows the tab.
func (b *Board) ReplaceClip(tab, slot int, clip Clip) error {
	if tab < 0 || tab >= len(b.Tabs) {
		return ErrNoSuchTab
	}
	if slot < 0 || slot >= len(b.Tabs[tab].Buttons) {
		return ErrNoSuchSlot
	}

	btn := &b.Tabs[tab].Buttons[slot]
	btn.Label = clip.Name
	btn.Clip = &clip
	return nil
}

// Button returns the button at (tab, slot), or nil when the slot has never
// been created.
func (b *Board) Button(tab, slot int) *Button {
	if tab < 0 || tab >= len(b.Tabs) {
		return nil
	}
	if slot < 0 || slot >= len(b.Tabs[tab].Buttons) {
		return nil
	}
	return &b.Tabs[tab].Buttons[slot]
}
