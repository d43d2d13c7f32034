// SPDX-License-Identifier: EPL-2.0

package board

// RequestKind tags a pending file-picker request.
type RequestKind int

const (
	NoRequest RequestKind = iota
	// AddToSlot imports a new clip into an (possibly uncreated) slot.
	AddToSlot
	// ReplaceClipOf swaps the clip of an existing button.
	ReplaceClipOf
)

// Request is the deferred file-picker state: which slot asked for audio
// and whether that is a fresh add or a clip replacement. The UI records
// one request when a slot is clicked and resolves it once the picker
// collaborator returns, instead of tracking several optional fields.
type Request struct {
	Kind RequestKind
	Slot int
}

func (r Request) Pending() bool { return r.Kind != NoRequest }
