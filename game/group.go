package game

import (
	"golang.org/x/exp/slices"

	"tabletop/errs"
)

// GroupType names the kind of action-log span a group represents.
type GroupType string

const (
	GroupTurn  GroupType = "turn"
	GroupRound GroupType = "round"
	GroupPhase GroupType = "phase"
)

// ActionGroup is a contiguous span of the action log attributed to a turn,
// round, or phase. End is unset while the group is still open, which is the
// common case for the current group, and gets set when the next group
// supersedes it.
type ActionGroup struct {
	Type      GroupType `json:"type"`
	Start     int       `json:"start"`
	End       *int      `json:"end,omitempty"`
	Name      string    `json:"name,omitempty"`
	PlayerIDs []string  `json:"playerIds,omitempty"`
}

// Open reports whether the group is still in progress.
func (g *ActionGroup) Open() bool {
	return g.End == nil
}

// Contains reports whether the action at index falls inside the group.
func (g *ActionGroup) Contains(index int) bool {
	return index >= g.Start && (g.End == nil || index < *g.End)
}

// GroupTracker keeps the ordered, non-overlapping groups of one kind for a
// game. Groups of the same kind never overlap: each Begin closes the
// currently open group at the new group's start.
type GroupTracker struct {
	Kind   GroupType     `json:"kind"`
	Groups []ActionGroup `json:"groups,omitempty"`
}

// Begin opens a new group starting at the given action index, closing the
// currently open group there. A start before the open group's start would
// make spans overlap and is reported as a configuration error.
func (t *GroupTracker) Begin(g ActionGroup) error {
	if open := t.Current(); open != nil {
		if g.Start < open.Start {
			return errs.Newf(errs.Configuration,
				"%s group starting at %d would overlap open group starting at %d",
				t.Kind, g.Start, open.Start)
		}
		end := g.Start
		open.End = &end
	}
	g.Type = t.Kind
	g.End = nil
	t.Groups = append(t.Groups, g)
	return nil
}

// Close ends the open group at the given action index without starting a
// new one. It is a no-op when no group is open.
func (t *GroupTracker) Close(end int) {
	if open := t.Current(); open != nil {
		e := end
		open.End = &e
	}
}

// Current returns the open group, or nil when none is in progress.
func (t *GroupTracker) Current() *ActionGroup {
	if len(t.Groups) == 0 {
		return nil
	}
	last := &t.Groups[len(t.Groups)-1]
	if last.Open() {
		return last
	}
	return nil
}

// Count returns how many groups have been started, the open one included.
func (t *GroupTracker) Count() int {
	return len(t.Groups)
}

// CountForPlayer returns how many groups name playerID, scanning closed
// groups plus the currently open one.
func (t *GroupTracker) CountForPlayer(playerID string) int {
	n := 0
	for i := range t.Groups {
		if slices.Contains(t.Groups[i].PlayerIDs, playerID) {
			n++
		}
	}
	return n
}

// At returns the group containing the action at index, or nil.
func (t *GroupTracker) At(index int) *ActionGroup {
	for i := range t.Groups {
		if t.Groups[i].Contains(index) {
			return &t.Groups[i]
		}
	}
	return nil
}
