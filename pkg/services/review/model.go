package review

import (
	"strings"

	"github.com/de-tools/report-desk/pkg/models/domain"
)

// Model is a read-only projection over the verification rounds of one
// result, parameterized by the 1-based selected round. An out-of-range
// selection (e.g. a stale selection after a shorter result set arrived)
// falls back to the most recent round at read time; the selection itself is
// never rewritten. That is deliberate and load-bearing: callers relying on
// clamping semantics will observe the wrong round.
type Model struct {
	rounds   []domain.RoundRecord
	selected int
}

// NewModel builds a projection over result's rounds. A nil result yields an
// empty model.
func NewModel(result *domain.ReportResult, selectedRound int) Model {
	m := Model{selected: selectedRound}
	if result != nil {
		m.rounds = result.Rounds
	}
	return m
}

// Count is the number of verification rounds received.
func (m Model) Count() int {
	return len(m.rounds)
}

// SelectedRound is the raw selection the model was built with.
func (m Model) SelectedRound() int {
	return m.selected
}

// Latest returns the most recent verification round, for the always-visible
// latest-score panel. Absent when no rounds exist.
func (m Model) Latest() (domain.VerificationRound, bool) {
	if len(m.rounds) == 0 {
		return domain.VerificationRound{}, false
	}
	return m.rounds[len(m.rounds)-1].Verification, true
}

// Active returns the round the selection points at, falling back to the
// latest round when the selection is out of range.
func (m Model) Active() (domain.VerificationRound, bool) {
	if idx := m.selected - 1; idx >= 0 && idx < len(m.rounds) {
		return m.rounds[idx].Verification, true
	}
	return m.Latest()
}

// ActiveRevision returns the revision paired with the selected round. The
// pairing is positional: a selection beyond the revision history, or a
// revision with a blank summary, yields absent. No fallback applies here.
func (m Model) ActiveRevision() (domain.RevisionEntry, bool) {
	idx := m.selected - 1
	if idx < 0 || idx >= len(m.rounds) {
		return domain.RevisionEntry{}, false
	}
	rev := m.rounds[idx].Revision
	if rev == nil || strings.TrimSpace(rev.RevisionSummary) == "" {
		return domain.RevisionEntry{}, false
	}
	return *rev, true
}

// ValidSelection reports whether n addresses an existing round.
func (m Model) ValidSelection(n int) bool {
	return n >= 1 && n <= len(m.rounds)
}

// NoIssues reports whether the active round exists and raised no issues;
// the front ends render an explicit empty state for it.
func (m Model) NoIssues() bool {
	active, ok := m.Active()
	return ok && len(active.Issues) == 0
}

// NoStrengths mirrors NoIssues for the strengths list.
func (m Model) NoStrengths() bool {
	active, ok := m.Active()
	return ok && len(active.Strengths) == 0
}
