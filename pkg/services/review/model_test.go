package review

import (
	"testing"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultWithRounds(scores ...float64) *domain.ReportResult {
	result := &domain.ReportResult{ReportID: "r1", Status: "done"}
	for i, score := range scores {
		result.Rounds = append(result.Rounds, domain.RoundRecord{
			Verification: domain.VerificationRound{Round: i + 1, Score: score},
		})
	}
	return result
}

func TestActiveFallsBackToLatest(t *testing.T) {
	tests := []struct {
		name          string
		scores        []float64
		selected      int
		expectedScore float64
	}{
		{"selection in range", []float64{5, 7, 9}, 2, 7},
		{"first round", []float64{5, 7, 9}, 1, 5},
		{"selection past the end falls back to latest", []float64{5, 7, 9}, 7, 9},
		{"zero selection falls back to latest", []float64{5, 7}, 0, 7},
		{"negative selection falls back to latest", []float64{5, 7}, -3, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(resultWithRounds(tt.scores...), tt.selected)

			active, ok := m.Active()
			require.True(t, ok)
			assert.Equal(t, tt.expectedScore, active.Score)

			// Fallback never rewrites the stored selection.
			assert.Equal(t, tt.selected, m.SelectedRound())
		})
	}
}

func TestEmptyHistory(t *testing.T) {
	m := NewModel(resultWithRounds(), 1)
	assert.Equal(t, 0, m.Count())

	_, ok := m.Latest()
	assert.False(t, ok)
	_, ok = m.Active()
	assert.False(t, ok)
	_, ok = m.ActiveRevision()
	assert.False(t, ok)
	assert.False(t, m.NoIssues())
}

func TestNilResult(t *testing.T) {
	m := NewModel(nil, 1)
	assert.Equal(t, 0, m.Count())
	_, ok := m.Active()
	assert.False(t, ok)
}

func TestActiveRevision(t *testing.T) {
	result := resultWithRounds(5, 7, 9)
	result.Rounds[0].Revision = &domain.RevisionEntry{Round: 1, RevisionSummary: "restructured sections"}
	result.Rounds[1].Revision = &domain.RevisionEntry{Round: 2, RevisionSummary: "   "}

	t.Run("paired revision is returned", func(t *testing.T) {
		rev, ok := NewModel(result, 1).ActiveRevision()
		require.True(t, ok)
		assert.Equal(t, "restructured sections", rev.RevisionSummary)
	})

	t.Run("blank summary counts as absent", func(t *testing.T) {
		_, ok := NewModel(result, 2).ActiveRevision()
		assert.False(t, ok)
	})

	t.Run("round beyond revision history is absent", func(t *testing.T) {
		_, ok := NewModel(result, 3).ActiveRevision()
		assert.False(t, ok)
	})

	t.Run("no revision fallback on out-of-range selection", func(t *testing.T) {
		// Active falls back to the latest round, but the revision lookup
		// stays strictly positional.
		m := NewModel(result, 9)
		active, ok := m.Active()
		require.True(t, ok)
		assert.Equal(t, 3, active.Round)
		_, ok = m.ActiveRevision()
		assert.False(t, ok)
	})
}

func TestValidSelection(t *testing.T) {
	m := NewModel(resultWithRounds(5, 7), 1)
	assert.False(t, m.ValidSelection(0))
	assert.True(t, m.ValidSelection(1))
	assert.True(t, m.ValidSelection(2))
	assert.False(t, m.ValidSelection(3))
}

func TestEmptyIssueAndStrengthStates(t *testing.T) {
	result := resultWithRounds(8)
	m := NewModel(result, 1)
	assert.True(t, m.NoIssues(), "a round without issues renders the explicit empty state")
	assert.True(t, m.NoStrengths())

	result.Rounds[0].Verification.Issues = []domain.Issue{{Type: "accuracy", Section: "pricing"}}
	result.Rounds[0].Verification.Strengths = []string{"clear structure"}
	m = NewModel(result, 1)
	assert.False(t, m.NoIssues())
	assert.False(t, m.NoStrengths())
}
