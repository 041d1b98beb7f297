package guardrail

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_TableShape(t *testing.T) {
	rs := Default()

	require.Len(t, rs.Rules, 25)
	assert.Equal(t, "v1", rs.Version)

	// Numbering is contiguous so audits can reference rules by number.
	for i, r := range rs.Rules {
		assert.Equal(t, i+1, r.Number, "rule %d mis-numbered", i+1)
		assert.NotEmpty(t, r.Text)
	}

	perCategory := map[Category]int{}
	for _, r := range rs.Rules {
		perCategory[r.Category]++
	}
	assert.Equal(t, 6, perCategory[CategoryLogic])
	assert.Equal(t, 5, perCategory[CategoryPreference])
	assert.Equal(t, 4, perCategory[CategoryGroundedness])
	assert.Equal(t, 5, perCategory[CategorySafety])
	assert.Equal(t, 5, perCategory[CategoryFriction])
}

func TestDefault_SeverityDecisions(t *testing.T) {
	rs := Default()

	biased := []int{}
	for _, r := range rs.Rules {
		if r.Severity == SeverityBias {
			biased = append(biased, r.Number)
		}
	}
	// Only the vague-prompt default and the weather preference are ranking
	// biases; everything else is an absolute filter.
	assert.Equal(t, []int{21, 23}, biased)
}

func TestInstructions_ContainsEveryRuleAndContract(t *testing.T) {
	rs := Default()
	out := rs.Instructions("2026-02-28")

	for _, r := range rs.Rules {
		assert.Contains(t, out, fmt.Sprintf("%d. [", r.Number))
	}
	for _, cat := range sectionOrder {
		assert.Contains(t, out, string(cat))
	}
	assert.Contains(t, out, "Output ONLY a raw, valid JSON array")
	assert.Contains(t, out, "output an empty array []")
	assert.NotContains(t, out, "{REFERENCE_DATE}")
	assert.Contains(t, out, "Today is 2026-02-28")
}

func TestInstructions_SeverityMarkers(t *testing.T) {
	out := Default().Instructions("2026-02-28")

	assert.Contains(t, out, "21. [SHOULD]")
	assert.Contains(t, out, "23. [SHOULD]")
	assert.Contains(t, out, "6. [MUST]")
	assert.Contains(t, out, "16. [MUST]")
	assert.Equal(t, 2, strings.Count(out, "[SHOULD]"))
	assert.Equal(t, 23, strings.Count(out, "[MUST]"))
}
