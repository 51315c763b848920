package questionbank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monpro-diagnostic/internal/models"
)

func TestCount(t *testing.T) {
	assert.Equal(t, 10, Count(models.PathScaler))
	assert.Equal(t, 7, Count(models.PathFounder))
	assert.Equal(t, 4, Count(models.PathOperator))
	assert.Equal(t, 3, Count(models.PathExplorer))
	assert.Equal(t, 0, Count(models.Path("unknown")))
}

func TestQuestionIDsUniquePerPath(t *testing.T) {
	for _, path := range []models.Path{models.PathScaler, models.PathFounder, models.PathOperator, models.PathExplorer} {
		seen := map[string]bool{}
		for _, q := range ForPath(path, models.RegionEurope) {
			assert.False(t, seen[q.ID], "duplicate id %s on %s", q.ID, path)
			seen[q.ID] = true
			assert.NotEmpty(t, q.Title)
			assert.NotEmpty(t, q.Options)
		}
	}
}

func TestForPath_CurrencyRelabeling(t *testing.T) {
	tests := []struct {
		region models.Region
		symbol string
	}{
		{models.RegionIndia, "₹"},
		{models.RegionEurope, "€"},
		{models.RegionUK, "£"},
	}

	for _, tt := range tests {
		t.Run(string(tt.region), func(t *testing.T) {
			for _, q := range ForPath(models.PathScaler, tt.region) {
				for _, opt := range q.Options {
					if tt.region != models.RegionEurope {
						assert.NotContains(t, opt.Label, "€", "question %s", q.ID)
					}
				}
			}
		})
	}
}

func TestForPath_RegionalBudgetRanges(t *testing.T) {
	questions := ForPath(models.PathScaler, models.RegionIndia)

	var investment models.Question
	for _, q := range questions {
		if q.ID == "investment_range" {
			investment = q
		}
	}
	require.NotEmpty(t, investment.ID)

	assert.Equal(t, "Under ₹50k", investment.Options[0].Label)
	// Option values stay stable across regions so answers compare.
	assert.Equal(t, "under_1k", investment.Options[0].Value)
	assert.Equal(t, "roi_based", investment.Options[3].Value)
}

func TestForPath_DoesNotMutateBank(t *testing.T) {
	uk := ForPath(models.PathScaler, models.RegionUK)
	for i := range uk {
		uk[i].Title = "mutated"
		for j := range uk[i].Options {
			uk[i].Options[j].Label = "mutated"
		}
	}

	eu := ForPath(models.PathScaler, models.RegionEurope)
	for _, q := range eu {
		assert.NotEqual(t, "mutated", q.Title)
		for _, opt := range q.Options {
			assert.NotEqual(t, "mutated", opt.Label)
		}
	}
}

func TestForPath_UnknownRegionKeepsEuroText(t *testing.T) {
	questions := ForPath(models.PathFounder, models.Region(""))

	found := false
	for _, q := range questions {
		if q.ID == "investment_range" {
			found = true
			assert.True(t, strings.Contains(q.Options[1].Label, "€"))
		}
	}
	assert.True(t, found)
}

func TestFind(t *testing.T) {
	q, ok := Find(models.PathScaler, "key_channels")
	require.True(t, ok)
	assert.True(t, q.MultiSelect)
	assert.Equal(t, 3, q.MaxSelections)

	_, ok = Find(models.PathExplorer, "key_channels")
	assert.False(t, ok)
}

func TestExclusiveOptionMetadata(t *testing.T) {
	q, ok := Find(models.PathScaler, "platform_stack")
	require.True(t, ok)
	assert.True(t, q.IsExclusive("not_live"))
	assert.False(t, q.IsExclusive("shopify"))
}

func TestPathInfoCoversAllPaths(t *testing.T) {
	for _, p := range []models.Path{models.PathScaler, models.PathFounder, models.PathOperator, models.PathExplorer} {
		info, ok := PathInfo[p]
		require.True(t, ok, "missing path info for %s", p)
		assert.Equal(t, p, info.ID)
		assert.NotEmpty(t, info.Title)
	}
}
