package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/univmedia/campusnews/internal/backend"
)

func TestStatsReport(t *testing.T) {
	stats := &backend.PostStats{
		TotalPosts:  12,
		TotalLikes:  34,
		TotalVisits: 56,
		PopularCategories: []backend.CategoryCount{
			{Category: "Actualités", Count: 5},
			{Category: "Sport", Count: 3},
		},
		MostLikedPosts:   []backend.Post{{Title: "Colloque", Likes: 9}},
		MostVisitedPosts: []backend.Post{{Title: "Concert", Visits: 20}},
	}

	data, err := StatsReport(stats, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
	assert.Greater(t, len(data), 1000)
}

func TestStatsReport_EmptyLeaderboards(t *testing.T) {
	data, err := StatsReport(&backend.PostStats{}, time.Now())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
