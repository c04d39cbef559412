package espn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomfleet/leaguesync/internal/models"
)

func TestConvertScoringItems(t *testing.T) {
	items := []models.EspnScoringItem{
		{StatID: 3, Points: 0.04}, // passing yards
		{StatID: 4, Points: 4},    // passing TD
		{StatID: 53, Points: 1},   // reception
		{StatID: 9999, Points: 2}, // no canonical equivalent
	}

	config := convertScoringItems(items)

	assert.Equal(t, map[string]float64{
		"pass_yd": 0.04,
		"pass_td": 4,
		"rec":     1,
	}, config)
}

func TestConvertScoringItems_ReturnTouchdownsStayDistinct(t *testing.T) {
	items := []models.EspnScoringItem{
		{StatID: 101, Points: 6}, // kickoff return TD
		{StatID: 102, Points: 4}, // punt return TD
	}

	config := convertScoringItems(items)

	assert.Equal(t, map[string]float64{
		"kick_ret_td": 6,
		"punt_ret_td": 4,
	}, config)
}

func TestConvertScoringItems_Empty(t *testing.T) {
	assert.Empty(t, convertScoringItems(nil))
}
