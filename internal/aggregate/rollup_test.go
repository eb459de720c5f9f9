package aggregate

import (
	"testing"

	"media-report/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCountByTeamAndUser_CountRawRows(t *testing.T) {
	rows := []model.Report{
		report(1, asha, tasks(num("reel", 1))),
		report(2, asha, tasks(num("reel", 1))), // same merge key as row 1
		report(3, ravi),
		report(4, asha, shift(model.ShiftHome)),
	}

	assert.Equal(t, []Count{
		{Key: "video_editor", Label: "Video Editor", Total: 3},
		{Key: "graphic_designer", Label: "Graphic Designer", Total: 1},
	}, CountByTeam(rows))

	assert.Equal(t, []Count{
		{Key: "asha", Label: "asha", Total: 3},
		{Key: "ravi", Label: "ravi", Total: 1},
	}, CountByUser(rows))

	assert.Len(t, Merge(rows, Display), 3)
}

func TestCountBy_TiesSortedByKey(t *testing.T) {
	rows := []model.Report{report(1, ravi), report(2, asha)}

	got := CountByUser(rows)

	assert.Equal(t, "asha", got[0].Key)
	assert.Equal(t, "ravi", got[1].Key)
}

func TestBuildDetail(t *testing.T) {
	rows := []model.Report{
		report(1, asha, custom("2024-01-30"), tasks(num("reel", 2), num("vo_video", 1))),
		report(2, asha, custom("2024-01-30"), tasks(num("reel", 3), text("vo_video", "oops"))),
		report(3, asha, custom("2024-02-02"), tasks(num("vo_video", 4))),
		report(4, asha, custom("2023-12-31"), tasks(num("reel", 1))),
	}

	got := BuildDetail(rows)

	assert.Equal(t, 4, got.Reports)
	assert.Equal(t, []Total{{Key: "Reel", Total: 6}, {Key: "Vo Video", Total: 5}}, got.ByTask)
	assert.Equal(t, []Total{
		{Key: "2023-12-31", Total: 1},
		{Key: "2024-01-30", Total: 6},
		{Key: "2024-02-02", Total: 4},
	}, got.ByDay)
	assert.Equal(t, []Total{
		{Key: "Dec 2023", Total: 1},
		{Key: "Jan 2024", Total: 6},
		{Key: "Feb 2024", Total: 4},
	}, got.ByMonth)
	assert.Equal(t, []Total{{Key: "2023", Total: 1}, {Key: "2024", Total: 10}}, got.ByYear)
}

func TestBuildDetail_Empty(t *testing.T) {
	got := BuildDetail(nil)

	assert.Zero(t, got.Reports)
	assert.Empty(t, got.ByTask)
	assert.Empty(t, got.ByDay)
}
