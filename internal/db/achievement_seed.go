package db

import (
	"github.com/vibespace/vibe-backend/internal/types"
)

// DefaultAchievements is the built-in catalog. There is no API for creating
// catalog rows, so the set ships with the service.
func DefaultAchievements() []types.Achievement {
	return []types.Achievement{
		{
			Code:        "first_task",
			Name:        "Getting Started",
			Description: "Create your first task",
			Icon:        "sprout",
			Points:      10,
		},
		{
			Code:             "task_streak_10",
			Name:             "Task Machine",
			Description:      "Complete 10 tasks",
			Icon:             "gear",
			Points:           25,
			UnlocksBlockType: "stone_brick",
		},
		{
			Code:        "first_pomodoro",
			Name:        "Deep Breath",
			Description: "Finish your first focus session",
			Icon:        "tomato",
			Points:      10,
		},
		{
			Code:              "focus_streak_7",
			Name:              "Week of Focus",
			Description:       "Keep a 7 day focus streak",
			Icon:              "flame",
			Points:            50,
			UnlocksDecoration: "bonsai_tree",
		},
		{
			Code:          "focus_hours_25",
			Name:          "Quarter Century",
			Description:   "Accumulate 25 hours of focused work",
			Icon:          "hourglass",
			Points:        75,
			UnlocksEffect: "aurora",
		},
		{
			Code:              "space_decorator",
			Name:              "Interior Designer",
			Description:       "Create a second space",
			Icon:              "paintbrush",
			Points:            20,
			UnlocksDecoration: "floating_lantern",
		},
	}
}
