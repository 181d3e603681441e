package services

import (
	"testing"
	"time"

	"porchlite-server/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	cases := []struct {
		name     string
		current  time.Time
		pattern  string
		interval int
		want     time.Time
	}{
		{"daily", date(2024, 3, 1), models.RecurrenceDaily, 1, date(2024, 3, 2)},
		{"daily interval 3", date(2024, 3, 1), models.RecurrenceDaily, 3, date(2024, 3, 4)},
		{"weekly", date(2024, 3, 1), models.RecurrenceWeekly, 1, date(2024, 3, 8)},
		{"weekly interval 2", date(2024, 1, 15), models.RecurrenceWeekly, 2, date(2024, 1, 29)},
		{"monthly", date(2024, 3, 15), models.RecurrenceMonthly, 1, date(2024, 4, 15)},
		{"monthly clamps leap feb", date(2024, 1, 31), models.RecurrenceMonthly, 1, date(2024, 2, 29)},
		{"monthly clamps non-leap feb", date(2023, 1, 31), models.RecurrenceMonthly, 1, date(2023, 2, 28)},
		{"monthly year rollover", date(2024, 11, 30), models.RecurrenceMonthly, 2, date(2025, 1, 30)},
		{"quarterly", date(2024, 2, 10), models.RecurrenceQuarterly, 1, date(2024, 5, 10)},
		{"quarterly clamps", date(2024, 5, 31), models.RecurrenceQuarterly, 3, date(2025, 2, 28)},
		{"yearly", date(2024, 12, 15), models.RecurrenceYearly, 1, date(2025, 12, 15)},
		{"yearly clamps feb 29", date(2024, 2, 29), models.RecurrenceYearly, 1, date(2025, 2, 28)},
		{"unknown pattern advances a day", date(2024, 3, 1), "fortnightly", 1, date(2024, 3, 2)},
		{"zero interval treated as one", date(2024, 3, 1), models.RecurrenceWeekly, 0, date(2024, 3, 8)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDueDate(tc.current, tc.pattern, tc.interval)
			if !got.Equal(tc.want) {
				t.Errorf("NextDueDate(%s, %s, %d) = %s, want %s",
					tc.current.Format("2006-01-02"), tc.pattern, tc.interval,
					got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
			}
		})
	}
}

func TestBuildSuccessor(t *testing.T) {
	due := date(2024, 3, 1)
	task := &models.Task{
		PropertyID:         7,
		CreatedByID:        3,
		Title:              "Change HVAC filter",
		Description:        "Filters are in the garage cabinet",
		Category:           "maintenance",
		Priority:           models.TaskPriorityHigh,
		Status:             models.TaskStatusCompleted,
		DueDate:            &due,
		IsRecurring:        true,
		RecurrencePattern:  models.RecurrenceWeekly,
		RecurrenceInterval: 1,
	}
	task.ID = 42

	next := buildSuccessor(task)
	if next == nil {
		t.Fatal("expected a successor for an open-ended weekly task")
	}
	if want := date(2024, 3, 8); !next.DueDate.Equal(want) {
		t.Errorf("successor due %s, want %s", next.DueDate.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if next.Status != models.TaskStatusPending {
		t.Errorf("unassigned successor status = %q, want pending", next.Status)
	}
	if next.ParentTaskID == nil || *next.ParentTaskID != 42 {
		t.Errorf("successor parent = %v, want series root 42", next.ParentTaskID)
	}
	if next.Title != task.Title || next.Priority != task.Priority || next.Category != task.Category {
		t.Error("successor must copy title, priority and category")
	}

	// Assigned tasks come back in progress, and the root id propagates
	// through the whole series.
	assignee := uint(9)
	root := uint(41)
	task.AssignedTo = &assignee
	task.ParentTaskID = &root
	next = buildSuccessor(task)
	if next.Status != models.TaskStatusInProgress {
		t.Errorf("assigned successor status = %q, want in_progress", next.Status)
	}
	if *next.ParentTaskID != root {
		t.Errorf("successor parent = %d, want original root %d", *next.ParentTaskID, root)
	}

	// A series past its end date stops.
	end := date(2024, 3, 5)
	task.RecurringEndDate = &end
	if got := buildSuccessor(task); got != nil {
		t.Error("series past its end date must not spawn")
	}

	// Non-recurring tasks never spawn.
	if got := buildSuccessor(&models.Task{Status: models.TaskStatusCompleted}); got != nil {
		t.Error("non-recurring task must not spawn")
	}
}

func TestShouldSpawnNext(t *testing.T) {
	next := date(2024, 3, 8)
	before := date(2024, 3, 7)
	same := date(2024, 3, 8)
	after := date(2024, 3, 9)

	if !ShouldSpawnNext(next, nil) {
		t.Error("no end date should always spawn")
	}
	if !ShouldSpawnNext(next, &after) {
		t.Error("next before end date should spawn")
	}
	if !ShouldSpawnNext(next, &same) {
		t.Error("next equal to end date should spawn (boundary inclusive)")
	}
	if ShouldSpawnNext(next, &before) {
		t.Error("next past end date must not spawn")
	}
}
