package services

import (
	"time"

	"porchlite-server/models"
	"porchlite-server/pkg/logger"

	"gorm.io/gorm"
)

// Recurring task scheduling. When a recurring task is completed the series
// continues by materializing exactly one successor row; the completion update
// and the successor insert are independent writes.

// NextDueDate projects the next occurrence of a recurring task. Month-based
// patterns clamp to the last valid day of the target month (Jan 31 + 1 month
// is Feb 28/29, never Mar 2). An unknown pattern advances by a single day
// rather than failing.
func NextDueDate(current time.Time, pattern string, interval int) time.Time {
	if interval < 1 {
		interval = 1
	}

	switch pattern {
	case models.RecurrenceDaily:
		return current.AddDate(0, 0, interval)
	case models.RecurrenceWeekly:
		return current.AddDate(0, 0, interval*7)
	case models.RecurrenceMonthly:
		return addMonthsClamped(current, interval)
	case models.RecurrenceQuarterly:
		return addMonthsClamped(current, interval*3)
	case models.RecurrenceYearly:
		return addMonthsClamped(current, interval*12)
	default:
		return current.AddDate(0, 0, 1)
	}
}

// ShouldSpawnNext reports whether the series continues: true when there is no
// end date or the next occurrence is on or before it (boundary inclusive).
func ShouldSpawnNext(next time.Time, end *time.Time) bool {
	if end == nil {
		return true
	}
	return !next.After(*end)
}

// addMonthsClamped adds calendar months, clamping the day-of-month so the
// result never rolls into the following month.
func addMonthsClamped(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) - 1 + months
	year += month / 12
	month = month % 12
	if month < 0 {
		month += 12
		year--
	}

	targetMonth := time.Month(month + 1)
	day := t.Day()
	if last := daysIn(year, targetMonth); day > last {
		day = last
	}

	return time.Date(year, targetMonth, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SpawnSuccessor creates the single follow-up task for a just-completed
// recurring task, or returns nil when the series has ended.
func SpawnSuccessor(db *gorm.DB, task *models.Task) *models.Task {
	successor := buildSuccessor(task)
	if successor == nil {
		return nil
	}

	if err := db.Create(successor).Error; err != nil {
		logger.Log.WithError(err).WithField("taskID", task.ID).Error("failed to spawn recurring task successor")
		return nil
	}
	return successor
}

// buildSuccessor projects the next task in the series, or nil when the
// series has ended. The successor keeps the series root in ParentTaskID,
// not the immediate predecessor.
func buildSuccessor(task *models.Task) *models.Task {
	if !task.IsRecurring || task.DueDate == nil {
		return nil
	}

	next := NextDueDate(*task.DueDate, task.RecurrencePattern, task.RecurrenceInterval)
	if !ShouldSpawnNext(next, task.RecurringEndDate) {
		return nil
	}

	rootID := task.ID
	if task.ParentTaskID != nil {
		rootID = *task.ParentTaskID
	}

	status := models.TaskStatusPending
	if task.AssignedTo != nil {
		status = models.TaskStatusInProgress
	}

	return &models.Task{
		PropertyID:         task.PropertyID,
		CreatedByID:        task.CreatedByID,
		AssignedTo:         task.AssignedTo,
		Title:              task.Title,
		Description:        task.Description,
		Category:           task.Category,
		Status:             status,
		Priority:           task.Priority,
		DueDate:            &next,
		IsRecurring:        true,
		RecurrencePattern:  task.RecurrencePattern,
		RecurrenceInterval: task.RecurrenceInterval,
		RecurringEndDate:   task.RecurringEndDate,
		ParentTaskID:       &rootID,
	}
}
