package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

const (
	RecurrenceDaily     = "daily"
	RecurrenceWeekly    = "weekly"
	RecurrenceMonthly   = "monthly"
	RecurrenceQuarterly = "quarterly"
	RecurrenceYearly    = "yearly"
)

type Task struct {
	gorm.Model
	PropertyID  uint     `json:"propertyID" gorm:"not null;index"`
	Property    Property `json:"-" gorm:"foreignKey:PropertyID"`
	CreatedByID uint     `json:"createdByID" gorm:"not null"`
	CreatedBy   User     `json:"createdBy" gorm:"foreignKey:CreatedByID"`
	AssignedTo  *uint    `json:"assignedTo" gorm:"index"`
	Assignee    *User    `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
	Title       string   `json:"title" gorm:"not null"`
	Description string   `json:"description" gorm:"type:text"`
	Category    string   `json:"category"`
	Status      string   `json:"status" gorm:"type:varchar(20);default:pending;index"`
	Priority    string   `json:"priority" gorm:"type:varchar(10);default:medium"`

	DueDate     *time.Time `json:"dueDate" gorm:"index"`
	CompletedAt *time.Time `json:"completedAt"`
	CompletedBy *uint      `json:"completedBy"`

	// Recurrence descriptor. ParentTaskID always points at the series root,
	// not the immediate predecessor.
	IsRecurring        bool       `json:"isRecurring" gorm:"default:false"`
	RecurrencePattern  string     `json:"recurrencePattern" gorm:"type:varchar(20)"` // daily, weekly, monthly, quarterly, yearly
	RecurrenceInterval int        `json:"recurrenceInterval" gorm:"default:1"`
	RecurringEndDate   *time.Time `json:"recurringEndDate"`
	ParentTaskID       *uint      `json:"parentTaskID" gorm:"index"`

	Photos datatypes.JSON `json:"photos" gorm:"type:jsonb"`
}
