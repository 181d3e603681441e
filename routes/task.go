package routes

import (
	"fmt"
	"net/http"
	"time"

	"porchlite-server/models"
	"porchlite-server/services"
	"porchlite-server/storage"
	"porchlite-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateTaskInput struct {
	PropertyID  uint       `json:"propertyID" validate:"required"`
	Title       string     `json:"title" validate:"required,max=256"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	AssignedTo  *uint      `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate"`

	IsRecurring        bool       `json:"isRecurring"`
	RecurrencePattern  string     `json:"recurrencePattern"`
	RecurrenceInterval int        `json:"recurrenceInterval"`
	RecurringEndDate   *time.Time `json:"recurringEndDate"`
}

func CreateTask(ctx iris.Context) {
	var input CreateTaskInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.IsRecurring && input.DueDate == nil {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "missing_due_date", "recurring tasks need a due date")
		return
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if input.RecurrenceInterval < 1 {
		input.RecurrenceInterval = 1
	}

	status := models.TaskStatusPending
	if input.AssignedTo != nil {
		status = models.TaskStatusInProgress
	}

	task := models.Task{
		PropertyID:         input.PropertyID,
		CreatedByID:        utils.ContextUserID(ctx),
		AssignedTo:         input.AssignedTo,
		Title:              input.Title,
		Description:        input.Description,
		Category:           input.Category,
		Status:             status,
		Priority:           input.Priority,
		DueDate:            input.DueDate,
		IsRecurring:        input.IsRecurring,
		RecurrencePattern:  input.RecurrencePattern,
		RecurrenceInterval: input.RecurrenceInterval,
		RecurringEndDate:   input.RecurringEndDate,
	}

	if err := storage.DB.Create(&task).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if task.AssignedTo != nil {
		services.NewNotificationService(storage.DB).TaskAssigned(&task)
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"task": task})
}

// ListTasks returns a property's tasks with status / assignment / text
// filters applied in memory.
func ListTasks(ctx iris.Context) {
	propertyID := ctx.URLParamIntDefault("propertyID", 0)
	if propertyID <= 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "missing_property", "propertyID is required")
		return
	}
	statusFilter := ctx.URLParamDefault("status", "all")
	search := ctx.URLParamDefault("q", "")
	mine := ctx.URLParamBoolDefault("mine", false)

	var tasks []models.Task
	if err := storage.DB.
		Preload("Assignee").
		Where("property_id = ?", propertyID).
		Order("due_date ASC NULLS LAST, priority DESC").
		Find(&tasks).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	userID := utils.ContextUserID(ctx)
	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !utils.MatchesStatus(t.Status, statusFilter) {
			continue
		}
		if mine && (t.AssignedTo == nil || *t.AssignedTo != userID) {
			continue
		}
		if !utils.MatchesSearch(search, t.Title, t.Description) {
			continue
		}
		filtered = append(filtered, t)
	}

	ctx.JSON(iris.Map{"tasks": filtered})
}

type UpdateTaskInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	AssignedTo  *uint      `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate"`
	PhotoImage  string     `json:"photoImage"` // base64, appended on upload
}

func UpdateTask(ctx iris.Context) {
	task, ok := loadTask(ctx)
	if !ok {
		return
	}

	var input UpdateTaskInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Title != "" {
		task.Title = input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != "" {
		task.Category = input.Category
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssignedTo != nil {
		task.AssignedTo = input.AssignedTo
		if task.Status == models.TaskStatusPending {
			task.Status = models.TaskStatusInProgress
		}
	}
	if input.PhotoImage != "" {
		if url := storage.UploadBase64Image(input.PhotoImage, taskPhotoPublicID(task.ID)); url != "" {
			task.Photos = appendJSONString(task.Photos, url)
		}
	}

	if err := storage.DB.Save(task).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if input.AssignedTo != nil {
		services.NewNotificationService(storage.DB).TaskAssigned(task)
	}
	ctx.JSON(iris.Map{"task": task})
}

// ClaimTask assigns an unassigned task to the caller and moves it to
// in_progress.
func ClaimTask(ctx iris.Context) {
	task, ok := loadTask(ctx)
	if !ok {
		return
	}

	if task.AssignedTo != nil {
		utils.JSONError(ctx, http.StatusConflict, "already_assigned", "task is already assigned")
		return
	}

	userID := utils.ContextUserID(ctx)
	updates := map[string]interface{}{
		"assigned_to": userID,
		"status":      models.TaskStatusInProgress,
	}
	if err := storage.DB.Model(task).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	task.AssignedTo = &userID
	task.Status = models.TaskStatusInProgress
	ctx.JSON(iris.Map{"task": task})
}

// CompleteTask marks a task done. A recurring task whose series has not
// ended spawns exactly one successor; the two writes are independent.
func CompleteTask(ctx iris.Context) {
	task, ok := loadTask(ctx)
	if !ok {
		return
	}

	if task.Status == models.TaskStatusCompleted {
		utils.JSONError(ctx, http.StatusConflict, "already_completed", "task is already completed")
		return
	}

	userID := utils.ContextUserID(ctx)
	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.TaskStatusCompleted,
		"completed_at": now,
		"completed_by": userID,
	}
	if err := storage.DB.Model(task).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	task.Status = models.TaskStatusCompleted
	task.CompletedAt = &now
	task.CompletedBy = &userID

	successor := services.SpawnSuccessor(storage.DB, task)

	ctx.JSON(iris.Map{"task": task, "nextTask": successor})
}

func DeleteTask(ctx iris.Context) {
	task, ok := loadTask(ctx)
	if !ok {
		return
	}

	role := utils.ContextUserRole(ctx)
	if task.CreatedByID != utils.ContextUserID(ctx) && !utils.HasPermission(role, utils.RoleManager) {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Delete(task).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

func loadTask(ctx iris.Context) (*models.Task, bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return nil, false
	}

	var task models.Task
	if err := storage.DB.First(&task, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil, false
	}
	return &task, true
}

func taskPhotoPublicID(taskID uint) string {
	return fmt.Sprintf("tasks/task-%d-%d", taskID, time.Now().UnixNano())
}
