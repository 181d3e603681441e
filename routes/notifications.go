package routes

import (
	"net/http"

	"porchlite-server/models"
	"porchlite-server/storage"
	"porchlite-server/utils"

	"github.com/kataras/iris/v12"
)

// ListNotifications returns the caller's notifications, newest first.
func ListNotifications(ctx iris.Context) {
	userID := utils.ContextUserID(ctx)
	unreadOnly := ctx.URLParamBoolDefault("unread", false)

	query := storage.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(100)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"notifications": notifications})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	userID := utils.ContextUserID(ctx)
	result := storage.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}
