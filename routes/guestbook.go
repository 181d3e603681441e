package routes

import (
	"fmt"
	"net/http"
	"time"

	"porchlite-server/models"
	"porchlite-server/storage"
	"porchlite-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateGuestBookEntryInput struct {
	PropertyID uint       `json:"propertyID" validate:"required"`
	Title      string     `json:"title"`
	Body       string     `json:"body" validate:"required"`
	Rating     int        `json:"rating" validate:"required,min=1,max=5"`
	VisitDate  *time.Time `json:"visitDate"`
	IsPublic   bool       `json:"isPublic"`
}

func CreateGuestBookEntry(ctx iris.Context) {
	var input CreateGuestBookEntryInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	entry := models.GuestBookEntry{
		PropertyID: input.PropertyID,
		UserID:     utils.ContextUserID(ctx),
		Title:      input.Title,
		Body:       input.Body,
		Rating:     input.Rating,
		VisitDate:  input.VisitDate,
		IsPublic:   input.IsPublic,
	}
	if err := storage.DB.Create(&entry).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"entry": entry})
}

// ListPublicGuestBook returns only entries that are both published by their
// author and approved by a manager.
func ListPublicGuestBook(ctx iris.Context) {
	propertyID := ctx.URLParamIntDefault("propertyID", 0)
	if propertyID <= 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "missing_property", "propertyID is required")
		return
	}

	var entries []models.GuestBookEntry
	if err := storage.DB.
		Preload("User").Preload("Photos").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	visible := make([]models.GuestBookEntry, 0, len(entries))
	for _, e := range entries {
		if e.PubliclyVisible() {
			visible = append(visible, e)
		}
	}
	ctx.JSON(iris.Map{"entries": visible})
}

// ListAllGuestBook is the manager view: every entry regardless of
// publication state.
func ListAllGuestBook(ctx iris.Context) {
	propertyID := ctx.URLParamIntDefault("propertyID", 0)
	if propertyID <= 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "missing_property", "propertyID is required")
		return
	}

	var entries []models.GuestBookEntry
	if err := storage.DB.
		Preload("User").Preload("Photos").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"entries": entries})
}

type ModerateGuestBookInput struct {
	Approved bool `json:"approved"`
}

// ApproveGuestBookEntry toggles the manager approval flag.
func ApproveGuestBookEntry(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var entry models.GuestBookEntry
	if err := storage.DB.First(&entry, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input ModerateGuestBookInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if err := storage.DB.Model(&entry).Update("is_approved", input.Approved).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	entry.IsApproved = input.Approved
	utils.Audit(ctx, "guestbook.moderate", "guest_book_entry", entry.ID, nil, entry)
	ctx.JSON(iris.Map{"entry": entry})
}

type AddGuestBookPhotoInput struct {
	Image   string `json:"image" validate:"required"`
	Caption string `json:"caption"`
}

// AddGuestBookPhoto uploads a photo for an entry the caller wrote.
func AddGuestBookPhoto(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var entry models.GuestBookEntry
	if err := storage.DB.First(&entry, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if entry.UserID != utils.ContextUserID(ctx) {
		utils.CreateForbidden(ctx)
		return
	}

	var input AddGuestBookPhotoInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	url := storage.UploadBase64Image(input.Image, guestBookPhotoPublicID(entry.ID))
	if url == "" {
		utils.CreateInternalServerError(ctx)
		return
	}

	photo := models.GuestBookPhoto{EntryID: entry.ID, URL: url, Caption: input.Caption}
	if err := storage.DB.Create(&photo).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"photo": photo})
}

func DeleteGuestBookEntry(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var entry models.GuestBookEntry
	if err := storage.DB.First(&entry, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	role := utils.ContextUserRole(ctx)
	if entry.UserID != utils.ContextUserID(ctx) && !utils.HasPermission(role, utils.RoleManager) {
		utils.CreateForbidden(ctx)
		return
	}

	storage.DB.Where("entry_id = ?", entry.ID).Delete(&models.GuestBookPhoto{})
	if err := storage.DB.Delete(&entry).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

func guestBookPhotoPublicID(entryID uint) string {
	return fmt.Sprintf("guestbook/entry-%d-%d", entryID, time.Now().UnixNano())
}
