package routes

import (
	"fmt"
	"net/http"
	"time"

	"porchlite-server/models"
	"porchlite-server/storage"
	"porchlite-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// Walkthrough manuals. Read is open to any member; edits are manager level,
// enforced by the route party in main.go.

func ListWalkthrough(ctx iris.Context) {
	propertyID := ctx.URLParamIntDefault("propertyID", 0)
	if propertyID <= 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "missing_property", "propertyID is required")
		return
	}

	var sections []models.WalkthroughSection
	if err := storage.DB.
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("property_id = ?", propertyID).
		Order("sort_order ASC").
		Find(&sections).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"sections": sections})
}

type WalkthroughSectionInput struct {
	PropertyID  uint   `json:"propertyID" validate:"required"`
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

func CreateWalkthroughSection(ctx iris.Context) {
	var input WalkthroughSectionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	section := models.WalkthroughSection{
		PropertyID:  input.PropertyID,
		Title:       input.Title,
		Description: input.Description,
		SortOrder:   input.SortOrder,
	}
	if err := storage.DB.Create(&section).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"section": section})
}

func UpdateWalkthroughSection(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var section models.WalkthroughSection
	if err := storage.DB.First(&section, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input WalkthroughSectionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	section.Title = input.Title
	section.Description = input.Description
	section.SortOrder = input.SortOrder
	if err := storage.DB.Save(&section).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"section": section})
}

func DeleteWalkthroughSection(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	storage.DB.Where("section_id = ?", id).Delete(&models.WalkthroughStep{})
	if err := storage.DB.Delete(&models.WalkthroughSection{}, id).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

type WalkthroughStepInput struct {
	Title      string `json:"title" validate:"required,max=256"`
	Body       string `json:"body"`
	SortOrder  int    `json:"sortOrder"`
	PhotoImage string `json:"photoImage"` // base64, optional
}

func CreateWalkthroughStep(ctx iris.Context) {
	sectionID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var section models.WalkthroughSection
	if err := storage.DB.First(&section, sectionID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input WalkthroughStepInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	step := models.WalkthroughStep{
		SectionID: section.ID,
		Title:     input.Title,
		Body:      input.Body,
		SortOrder: input.SortOrder,
	}
	if input.PhotoImage != "" {
		step.PhotoURL = storage.UploadBase64Image(input.PhotoImage, walkthroughPhotoPublicID(section.ID))
	}

	if err := storage.DB.Create(&step).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"step": step})
}

func UpdateWalkthroughStep(ctx iris.Context) {
	stepID, err := ctx.Params().GetUint("stepID")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var step models.WalkthroughStep
	if err := storage.DB.First(&step, stepID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input WalkthroughStepInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	step.Title = input.Title
	step.Body = input.Body
	step.SortOrder = input.SortOrder
	if input.PhotoImage != "" {
		if url := storage.UploadBase64Image(input.PhotoImage, walkthroughPhotoPublicID(step.SectionID)); url != "" {
			step.PhotoURL = url
		}
	}

	if err := storage.DB.Save(&step).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"step": step})
}

func DeleteWalkthroughStep(ctx iris.Context) {
	stepID, err := ctx.Params().GetUint("stepID")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}
	if err := storage.DB.Delete(&models.WalkthroughStep{}, stepID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

func walkthroughPhotoPublicID(sectionID uint) string {
	return fmt.Sprintf("walkthrough/section-%d-%d", sectionID, time.Now().UnixNano())
}
