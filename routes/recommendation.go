package routes

import (
	"net/http"

	"porchlite-server/models"
	"porchlite-server/storage"
	"porchlite-server/utils"

	"github.com/kataras/iris/v12"
)

type RecommendationInput struct {
	PropertyID  uint   `json:"propertyID" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Title       string `json:"title" validate:"required,max=256"`
	Body        string `json:"body"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	PhoneNumber string `json:"phoneNumber"`
	Rating      *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

func CreateRecommendation(ctx iris.Context) {
	var input RecommendationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	rec := models.Recommendation{
		PropertyID:  input.PropertyID,
		CreatedByID: utils.ContextUserID(ctx),
		Category:    input.Category,
		Title:       input.Title,
		Body:        input.Body,
		Address:     input.Address,
		Website:     input.Website,
		PhoneNumber: input.PhoneNumber,
		Rating:      input.Rating,
	}
	if err := storage.DB.Create(&rec).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"recommendation": rec})
}

// ListRecommendations returns a property's recommendations with category and
// text filters.
func ListRecommendations(ctx iris.Context) {
	propertyID := ctx.URLParamIntDefault("propertyID", 0)
	if propertyID <= 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "missing_property", "propertyID is required")
		return
	}
	category := ctx.URLParamDefault("category", "all")
	search := ctx.URLParamDefault("q", "")

	var recs []models.Recommendation
	if err := storage.DB.
		Preload("CreatedBy").
		Where("property_id = ?", propertyID).
		Order("category, title").
		Find(&recs).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	filtered := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		if category != "all" && category != "" && r.Category != category {
			continue
		}
		if !utils.MatchesSearch(search, r.Title, r.Body, r.Address) {
			continue
		}
		filtered = append(filtered, r)
	}
	ctx.JSON(iris.Map{"recommendations": filtered})
}

func UpdateRecommendation(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var rec models.Recommendation
	if err := storage.DB.First(&rec, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	role := utils.ContextUserRole(ctx)
	if rec.CreatedByID != utils.ContextUserID(ctx) && !utils.HasPermission(role, utils.RoleManager) {
		utils.CreateForbidden(ctx)
		return
	}

	var input RecommendationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	rec.Category = input.Category
	rec.Title = input.Title
	rec.Body = input.Body
	rec.Address = input.Address
	rec.Website = input.Website
	rec.PhoneNumber = input.PhoneNumber
	rec.Rating = input.Rating

	if err := storage.DB.Save(&rec).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"recommendation": rec})
}

func DeleteRecommendation(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var rec models.Recommendation
	if err := storage.DB.First(&rec, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	role := utils.ContextUserRole(ctx)
	if rec.CreatedByID != utils.ContextUserID(ctx) && !utils.HasPermission(role, utils.RoleManager) {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Delete(&rec).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}
