package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"porchlite-server/models"
	"porchlite-server/storage"
	"porchlite-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type PropertyInput struct {
	Name         string   `json:"name" validate:"required,max=256"`
	Description  string   `json:"description"`
	AddressLine1 string   `json:"addressLine1"`
	AddressLine2 string   `json:"addressLine2"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip"`
	Country      string   `json:"country"`
	CheckInTime  string   `json:"checkInTime"`
	CheckOutTime string   `json:"checkOutTime"`
	MaxGuests    int      `json:"maxGuests"`
	Amenities    []string `json:"amenities"`
	HeaderImage  string   `json:"headerImage"` // base64, optional
}

func CreateProperty(ctx iris.Context) {
	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property := models.Property{
		OwnerID:      utils.ContextUserID(ctx),
		Name:         input.Name,
		Description:  input.Description,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		Zip:          input.Zip,
		Country:      input.Country,
		CheckInTime:  input.CheckInTime,
		CheckOutTime: input.CheckOutTime,
		MaxGuests:    input.MaxGuests,
		Amenities:    marshalAmenities(input.Amenities),
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if input.HeaderImage != "" {
		if url := storage.UploadBase64Image(input.HeaderImage, headerImagePublicID(property.ID)); url != "" {
			storage.DB.Model(&property).Update("header_image_url", url)
			property.HeaderImageURL = url
		}
	}

	// The creator is an owner-level member of the new property.
	membership := models.TenantUser{PropertyID: property.ID, UserID: property.OwnerID, Role: utils.RoleOwner}
	storage.DB.Create(&membership)

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"property": property})
}

func GetProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Owner").Preload("Members").Preload("Members.User").First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"property": property})
}

// ListMyProperties returns the properties the caller owns or belongs to.
func ListMyProperties(ctx iris.Context) {
	userID := utils.ContextUserID(ctx)

	var memberships []models.TenantUser
	storage.DB.Where("user_id = ?", userID).Find(&memberships)

	ids := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.PropertyID)
	}

	var properties []models.Property
	query := storage.DB.Where("owner_id = ?", userID)
	if len(ids) > 0 {
		query = query.Or("id IN ?", ids)
	}
	if err := query.Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"properties": properties})
}

func UpdateProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property.Name = input.Name
	property.Description = input.Description
	property.AddressLine1 = input.AddressLine1
	property.AddressLine2 = input.AddressLine2
	property.City = input.City
	property.State = input.State
	property.Zip = input.Zip
	property.Country = input.Country
	property.CheckInTime = input.CheckInTime
	property.CheckOutTime = input.CheckOutTime
	property.MaxGuests = input.MaxGuests
	property.Amenities = marshalAmenities(input.Amenities)

	if input.HeaderImage != "" {
		if property.HeaderImageURL != "" {
			storage.DeleteImage(property.HeaderImageURL)
		}
		if url := storage.UploadBase64Image(input.HeaderImage, headerImagePublicID(property.ID)); url != "" {
			property.HeaderImageURL = url
		}
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"property": property})
}

type MembershipInput struct {
	UserID uint   `json:"userID" validate:"required"`
	Role   string `json:"role" validate:"required"`
}

// AddMember grants a user a role at the property.
func AddMember(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var input MembershipInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if !utils.ValidRole(input.Role) {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_role", "unknown role: "+input.Role)
		return
	}

	membership := models.TenantUser{
		PropertyID: propertyID,
		UserID:     input.UserID,
		Role:       input.Role,
	}
	if err := storage.DB.
		Where("property_id = ? AND user_id = ?", propertyID, input.UserID).
		Assign(map[string]interface{}{"role": input.Role}).
		FirstOrCreate(&membership).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "property.member.add", "tenant_user", membership.ID, nil, membership)
	ctx.JSON(iris.Map{"membership": membership})
}

func RemoveMember(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}
	memberUserID, err := ctx.Params().GetUint("userID")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	if err := storage.DB.
		Where("property_id = ? AND user_id = ?", propertyID, memberUserID).
		Delete(&models.TenantUser{}).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

func marshalAmenities(amenities []string) datatypes.JSON {
	if amenities == nil {
		amenities = []string{}
	}
	out, err := json.Marshal(amenities)
	if err != nil {
		return nil
	}
	return datatypes.JSON(out)
}

func headerImagePublicID(propertyID uint) string {
	return fmt.Sprintf("properties/property-%d-header", propertyID)
}
