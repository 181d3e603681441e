package routes

import (
	"net/http"
	"strings"

	"porchlite-server/models"
	"porchlite-server/storage"
	"porchlite-server/utils"

	"github.com/kataras/iris/v12"
)

// Staple templates become concrete inventory once added. A staple already
// present in inventory (matched by case-insensitive name and category) is
// hidden from the available list so the same item can't be tracked twice.

type stapleKey struct {
	name     string
	category string
}

func keyFor(name, category string) stapleKey {
	return stapleKey{
		name:     strings.ToLower(strings.TrimSpace(name)),
		category: strings.ToLower(strings.TrimSpace(category)),
	}
}

// StapleOption is a staple template offered in the "available to add" list.
type StapleOption struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	DefaultQuantity int    `json:"defaultQuantity"`
	IsCustom        bool   `json:"isCustom"`
	StapleID        uint   `json:"stapleID"`
}

// AvailableStaples filters the default and custom staple catalogs down to
// those not already present in inventory.
func AvailableStaples(defaults []models.DefaultStaple, customs []models.CustomStaple, inventory []models.InventoryItem) []StapleOption {
	existing := make(map[stapleKey]bool, len(inventory))
	for _, item := range inventory {
		existing[keyFor(item.Name, item.Category)] = true
	}

	options := make([]StapleOption, 0, len(defaults)+len(customs))
	seen := make(map[stapleKey]bool)

	for _, s := range defaults {
		k := keyFor(s.Name, s.Category)
		if existing[k] || seen[k] {
			continue
		}
		seen[k] = true
		options = append(options, StapleOption{Name: s.Name, Category: s.Category, DefaultQuantity: s.DefaultQuantity, StapleID: s.ID})
	}
	for _, s := range customs {
		k := keyFor(s.Name, s.Category)
		if existing[k] || seen[k] {
			continue
		}
		seen[k] = true
		options = append(options, StapleOption{Name: s.Name, Category: s.Category, DefaultQuantity: s.DefaultQuantity, IsCustom: true, StapleID: s.ID})
	}
	return options
}

func ListInventory(ctx iris.Context) {
	propertyID := ctx.URLParamIntDefault("propertyID", 0)
	if propertyID <= 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "missing_property", "propertyID is required")
		return
	}
	search := ctx.URLParamDefault("q", "")

	var items []models.InventoryItem
	if err := storage.DB.Where("property_id = ?", propertyID).Order("category, name").Find(&items).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	filtered := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if utils.MatchesSearch(search, item.Name, item.Category) {
			filtered = append(filtered, item)
		}
	}
	ctx.JSON(iris.Map{"items": filtered})
}

// ListRestockNeeded returns inventory at or below its restock threshold.
func ListRestockNeeded(ctx iris.Context) {
	propertyID := ctx.URLParamIntDefault("propertyID", 0)
	if propertyID <= 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "missing_property", "propertyID is required")
		return
	}

	var items []models.InventoryItem
	if err := storage.DB.
		Where("property_id = ?", propertyID).
		Order("category, name").
		Find(&items).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	low := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if item.NeedsRestock() {
			low = append(low, item)
		}
	}
	ctx.JSON(iris.Map{"items": low})
}

// ListAvailableStaples returns staple templates not yet tracked in the
// property's inventory.
func ListAvailableStaples(ctx iris.Context) {
	propertyID := ctx.URLParamIntDefault("propertyID", 0)
	if propertyID <= 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "missing_property", "propertyID is required")
		return
	}

	var defaults []models.DefaultStaple
	var customs []models.CustomStaple
	var inventory []models.InventoryItem

	storage.DB.Order("category, name").Find(&defaults)
	storage.DB.Where("property_id = ?", propertyID).Order("category, name").Find(&customs)
	storage.DB.Where("property_id = ?", propertyID).Find(&inventory)

	ctx.JSON(iris.Map{"staples": AvailableStaples(defaults, customs, inventory)})
}

type CreateInventoryItemInput struct {
	PropertyID       uint   `json:"propertyID" validate:"required"`
	Name             string `json:"name" validate:"required,max=256"`
	Category         string `json:"category"`
	Quantity         int    `json:"quantity"`
	RestockThreshold int    `json:"restockThreshold"`
	Location         string `json:"location"`
	Notes            string `json:"notes"`
}

func CreateInventoryItem(ctx iris.Context) {
	var input CreateInventoryItemInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.Quantity < 0 {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_quantity", "quantity cannot be negative")
		return
	}

	// Reject duplicates by the same (name, category) key the staple list uses.
	var existing []models.InventoryItem
	storage.DB.Where("property_id = ?", input.PropertyID).Find(&existing)
	for _, item := range existing {
		if keyFor(item.Name, item.Category) == keyFor(input.Name, input.Category) {
			utils.JSONError(ctx, http.StatusConflict, "duplicate_item", "an item with this name and category already exists")
			return
		}
	}

	threshold := input.RestockThreshold
	if threshold < 1 {
		threshold = 1
	}

	item := models.InventoryItem{
		PropertyID:       input.PropertyID,
		Name:             input.Name,
		Category:         input.Category,
		Quantity:         input.Quantity,
		RestockThreshold: threshold,
		Location:         input.Location,
		Notes:            input.Notes,
	}
	if err := storage.DB.Create(&item).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"item": item})
}

type UpdateInventoryItemInput struct {
	Quantity         *int    `json:"quantity"`
	RestockThreshold *int    `json:"restockThreshold"`
	Location         *string `json:"location"`
	Notes            *string `json:"notes"`
}

func UpdateInventoryItem(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}

	var item models.InventoryItem
	if err := storage.DB.First(&item, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input UpdateInventoryItemInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Quantity != nil {
		if *input.Quantity < 0 {
			utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_quantity", "quantity cannot be negative")
			return
		}
		item.Quantity = *input.Quantity
	}
	if input.RestockThreshold != nil && *input.RestockThreshold >= 0 {
		item.RestockThreshold = *input.RestockThreshold
	}
	if input.Location != nil {
		item.Location = *input.Location
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}

	if err := storage.DB.Save(&item).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"item": item})
}

func DeleteInventoryItem(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}
	if err := storage.DB.Delete(&models.InventoryItem{}, id).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}

type CreateCustomStapleInput struct {
	PropertyID      uint   `json:"propertyID" validate:"required"`
	Name            string `json:"name" validate:"required,max=256"`
	Category        string `json:"category"`
	DefaultQuantity int    `json:"defaultQuantity"`
}

func CreateCustomStaple(ctx iris.Context) {
	var input CreateCustomStapleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	qty := input.DefaultQuantity
	if qty < 1 {
		qty = 1
	}
	staple := models.CustomStaple{
		PropertyID:      input.PropertyID,
		CreatedByID:     utils.ContextUserID(ctx),
		Name:            input.Name,
		Category:        input.Category,
		DefaultQuantity: qty,
	}
	if err := storage.DB.Create(&staple).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"staple": staple})
}

func DeleteCustomStaple(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithStatus(http.StatusBadRequest)
		return
	}
	if err := storage.DB.Delete(&models.CustomStaple{}, id).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true})
}
