package routes

import (
	"net/http"
	"strings"

	"porchlite-server/models"
	"porchlite-server/storage"
	"porchlite-server/utils"

	"github.com/kataras/iris/v12"
)

// Privileged user management. Gated at admin level by RequireRole in main.go;
// every mutation is audit-logged.

// AdminListUsers returns all users with optional role and free-text filters.
// Filtering runs in memory over the fetched page, mirroring the portal's
// client-side filter behavior.
func AdminListUsers(ctx iris.Context) {
	roleFilter := ctx.URLParamDefault("role", "all")
	search := ctx.URLParamDefault("q", "")
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("perPage", 50)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	var total int64
	storage.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := storage.DB.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if !utils.MatchesRole(utils.ParseRole(u.Role), roleFilter) {
			continue
		}
		if !utils.MatchesSearch(search, u.FullName(), u.Email) {
			continue
		}
		filtered = append(filtered, u)
	}

	utils.JSONPage(ctx, filtered, page, perPage, total)
}

type AdminUpdateUserInput struct {
	UserID   uint `json:"userId" validate:"required"`
	UserData struct {
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phoneNumber"`
		Role        string `json:"role"`
	} `json:"userData" validate:"required"`
}

// AdminUpdateUser is the privileged profile/role update proxy:
// POST /api/users/update {userId, userData}.
func AdminUpdateUser(ctx iris.Context) {
	var input AdminUpdateUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, input.UserID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}
	before := user

	updates := map[string]interface{}{}
	if input.UserData.FirstName != "" {
		updates["first_name"] = input.UserData.FirstName
	}
	if input.UserData.LastName != "" {
		updates["last_name"] = input.UserData.LastName
	}
	if input.UserData.Email != "" {
		updates["email"] = strings.ToLower(input.UserData.Email)
	}
	if input.UserData.PhoneNumber != "" {
		updates["phone_number"] = input.UserData.PhoneNumber
	}
	if input.UserData.Role != "" {
		if !utils.ValidRole(input.UserData.Role) {
			utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_role", "unknown role: "+input.UserData.Role)
			return
		}
		// Only owners may grant owner or admin.
		actorRole := utils.ContextUserRole(ctx)
		if utils.RoleLevel(input.UserData.Role) >= utils.RoleLevel(utils.RoleAdmin) && actorRole != utils.RoleOwner {
			utils.CreateForbidden(ctx)
			return
		}
		updates["role"] = input.UserData.Role
	}

	if len(updates) > 0 {
		if err := storage.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	utils.Audit(ctx, "user.update", "user", user.ID, before, user)
	ctx.JSON(iris.Map{"success": true, "user": user})
}

type AdminDeleteUserInput struct {
	UserID uint `json:"userId" validate:"required"`
}

// AdminDeleteUser is the privileged delete proxy: POST /api/users/delete
// {userId}. Self-deletion is rejected.
func AdminDeleteUser(ctx iris.Context) {
	var input AdminDeleteUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.UserID == utils.ContextUserID(ctx) {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "self_delete", "cannot delete your own account")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, input.UserID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	// Memberships go first; the user row is soft-deleted by gorm.Model.
	storage.DB.Where("user_id = ?", user.ID).Delete(&models.TenantUser{})
	if err := storage.DB.Delete(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "user.delete", "user", user.ID, user, nil)
	ctx.JSON(iris.Map{"success": true})
}
