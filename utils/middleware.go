package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// CurrentAccessToken returns the verified claims for the request, or nil.
func CurrentAccessToken(ctx iris.Context) *AccessToken {
	tok := jwt.Get(ctx)
	if tok == nil {
		return nil
	}
	at, ok := tok.(*AccessToken)
	if !ok {
		return nil
	}
	return at
}

// UserIDFromTokenMiddleware extracts user ID from JWT token and stores it in
// context for routes that don't carry {id} in the URL.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := CurrentAccessToken(ctx)
	if claims == nil {
		ctx.StopWithStatus(iris.StatusUnauthorized)
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("userRole", ParseRole(claims.Role))
	ctx.Next()
}

// RequireRole gates a route group at a minimum privilege level.
func RequireRole(minRole string) iris.Handler {
	return func(ctx iris.Context) {
		claims := CurrentAccessToken(ctx)
		if claims == nil {
			ctx.StopWithStatus(iris.StatusUnauthorized)
			return
		}
		role := ParseRole(claims.Role)
		if !HasPermission(role, minRole) {
			ctx.StopWithJSON(iris.StatusForbidden, iris.Map{
				"error":   "forbidden",
				"message": minRole + " access required",
			})
			return
		}
		ctx.Values().Set("userID", claims.ID)
		ctx.Values().Set("userRole", role)
		ctx.Next()
	}
}

// ContextUserID returns the user id placed on the context by the middleware.
func ContextUserID(ctx iris.Context) uint {
	if v := ctx.Values().Get("userID"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// ContextUserRole returns the parsed role placed on the context, defaulting
// to guest.
func ContextUserRole(ctx iris.Context) string {
	if v := ctx.Values().Get("userRole"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return RoleGuest
}
