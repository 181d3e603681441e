package utils

import (
	"net/http"

	"github.com/kataras/iris/v12"
)

func CreateInternalServerError(ctx iris.Context) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", "something went wrong")
}

func CreateNotFound(ctx iris.Context) {
	JSONError(ctx, http.StatusNotFound, "not_found", "resource not found")
}

func CreateForbidden(ctx iris.Context) {
	JSONError(ctx, http.StatusForbidden, "forbidden", "insufficient permissions")
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	JSONError(ctx, http.StatusConflict, "email_taken", "email is already registered")
}

func CreateInvalidCredentials(ctx iris.Context) {
	JSONError(ctx, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
}
