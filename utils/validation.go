package utils

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// HandleValidationErrors converts validator failures on a ReadJSON input into
// a 422 with per-field messages. Non-validator errors become a plain 400.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(errs))
		for _, fieldErr := range errs {
			fields[strings.ToLower(fieldErr.Field())] = validationMessage(fieldErr)
		}
		ctx.StatusCode(http.StatusUnprocessableEntity)
		ctx.JSON(iris.Map{"error": "validation_failed", "fields": fields})
		return
	}

	JSONError(ctx, http.StatusBadRequest, "invalid_payload", "invalid request payload")
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fieldErr.Param()
	case "max":
		return "must be at most " + fieldErr.Param()
	default:
		return "failed on " + fieldErr.Tag()
	}
}
