// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"riskreport/internal/date"
	"riskreport/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("ref_type", validateRefType)
	}
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := date.Parse(fl.Field().String())
	return err == nil
}

func validateRefType(fl validator.FieldLevel) bool {
	_, ok := models.ParseRefType(fl.Field().String())
	return ok
}
