package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/kuxall/InventoryManagementSystem/internal/apierror"
	"github.com/kuxall/InventoryManagementSystem/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeDomainError maps the apperr taxonomy onto HTTP status codes. Storage
// failures are logged with full detail and surfaced as an opaque 500.
func writeDomainError(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	var dup *apperr.DuplicateKeyError
	var nf *apperr.NotFoundError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{verr.Field: verr.Reason}))
	case errors.Is(err, apperr.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	default:
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Err(err).
			Msg("storage failure")
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
