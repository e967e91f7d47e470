package httpHandler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"healthbridge/apperrors"
	"healthbridge/schemas"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidation makes validation errors report JSON field names.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// respondError writes the status and body for err. Unclassified errors are
// attached to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, schemas.ErrorResponse{Detail: apperrors.Message(err, "Not found")})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusBadRequest, schemas.ErrorResponse{Detail: apperrors.Message(err, "Already exists")})
	case errors.Is(err, apperrors.ErrInvalid):
		c.JSON(http.StatusBadRequest, schemas.ErrorResponse{Detail: apperrors.Message(err, "Invalid request")})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, schemas.ErrorResponse{Detail: "Internal Server Error"})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, schemas.ErrorResponse{
		Detail: "Invalid request body",
		Errors: bindErrors(err),
	})
}

func bindErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			out = append(out, fmt.Sprintf("%s failed on '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		out = append(out, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return out
}
