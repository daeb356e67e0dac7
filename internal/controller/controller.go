package controller

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/interview-coach/internal/apperror"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/rs/zerolog/log"
)

const msgInvalidBody = "Invalid request body"

var registerTagNameOnce sync.Once

// UseJSONFieldNames makes gin's validator report fields by their json name.
func UseJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// BindJSON decodes the body into req. An empty body decodes as {}. On failure
// the 400 response has been written and false is returned.
func BindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			msg := "This field is required."
			if fe.Tag() != "required" {
				msg = "Invalid value."
			}
			fields[fe.Field()] = append(fields[fe.Field()], msg)
		}
		c.JSON(http.StatusBadRequest, fields)
		return false
	}
	log.Debug().Err(err).Str("path", c.FullPath()).Msg("Invalid request body")
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
	return false
}

// RespondError writes err as JSON. Wrapped causes are logged, never returned.
func RespondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	status := apperror.StatusCode(appErr.Kind)
	if appErr.Kind == apperror.KindValidation && len(appErr.Fields) > 0 {
		c.JSON(status, appErr.Fields)
		return
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(appErr.Err).Str("path", c.FullPath()).Msg(appErr.Message)
	}
	c.JSON(status, dto.ErrorResponse{Error: appErr.Message})
}

// ParseIDParam reads a positive integer path parameter. On failure a 404 has
// been written and false is returned.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found."})
		return 0, false
	}
	return uint(id), true
}
