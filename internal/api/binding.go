package api

import (
	"errors"   // Error inspection
	"fmt"      // Message formatting
	"net/http" // HTTP status codes
	"reflect"  // Struct tag lookup
	"strconv"  // Path id parsing
	"strings"  // Tag parsing
	"sync"     // One-time validator setup

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Gin's validator engine
	"github.com/go-playground/validator/v10" // Validation errors
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report JSON field names
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindJSON binds the request body into req, answering 400 on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": resolveBindError(err, "Invalid request")})
		return false
	}
	return true
}

// bindQuery binds query parameters into req, answering 400 on failure
func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": resolveBindError(err, "Invalid query parameters")})
		return false
	}
	return true
}

// resolveBindError turns the first validation failure into a readable message
func resolveBindError(err error, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fallback
	}
	verr := verrs[0]
	field := verr.Field()
	switch verr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if verr.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, verr.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, verr.Param())
	case "max":
		if verr.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, verr.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, verr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// parseID reads the :id path parameter, answering 400 when it is not a positive integer
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
