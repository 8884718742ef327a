package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"supportarchive/internal/shared/errors"
)

// ParseIDParam parses and validates a numeric ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id", "number").
// entityName is used in error messages (e.g., "ticket", "article").
func ParseIDParam(c *gin.Context, paramName, entityName string) (int64, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.NewValidationError(
			fmt.Sprintf("invalid %s ID %q, expected a positive number", entityName, raw),
		)
	}

	return id, nil
}

// QueryList collects a repeatable query parameter. Each occurrence may
// itself hold comma-separated values; blanks are dropped.
func QueryList(c *gin.Context, key string) []string {
	var values []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}
