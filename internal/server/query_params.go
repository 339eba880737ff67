package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/smallbiznis/eventdesk/internal/report/domain"
)

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func reportOptions(c *gin.Context) (reportdomain.Options, error) {
	force, err := parseOptionalBool(c.Query("force_refresh"))
	if err != nil {
		return reportdomain.Options{}, newValidationError("force_refresh", "invalid_force_refresh", "force_refresh must be a boolean")
	}
	opts := reportdomain.Options{}
	if force != nil {
		opts.ForceRefresh = *force
	}
	return opts, nil
}
