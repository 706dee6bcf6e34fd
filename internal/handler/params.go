package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fundtracker/internal/config"
	"fundtracker/internal/models"
)

// Query parsing is strict: a malformed or out-of-range value is a 400,
// never a silent fallback to the default. Defaults apply only when the
// parameter is absent.

func pageParams(c *gin.Context, q config.QueryConfig) (page, pageSize int, err error) {
	defaultSize := q.DefaultPageSize
	if defaultSize <= 0 {
		defaultSize = 20
	}
	maxSize := q.MaxPageSize
	if maxSize <= 0 {
		maxSize = 100
	}

	page = 1
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
	}
	pageSize = defaultSize
	if raw := strings.TrimSpace(c.Query("page_size")); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 1 || pageSize > maxSize {
			return 0, 0, fmt.Errorf("page_size must be between 1 and %d", maxSize)
		}
	}
	return page, pageSize, nil
}

// orderParam accepts asc/desc (default desc) and reports whether the
// order is ascending.
func orderParam(c *gin.Context) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(c.Query("order"))) {
	case "", "desc":
		return false, nil
	case "asc":
		return true, nil
	}
	return false, fmt.Errorf("order must be asc or desc")
}

func sortByParam(c *gin.Context) (string, error) {
	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if sortBy == "" {
		return "annual_return", nil
	}
	if !models.IsPerformanceField(sortBy) {
		return "", fmt.Errorf("unknown sort_by %q; valid fields: %s",
			sortBy, strings.Join(models.PerformanceFieldNames(), ", "))
	}
	return sortBy, nil
}

func stringQueryPtr(c *gin.Context, key string) *string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return &v
	}
	return nil
}

func uintQueryPtr(c *gin.Context, key string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%s must be a positive integer", key)
	}
	out := uint(v)
	return &out, nil
}

func decimalQueryPtr(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a decimal number", key)
	}
	return &d, nil
}

func dateQueryPtr(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a YYYY-MM-DD date", key)
	}
	t := d.Time()
	return &t, nil
}
