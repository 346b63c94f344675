package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// PageRequest represents pagination request parameters
type PageRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"pageSize" json:"pageSize"`
}

// DefaultPageRequest returns a PageRequest with default values
func DefaultPageRequest() PageRequest {
	return PageRequest{
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// PageResponse represents a paginated response
type PageResponse[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Paginate slices items according to req. Pages past the end are empty.
func Paginate[T any](items []T, req PageRequest) PageResponse[T] {
	total := len(items)
	totalPages := (total + req.PageSize - 1) / req.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := []T{}
	if offset := req.Offset(); offset < total {
		end := offset + req.PageSize
		if end > total {
			end = total
		}
		page = items[offset:end]
	}

	return PageResponse[T]{
		Items:      page,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}
}

// ParsePagination parses pagination parameters from Gin context
func ParsePagination(c *gin.Context) PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return PageRequest{
		Page:     page,
		PageSize: pageSize,
	}
}

// Offset returns the index of the first item of the page
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// FilterRequest represents common filter parameters
type FilterRequest struct {
	Search string `form:"search" json:"search,omitempty"`
}

// ParseFilter parses common filter parameters from Gin context
func ParseFilter(c *gin.Context) FilterRequest {
	return FilterRequest{
		Search: strings.TrimSpace(c.Query("search")),
	}
}

// Matches reports whether any of fields contains the search term, ignoring case.
// An empty search matches everything.
func (f FilterRequest) Matches(fields ...string) bool {
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
