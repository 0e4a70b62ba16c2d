package filter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/siahsang/blogapi/internal/validator"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100
	MaxPage      int64 = 10_000_000
)

// Filter is the typed form of the listing query string.
type Filter struct {
	SearchKeyword string
	Page          int64
	Limit         int64
	Categories    []string
}

// NewFilter clamps non-positive page and limit to their defaults and
// normalises the category id list.
func NewFilter(searchKeyword string, page, limit int64, categories []string) Filter {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	seen := make(map[string]bool, len(categories))
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cleaned = append(cleaned, c)
	}

	return Filter{
		SearchKeyword: strings.TrimSpace(searchKeyword),
		Page:          page,
		Limit:         limit,
		Categories:    cleaned,
	}
}

func ValidateFilters(filters Filter, v *validator.Validator) {
	v.Check(filters.Limit <= MaxLimit, "limit", "must be a maximum of 100")
	v.Check(filters.Page <= MaxPage, "page", "must be a maximum of 10000000")
	for _, id := range filters.Categories {
		if _, err := uuid.Parse(id); err != nil {
			v.AddError("categories", "must be a comma-separated list of category ids")
			break
		}
	}
}

func (f Filter) Offset() int64 {
	return (f.Page - 1) * f.Limit
}

func (f Filter) HasSearch() bool {
	return f.SearchKeyword != ""
}

func (f Filter) HasCategories() bool {
	return len(f.Categories) > 0
}

type Metadata struct {
	Filter         string `json:"filter"`
	TotalCount     int64  `json:"totalCount"`
	CurrentPage    int64  `json:"currentPage"`
	PageSize       int64  `json:"pageSize"`
	TotalPageCount int64  `json:"totalPageCount"`
}

func CalculateMetadata(totalCount int64, f Filter) Metadata {
	var pages int64
	if f.Limit > 0 {
		pages = (totalCount + f.Limit - 1) / f.Limit
	}
	return Metadata{
		Filter:         f.SearchKeyword,
		TotalCount:     totalCount,
		CurrentPage:    f.Page,
		PageSize:       f.Limit,
		TotalPageCount: pages,
	}
}

// Header names are read by the web client; do not rename.
const (
	HeaderFilter         = "X-Filter"
	HeaderTotalCount     = "X-TotalCount"
	HeaderCurrentPage    = "X-CurrentPage"
	HeaderPageSize       = "X-PageSize"
	HeaderTotalPageCount = "X-TotalPageCount"
)

var ExposedHeaders = []string{HeaderFilter, HeaderTotalCount, HeaderCurrentPage, HeaderPageSize, HeaderTotalPageCount}

func (m Metadata) WriteHeaders(h http.Header) {
	h.Set(HeaderFilter, m.Filter)
	h.Set(HeaderTotalCount, strconv.FormatInt(m.TotalCount, 10))
	h.Set(HeaderCurrentPage, strconv.FormatInt(m.CurrentPage, 10))
	h.Set(HeaderPageSize, strconv.FormatInt(m.PageSize, 10))
	h.Set(HeaderTotalPageCount, strconv.FormatInt(m.TotalPageCount, 10))
}
