package database

import (
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	// MaxPageSize bounds a single page. The public API would otherwise let a
	// caller drain whole collections in one request.
	MaxPageSize = 100
)

// Pagination converts 1-based page/size query parameters into limit/skip
// offsets for the store.
type Pagination struct {
	Page  int
	Limit int
	Skip  int
}

// NewPagination normalizes out-of-range inputs: page below 1 becomes 1, size
// below 1 becomes the default, size above MaxPageSize is capped.
func NewPagination(page, size int) Pagination {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Pagination{
		Page:  page,
		Limit: size,
		Skip:  (page - 1) * size,
	}
}

// PageInfo is the pagination block of a paging envelope.
type PageInfo struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// Page is the {items, pagination} envelope wrapping every list endpoint.
type Page struct {
	Items      any      `json:"items"`
	Pagination PageInfo `json:"pagination"`
}

// NewPage builds the envelope. totalPages is ceil(totalItems/limit), guarded
// against a zero limit.
func NewPage(items any, totalItems int64, p Pagination) Page {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((totalItems + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Page{
		Items: items,
		Pagination: PageInfo{
			TotalItems:   totalItems,
			TotalPages:   totalPages,
			CurrentPage:  p.Page,
			ItemsPerPage: p.Limit,
		},
	}
}

// SearchFilter restricts a listing to documents where at least one of Fields
// contains Term as a case-insensitive substring, optionally AND-combined with
// an exact featured match. An empty Term matches every document.
//
// Fields are column expressions; JSON list columns are matched over their
// text form (e.g. "technologies::text").
type SearchFilter struct {
	Term     string
	Fields   []string
	Featured *bool
}

// Scope applies the filter as a gorm scope.
func (f SearchFilter) Scope(db *gorm.DB) *gorm.DB {
	if cond, args := f.searchClause(); cond != "" {
		db = db.Where(cond, args...)
	}
	if f.Featured != nil {
		db = db.Where("featured = ?", *f.Featured)
	}
	return db
}

// searchClause builds the disjunctive ILIKE condition. Split out so the
// matching semantics are testable without a database session.
func (f SearchFilter) searchClause() (string, []any) {
	if f.Term == "" || len(f.Fields) == 0 {
		return "", nil
	}

	pattern := "%" + escapeLike(f.Term) + "%"
	conds := make([]string, 0, len(f.Fields))
	args := make([]any, 0, len(f.Fields))
	for _, field := range f.Fields {
		conds = append(conds, field+" ILIKE ?")
		args = append(args, pattern)
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

// escapeLike neutralizes LIKE metacharacters so the term is matched as a
// literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
