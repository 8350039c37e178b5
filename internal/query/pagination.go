// Package query builds the filter, sort, and pagination parameters shared by
// every listing and search endpoint.
package query

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination is the normalized page/limit/skip triple for one request.
type Pagination struct {
	Page  int
	Limit int
	Skip  int64
}

// ParsePagination normalizes raw query-string values. Non-numeric or <1 page
// falls back to 1, non-numeric or <1 limit falls back to 10.
func ParsePagination(rawPage, rawLimit string) Pagination {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	return Pagination{
		Page:  page,
		Limit: limit,
		Skip:  int64(page-1) * int64(limit),
	}
}

// TotalPages is ceil(total/limit); zero when nothing matches.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit < 1 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

// OutOfRange reports whether the requested page lies beyond the last page of
// a non-empty result set. An empty set never puts a page out of range; the
// caller returns an empty page instead.
func (p Pagination) OutOfRange(totalPages int) bool {
	return totalPages != 0 && p.Page > totalPages
}

// FindOptions applies skip, limit, and sort to a Mongo find.
func (p Pagination) FindOptions(sort bson.D) *options.FindOptions {
	opts := options.Find().SetSkip(p.Skip).SetLimit(int64(p.Limit))
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	return opts
}

// ParseSort maps sortBy/order query parameters onto a Mongo sort document.
// Defaults to newest first.
func ParseSort(sortBy, order string) bson.D {
	if sortBy == "" {
		sortBy = "created_at"
	}
	dir := -1
	if order == "asc" {
		dir = 1
	}
	return bson.D{{Key: sortBy, Value: dir}}
}
