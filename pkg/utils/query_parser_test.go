package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
	assert.Empty(t, filter.Sort)
	assert.Empty(t, filter.Filter)
}

func TestParseFilterFromQuery_LimitIsCapped(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"limit": {"9000"}})
	assert.Equal(t, MaxLimit, filter.Limit)

	// Мусорный limit игнорируется.
	filter = ParseFilterFromQuery(url.Values{"limit": {"abc"}})
	assert.Equal(t, DefaultLimit, filter.Limit)
}

func TestParseFilterFromQuery_OffsetFromPage(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"page": {"3"}, "limit": {"50"}})
	assert.Equal(t, 100, filter.Offset)

	// Явный offset имеет приоритет над page.
	filter = ParseFilterFromQuery(url.Values{"page": {"3"}, "limit": {"50"}, "offset": {"7"}})
	assert.Equal(t, 7, filter.Offset)
}

func TestParseFilterFromQuery_SortAndFilterGrammar(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{
		"sort[created_at]": {"DESC"},
		"sort[name]":       {"вверх"},
		"filter[status]":   {"booked", "completed"},
		"search":           {"Анна"},
		"withPagination":   {"false"},
	})

	assert.Equal(t, map[string]string{"created_at": "desc"}, filter.Sort)
	assert.Equal(t, "booked", filter.Filter["status"])
	assert.Equal(t, "Анна", filter.Search)
	assert.False(t, filter.WithPagination)
}
