package query

import (
	"strings"
	"testing"

	"guitarcenter/harvester/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNoCriteria(t *testing.T) {
	sql, args := Build(domain.Criteria{})

	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
	assert.Contains(t, sql, "LEFT JOIN brands b ON b.id = p.brand_id")
}

func TestBuildCategoryAndMinPrice(t *testing.T) {
	sql, args := Build(domain.Criteria{
		Category: "5-string",
		MinPrice: "200",
	})

	assert.Contains(t, sql, "WHERE p.category ILIKE $1 AND p.price >= $2")
	assert.NotContains(t, sql, " OR ", "no keyword clause expected")
	assert.Equal(t, []any{"%5-string%", 200.0}, args)
}

func TestBuildKeywordExpandsToSixFields(t *testing.T) {
	sql, args := Build(domain.Criteria{Keyword: "jazz"})

	require.Equal(t, []any{"%jazz%"}, args)

	wherePart := sql[strings.Index(sql, "WHERE"):]
	for _, field := range []string{
		"p.name",
		"COALESCE(b.name, '')",
		"COALESCE(p.other_brand, '')",
		"p.styles",
		"p.description",
		"p.features",
	} {
		assert.Contains(t, wherePart, field+" ILIKE $1")
	}
	assert.Equal(t, 5, strings.Count(wherePart, " OR "))
}

func TestBuildAllCriteria(t *testing.T) {
	sql, args := Build(domain.Criteria{
		Keyword:     "precision",
		Category:    "Electric",
		MinPrice:    "100",
		MaxPrice:    "999.50",
		StringCount: "4 String",
	})

	assert.Contains(t, sql, "p.category ILIKE $2")
	assert.Contains(t, sql, "p.price >= $3")
	assert.Contains(t, sql, "p.price <= $4")
	assert.Contains(t, sql, "p.category ILIKE $5")
	assert.Equal(t, 4, strings.Count(sql, " AND "))
	assert.Equal(t, []any{"%precision%", "%Electric%", 100.0, 999.5, "%4 String%"}, args)
}

func TestBuildStringCountAloneFiltersCategory(t *testing.T) {
	sql, args := Build(domain.Criteria{StringCount: "5 String"})

	assert.Contains(t, sql, "WHERE p.category ILIKE $1")
	assert.Equal(t, []any{"%5 String%"}, args)
}

func TestBuildSkipsUnparsablePriceBounds(t *testing.T) {
	sql, args := Build(domain.Criteria{
		MinPrice: "cheap",
		MaxPrice: " ",
	})

	assert.NotContains(t, sql, "p.price")
	assert.Empty(t, args)
}

func TestBuildIgnoresBlankCriteria(t *testing.T) {
	sql, args := Build(domain.Criteria{
		Keyword:  "  ",
		Category: "",
	})

	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestBuildNeverInterpolatesValues(t *testing.T) {
	hostile := `'; DROP TABLE products; --`
	sql, args := Build(domain.Criteria{Keyword: hostile})

	assert.NotContains(t, sql, "DROP TABLE")
	assert.Equal(t, []any{"%" + hostile + "%"}, args)
}
