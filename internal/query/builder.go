package query

import (
	"fmt"
	"strconv"
	"strings"

	"guitarcenter/harvester/internal/domain"
)

// baseQuery joins every product against the brand table so the display
// vendor falls back to the free-text vendor when no canonical match exists.
const baseQuery = `SELECT p.name, COALESCE(b.name, p.other_brand, '') AS brand,
	p.brand_id, p.other_brand, p.category, p.price,
	p.styles, p.description, p.features, p.pic_url, p.url
FROM products p
LEFT JOIN brands b ON b.id = p.brand_id`

type builder struct {
	clauses []string
	args    []any
}

// bind registers a parameter value and returns its placeholder.
func (b *builder) bind(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *builder) and(clause string) {
	b.clauses = append(b.clauses, clause)
}

func (b *builder) sql() string {
	if len(b.clauses) == 0 {
		return baseQuery + "\nORDER BY p.name"
	}
	return baseQuery + "\nWHERE " + strings.Join(b.clauses, " AND ") + "\nORDER BY p.name"
}

// Build compiles the optional search criteria into a parameterized query.
// Every present criterion contributes one clause, all combined under AND;
// values are always bound, never interpolated.
func Build(c domain.Criteria) (string, []any) {
	b := &builder{}

	if keyword := strings.TrimSpace(c.Keyword); keyword != "" {
		placeholder := b.bind("%" + keyword + "%")
		fields := []string{
			"p.name",
			"COALESCE(b.name, '')",
			"COALESCE(p.other_brand, '')",
			"p.styles",
			"p.description",
			"p.features",
		}
		alternatives := make([]string, 0, len(fields))
		for _, field := range fields {
			alternatives = append(alternatives, fmt.Sprintf("%s ILIKE %s", field, placeholder))
		}
		b.and("(" + strings.Join(alternatives, " OR ") + ")")
	}

	if category := strings.TrimSpace(c.Category); category != "" {
		b.and(fmt.Sprintf("p.category ILIKE %s", b.bind("%"+category+"%")))
	}

	if min, ok := parsePrice(c.MinPrice); ok {
		b.and(fmt.Sprintf("p.price >= %s", b.bind(min)))
	}

	if max, ok := parsePrice(c.MaxPrice); ok {
		b.and(fmt.Sprintf("p.price <= %s", b.bind(max)))
	}

	// The string-count filter matches against the category label, same as
	// the category filter; supplying both narrows further.
	if stringCount := strings.TrimSpace(c.StringCount); stringCount != "" {
		b.and(fmt.Sprintf("p.category ILIKE %s", b.bind("%"+stringCount+"%")))
	}

	return b.sql(), b.args
}

// parsePrice treats empty and unparsable bounds as "no constraint".
func parsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
