package resolver

import (
	"strings"

	"guitarcenter/harvester/internal/domain"
)

// BrandResolver maps free-text vendor names onto canonical brand ids.
type BrandResolver struct {
	refs []domain.BrandRef
}

// New builds a resolver over the known-brand table. The slice order is the
// scan order and therefore part of the resolution contract.
func New(refs []domain.BrandRef) *BrandResolver {
	return &BrandResolver{
		refs: refs,
	}
}

// Resolve scans the brand table in order; an entry matches when its
// canonical name is a case-insensitive substring of the free text. Every
// match overwrites the previous one, so with several matching entries the
// last one in table order wins. Returns (id, "") on a match and
// (0, freeText) when nothing matched.
func (r *BrandResolver) Resolve(freeText string) (int64, string) {
	lower := strings.ToLower(freeText)

	var matched int64
	for _, ref := range r.refs {
		if ref.Name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(ref.Name)) {
			matched = ref.ID
		}
	}

	if matched == 0 {
		return 0, freeText
	}
	return matched, ""
}
