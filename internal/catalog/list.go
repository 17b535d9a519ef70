package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ListFilters narrows a catalog listing. Zero-valued fields are ignored.
type ListFilters struct {
	Category string
	Tag      string
	MaxPrice *decimal.Decimal
}

// List returns the items matching all set filters, in catalog order.
func (idx *Index) List(filters ListFilters) []Item {
	result := make([]Item, 0, len(idx.items))

	category := strings.ToLower(strings.TrimSpace(filters.Category))
	tag := strings.ToLower(strings.TrimSpace(filters.Tag))

	for _, item := range idx.items {
		if category != "" && strings.ToLower(item.Category) != category {
			continue
		}
		if tag != "" && !hasTag(item, tag) {
			continue
		}
		if filters.MaxPrice != nil && item.UnitPrice.GreaterThan(*filters.MaxPrice) {
			continue
		}
		result = append(result, item)
	}

	return result
}

func hasTag(item Item, tag string) bool {
	for _, t := range item.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}
