package catalog

// CategoryAll selects the whole catalog without filtering.
const CategoryAll = "all"

// Filter returns the products whose category equals the selection, keeping
// the original order. Selecting CategoryAll returns the input unchanged.
// Pure function: no network access, same input always yields same output.
func Filter(products []Product, category string) []Product {
	if category == CategoryAll {
		return products
	}

	filtered := make([]Product, 0)
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
