package domain

// Filter selects catalog products. Zero values ("" or "all") leave a
// dimension unconstrained; dimensions combine with AND.
type Filter struct {
	Category Category `json:"category"`
	ModelID  string   `json:"model"`
	Search   string   `json:"search"`
}

// IsIdentity reports whether the filter constrains nothing.
func (f Filter) IsIdentity() bool {
	return (f.Category == "" || f.Category == CategoryAll) &&
		(f.ModelID == "" || f.ModelID == "all") &&
		f.Search == ""
}

// Matches reports whether a single product passes the filter.
func (f Filter) Matches(p *Product) bool {
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	return p.FitsModel(f.ModelID) && p.MatchesSearch(f.Search)
}

// FilterProducts returns the products that pass the filter, in their
// original order. The input slice is never mutated.
func FilterProducts(products []*Product, f Filter) []*Product {
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
