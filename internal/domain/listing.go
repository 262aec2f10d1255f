package domain

// ListingEntry is one catalog tile on a listing page.
type ListingEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListingPage is one parsed page of the paginated catalog index.
type ListingPage struct {
	Offset       int            `json:"offset"`        // Nao offset this page was fetched at
	TotalMatches int            `json:"total_matches"` // displayed total-result count
	Entries      []ListingEntry `json:"entries"`
}

// PageCount derives the number of listing pages from the displayed total.
// The source paginates in steps of pageSize and always shows a final
// partial page, hence the +1.
func (p *ListingPage) PageCount(pageSize int) int {
	return p.TotalMatches/pageSize + 1
}
