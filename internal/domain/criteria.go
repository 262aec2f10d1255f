package domain

// Criteria holds the optional search filters. All fields arrive as strings
// from whatever form or CLI sits in front of the service; an empty string
// means "no constraint on that dimension", never "match empty".
type Criteria struct {
	Keyword     string `json:"keyword,omitempty"`
	Category    string `json:"category,omitempty"`
	MinPrice    string `json:"min_price,omitempty"`
	MaxPrice    string `json:"max_price,omitempty"`
	StringCount string `json:"string_count,omitempty"` // filters on the category label, same as Category
}
