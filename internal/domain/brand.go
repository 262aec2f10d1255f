package domain

// Brand is a normalized vendor record built from its reference page.
type Brand struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Country     string `json:"country,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website"` // official site when declared, else the reference page URL
}

// BrandRef is the (id, canonical name) pair the resolver scans.
type BrandRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
