package models

// SearchSection is one category's independently paginated slice of a
// multi-category search result. Callers must not assume a single global
// totalPages across sections.
type SearchSection struct {
	Data         interface{} `json:"data"`
	CurrentPage  int         `json:"currentPage"`
	TotalPages   int         `json:"totalPages"`
	TotalResults int64       `json:"totalResults"`
}

type SearchResults struct {
	Categories     SearchSection `json:"categories"`
	Brands         SearchSection `json:"brands"`
	Products       SearchSection `json:"products"`
	Projects       SearchSection `json:"projects"`
	Users          SearchSection `json:"users"`
	ProductSellers SearchSection `json:"productSellers"`
}
