package model

// Department is a store aisle used to group list items.
type Department struct {
	ID          string `json:"id"`
	NameGerman  string `json:"nameGerman"`
	NameEnglish string `json:"nameEnglish"`
	Icon        string `json:"icon"`
}
