package models

// BookCategory values accepted by the catalog. The set mirrors what the
// storefront UI knows how to display.
const (
	CategoryRoman      = "ROMAN"
	CategoryPoesie     = "POESIE"
	CategoryTheatre    = "THEATRE"
	CategoryEssai      = "ESSAI"
	CategoryBiographie = "BIOGRAPHIE"
)

// Book is a catalog entry. ISBN is unique across the catalog
// (format 978-XXXXXXXXXX, enforced by the catalog service).
type Book struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            string  `json:"isbn"`
	Price           float64 `json:"price"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category,omitempty"`
	PublicationYear int     `json:"publicationYear"`
	CoverURL        string  `json:"coverUrl,omitempty"`
}
