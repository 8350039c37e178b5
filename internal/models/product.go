package models

import "time"

type Category struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type Brand struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Logo      string    `json:"logo,omitempty" bson:"logo,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type Product struct {
	ID            string  `json:"id" bson:"_id"`
	Name          string  `json:"name" bson:"name"`
	About         string  `json:"about,omitempty" bson:"about,omitempty"`
	Category      string  `json:"category,omitempty" bson:"category,omitempty"`
	Subcategory   string  `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Type          string  `json:"type,omitempty" bson:"type,omitempty"`
	Subtype       string  `json:"subtype,omitempty" bson:"subtype,omitempty"`
	Price         float64 `json:"price" bson:"price"`
	DiscountPrice float64 `json:"discountPrice,omitempty" bson:"discount_price,omitempty"`
	// LastPrice is derived (price minus discount) and never stored.
	LastPrice   float64   `json:"lastPrice" bson:"-"`
	Images      []string  `json:"images,omitempty" bson:"images,omitempty"`
	BrandID     string    `json:"brandId,omitempty" bson:"brand,omitempty"`
	Brand       *Brand    `json:"brand,omitempty" bson:"-"`
	CreatedByID string    `json:"createdById" bson:"created_by"`
	CreatedBy   *User     `json:"createdBy,omitempty" bson:"-"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// ResolveLastPrice computes the effective price after discount.
func (p *Product) ResolveLastPrice() {
	p.LastPrice = p.Price - p.DiscountPrice
}

type CreateProductRequest struct {
	Name          string   `json:"name"`
	About         string   `json:"about"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Type          string   `json:"type"`
	Subtype       string   `json:"subtype"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discountPrice"`
	Images        []string `json:"images"`
	BrandID       string   `json:"brandId"`
}

func (r *CreateProductRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.Category == "" {
		errors["category"] = "Category is required"
	}
	if r.Price <= 0 {
		errors["price"] = "Price must be greater than zero"
	}
	if r.DiscountPrice < 0 || r.DiscountPrice > r.Price {
		errors["discountPrice"] = "Discount cannot exceed the price"
	}

	return errors
}
