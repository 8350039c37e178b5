package models

import "time"

type ProjectLocation struct {
	Place   string `json:"place,omitempty" bson:"place,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

// Project is a realtor/professional listing.
type Project struct {
	ID               string          `json:"id" bson:"_id"`
	Title            string          `json:"title" bson:"title"`
	SellerName       string          `json:"sellerName,omitempty" bson:"seller_name,omitempty"`
	SellerPhone      string          `json:"sellerPhoneNumber,omitempty" bson:"seller_phone,omitempty"`
	ProjectType      string          `json:"projectType,omitempty" bson:"project_type,omitempty"`
	Location         ProjectLocation `json:"projectLocation,omitempty" bson:"project_location,omitempty"`
	ConstructionType string          `json:"constructionType,omitempty" bson:"construction_type,omitempty"`
	HouseType        string          `json:"houseType,omitempty" bson:"house_type,omitempty"`
	Style            string          `json:"style,omitempty" bson:"style,omitempty"`
	Layout           string          `json:"layout,omitempty" bson:"layout,omitempty"`
	Bathrooms        string          `json:"numberOfBathrooms,omitempty" bson:"bathrooms,omitempty"`
	AreaSquareFeet   float64         `json:"areaSquareFeet,omitempty" bson:"area_square_feet,omitempty"`
	PlotSize         string          `json:"plotSize,omitempty" bson:"plot_size,omitempty"`
	Scope            string          `json:"scope,omitempty" bson:"scope,omitempty"`
	Cost             float64         `json:"cost,omitempty" bson:"cost,omitempty"`
	About            string          `json:"about,omitempty" bson:"about,omitempty"`
	Images           []string        `json:"images,omitempty" bson:"images,omitempty"`
	Floors           int             `json:"floors,omitempty" bson:"floors,omitempty"`
	Parkings         int             `json:"numberOfParkings,omitempty" bson:"parkings,omitempty"`
	Ownership        string          `json:"propertyOwnership,omitempty" bson:"ownership,omitempty"`
	TransactionType  string          `json:"transactionTypeForProperty,omitempty" bson:"transaction_type,omitempty"`
	PlotSizeProperty string          `json:"plotSizeForProperty,omitempty" bson:"plot_size_property,omitempty"`
	BoundaryWall     bool            `json:"boundaryWall,omitempty" bson:"boundary_wall,omitempty"`
	CornerProperty   bool            `json:"cornerProperty,omitempty" bson:"corner_property,omitempty"`
	PropertyAge      int             `json:"propertyAge,omitempty" bson:"property_age,omitempty"`
	Tags             []string        `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedByID      string          `json:"createdById" bson:"created_by"`
	CreatedBy        *User           `json:"createdBy,omitempty" bson:"-"`
	FlagState        `bson:",inline"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
}

type CreateProjectRequest struct {
	Title            string          `json:"title"`
	SellerName       string          `json:"sellerName"`
	SellerPhone      string          `json:"sellerPhoneNumber"`
	ProjectType      string          `json:"projectType"`
	Location         ProjectLocation `json:"projectLocation"`
	ConstructionType string          `json:"constructionType"`
	HouseType        string          `json:"houseType"`
	Style            string          `json:"style"`
	Layout           string          `json:"layout"`
	Bathrooms        string          `json:"numberOfBathrooms"`
	AreaSquareFeet   float64         `json:"areaSquareFeet"`
	PlotSize         string          `json:"plotSize"`
	Scope            string          `json:"scope"`
	Cost             float64         `json:"cost"`
	About            string          `json:"about"`
	Images           []string        `json:"images"`
	Floors           int             `json:"floors"`
	Parkings         int             `json:"numberOfParkings"`
	Ownership        string          `json:"propertyOwnership"`
	TransactionType  string          `json:"transactionTypeForProperty"`
	PlotSizeProperty string          `json:"plotSizeForProperty"`
	BoundaryWall     bool            `json:"boundaryWall"`
	CornerProperty   bool            `json:"cornerProperty"`
	PropertyAge      int             `json:"propertyAge"`
	Tags             []string        `json:"tags"`
}

func (r *CreateProjectRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	}
	if r.ProjectType == "" {
		errors["projectType"] = "Project type is required"
	}
	if r.Cost < 0 {
		errors["cost"] = "Cost cannot be negative"
	}
	if r.AreaSquareFeet < 0 {
		errors["areaSquareFeet"] = "Area cannot be negative"
	}

	return errors
}

type ListByIDsRequest struct {
	IDs []string `json:"ids"`
}
