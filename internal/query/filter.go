package query

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ProjectFilter holds every supported project filtering dimension, each
// independently optional. BSON produces the corresponding Mongo filter; zero
// values add no criteria.
type ProjectFilter struct {
	Query            string // fuzzy match across the searchable text fields
	SellerNames      []string
	SellerPhones     []string
	ProjectTypes     []string
	Locations        []string
	ConstructionType []string
	HouseTypes       []string
	Styles           []string
	Titles           []string
	Bathrooms        []string
	MinArea          *float64
	MaxArea          *float64
	MinCost          *float64
	MaxCost          *float64
	Ownership        []string
	TransactionTypes []string
	PlotSizes        []string
	BoundaryWall     *bool
	CornerProperty   *bool
	PropertyAges     []int
	Tags             []string
}

// projectFuzzyFields are the text fields the general query matches against.
var projectFuzzyFields = []string{
	"seller_name",
	"seller_phone",
	"project_type",
	"project_location.place",
	"construction_type",
	"house_type",
	"style",
	"title",
}

func (f ProjectFilter) BSON() bson.M {
	filter := bson.M{}

	if f.Query != "" {
		filter["$or"] = FuzzyOr(f.Query, projectFuzzyFields...)["$or"]
	}

	addIn(filter, "seller_name", f.SellerNames)
	addIn(filter, "seller_phone", f.SellerPhones)
	addIn(filter, "project_type", f.ProjectTypes)
	addIn(filter, "project_location.place", f.Locations)
	addIn(filter, "construction_type", f.ConstructionType)
	addIn(filter, "house_type", f.HouseTypes)
	addIn(filter, "style", f.Styles)
	addIn(filter, "title", f.Titles)
	addIn(filter, "bathrooms", f.Bathrooms)
	addIn(filter, "ownership", f.Ownership)
	addIn(filter, "transaction_type", f.TransactionTypes)
	addIn(filter, "plot_size_property", f.PlotSizes)
	addIn(filter, "tags", f.Tags)
	if len(f.PropertyAges) > 0 {
		filter["property_age"] = bson.M{"$in": f.PropertyAges}
	}

	addRange(filter, "area_square_feet", f.MinArea, f.MaxArea)
	addRange(filter, "cost", f.MinCost, f.MaxCost)

	if f.BoundaryWall != nil {
		filter["boundary_wall"] = *f.BoundaryWall
	}
	if f.CornerProperty != nil {
		filter["corner_property"] = *f.CornerProperty
	}

	return filter
}

// UserFilter selects users by role and professional type.
type UserFilter struct {
	Roles []string
	Types []string
}

func (f UserFilter) BSON() bson.M {
	filter := bson.M{}
	addIn(filter, "role", f.Roles)
	addIn(filter, "type", f.Types)
	return filter
}

func addIn(filter bson.M, field string, values []string) {
	if len(values) > 0 {
		filter[field] = bson.M{"$in": values}
	}
}

func addRange(filter bson.M, field string, min, max *float64) {
	if min == nil && max == nil {
		return
	}
	r := bson.M{}
	if min != nil {
		r["$gte"] = *min
	}
	if max != nil {
		r["$lte"] = *max
	}
	filter[field] = r
}
