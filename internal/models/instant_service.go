package models

import "time"

// Instant-service booking types.
var InstantServiceTypes = []string{"Repair and Service", "Installation", "Uninstallation"}

type InstantSubcategory struct {
	Title       string            `json:"title" bson:"title"`
	Image       string            `json:"image,omitempty" bson:"image,omitempty"`
	Services    []string          `json:"services,omitempty" bson:"services,omitempty"`
	Price       map[string]string `json:"price" bson:"price"` // serviceType -> price
	ServiceType []string          `json:"serviceType" bson:"service_type"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
}

type InstantCategory struct {
	ID            string               `json:"id" bson:"_id"`
	CategoryName  string               `json:"categoryName" bson:"category_name"`
	Subcategories []InstantSubcategory `json:"subcategories" bson:"subcategories"`
	CreatedAt     time.Time            `json:"createdAt" bson:"created_at"`
}

// InstantServiceDetails is a snapshot of the booked subcategory, immune to
// later catalog edits.
type InstantServiceDetails struct {
	Category    string `json:"category" bson:"category"`
	Title       string `json:"title" bson:"title"`
	Image       string `json:"image" bson:"image"`
	Description string `json:"description" bson:"description"`
	ServiceType string `json:"serviceType" bson:"service_type"`
	Price       string `json:"price" bson:"price"`
}

type InstantService struct {
	ID              string                `json:"id" bson:"_id"`
	UserID          string                `json:"userId" bson:"user_id"`
	DeliveryAddress DeliveryAddress       `json:"deliveryAddress" bson:"delivery_address"`
	ServiceDetails  InstantServiceDetails `json:"serviceDetails" bson:"service_details"`
	Date            time.Time             `json:"date" bson:"date"`
	UserDescription string                `json:"userDescription,omitempty" bson:"user_description,omitempty"`
	CreatedAt       time.Time             `json:"createdAt" bson:"created_at"`
}

type OrderInstantServiceRequest struct {
	DeliveryAddressID string    `json:"deliveryAddressId"`
	CategoryName      string    `json:"categoryName"`
	SubcategoryName   string    `json:"subcategoryName"`
	ServiceType       string    `json:"serviceType"`
	Date              time.Time `json:"date"`
	UserDescription   string    `json:"userDescription"`
}

func (r *OrderInstantServiceRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.DeliveryAddressID == "" {
		errors["deliveryAddressId"] = "Delivery address ID is required"
	}
	if r.CategoryName == "" {
		errors["categoryName"] = "Category name is required"
	}
	if r.SubcategoryName == "" {
		errors["subcategoryName"] = "Subcategory name is required"
	}
	if r.ServiceType == "" {
		errors["serviceType"] = "Service type is required"
	}
	if r.Date.IsZero() {
		errors["date"] = "Date is required"
	}

	return errors
}
