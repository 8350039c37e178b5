package models

import "time"

type Enquiry struct {
	ID                string    `json:"id" bson:"_id"`
	Type              []string  `json:"type" bson:"type"`
	Category          string    `json:"category" bson:"category"`
	BHKCount          string    `json:"bhkCount,omitempty" bson:"bhk_count,omitempty"`
	AreaSqFt          string    `json:"areaSqFt,omitempty" bson:"area_sq_ft,omitempty"`
	BudgetINR         string    `json:"budgetINR,omitempty" bson:"budget_inr,omitempty"`
	LookingFor        string    `json:"lookingFor,omitempty" bson:"looking_for,omitempty"`
	ServiceLookingFor []string  `json:"serviceLookingFor,omitempty" bson:"service_looking_for,omitempty"`
	TimelineMonths    string    `json:"timelineMonths,omitempty" bson:"timeline_months,omitempty"`
	Pincode           string    `json:"pincode" bson:"pincode"`
	Interested        string    `json:"interested,omitempty" bson:"interested,omitempty"`
	MoreDetails       string    `json:"moreDetails,omitempty" bson:"more_details,omitempty"`
	Scopes            []string  `json:"scopes,omitempty" bson:"scopes,omitempty"`
	Quantity          string    `json:"quantity,omitempty" bson:"quantity,omitempty"`
	DoorsType         string    `json:"doorsType,omitempty" bson:"doors_type,omitempty"`
	Materials         []string  `json:"materials,omitempty" bson:"materials,omitempty"`
	PlanToBuyInMonths string    `json:"planToBuyInMonths,omitempty" bson:"plan_to_buy_in_months,omitempty"`
	CreatedByID       string    `json:"createdById" bson:"created_by"`
	CreatedAt         time.Time `json:"createdAt" bson:"created_at"`
}

type CreateEnquiryRequest struct {
	Type              []string `json:"type"`
	Category          string   `json:"category"`
	BHKCount          string   `json:"bhkCount"`
	AreaSqFt          string   `json:"areaSqFt"`
	BudgetINR         string   `json:"budgetINR"`
	LookingFor        string   `json:"lookingFor"`
	ServiceLookingFor []string `json:"serviceLookingFor"`
	TimelineMonths    string   `json:"timelineMonths"`
	Pincode           string   `json:"pincode"`
	Interested        string   `json:"interested"`
	MoreDetails       string   `json:"moreDetails"`
	Scopes            []string `json:"scopes"`
	Quantity          string   `json:"quantity"`
	DoorsType         string   `json:"doorsType"`
	Materials         []string `json:"materials"`
	PlanToBuyInMonths string   `json:"planToBuyInMonths"`
}

func (r *CreateEnquiryRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if len(r.Type) == 0 {
		errors["type"] = "Type is required"
	}
	if r.Category == "" {
		errors["category"] = "Category is required"
	}
	if r.Pincode == "" {
		errors["pincode"] = "Pincode is required"
	}

	return errors
}
