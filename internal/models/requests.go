package models

type AddItemRequest struct {
	Item            CatalogItem `json:"item" validate:"required"`
	Dates           *DateRange  `json:"dates,omitempty"`
	AllowDuplicates bool        `json:"allowDuplicates"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type SetOrderModeRequest struct {
	Mode OrderMode `json:"mode" validate:"required"`
}

type SetStepRequest struct {
	Step *int `json:"step" validate:"required"`
}

type SetOpenRequest struct {
	Open *bool `json:"open" validate:"required"`
}
