package request

// CreateServiceRequest represents the create utility service request body
type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Unit        string `json:"unit" binding:"max=20"`
	Price       int64  `json:"price" binding:"gte=0"`
	Description string `json:"description"`
}

// UpdateServiceRequest represents the update utility service request body
type UpdateServiceRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Unit        *string `json:"unit" binding:"omitempty,max=20"`
	Price       *int64  `json:"price" binding:"omitempty,gte=0"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
