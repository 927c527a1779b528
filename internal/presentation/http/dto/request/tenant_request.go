package request

import "time"

// CreateTenantRequest represents the create tenant request body
type CreateTenantRequest struct {
	RoomID       string     `json:"room_id" binding:"required,uuid"`
	FullName     string     `json:"full_name" binding:"required,max=100"`
	IDNumber     string     `json:"id_number" binding:"required,max=20"`
	Phone        string     `json:"phone" binding:"required,max=15"`
	Email        string     `json:"email" binding:"omitempty,email"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Hometown     string     `json:"hometown" binding:"max=200"`
	MoveInDate   *time.Time `json:"move_in_date"`
	Deposit      int64      `json:"deposit" binding:"gte=0"`
	IsMainTenant *bool      `json:"is_main_tenant"`
	Notes        string     `json:"notes"`
}

// UpdateTenantRequest represents the update tenant request body
type UpdateTenantRequest struct {
	FullName     *string    `json:"full_name" binding:"omitempty,max=100"`
	Phone        *string    `json:"phone" binding:"omitempty,max=15"`
	Email        *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Hometown     *string    `json:"hometown" binding:"omitempty,max=200"`
	Deposit      *int64     `json:"deposit" binding:"omitempty,gte=0"`
	IsMainTenant *bool      `json:"is_main_tenant"`
	Notes        *string    `json:"notes"`
}

// CheckoutTenantRequest represents the tenant checkout request body
type CheckoutTenantRequest struct {
	MoveOutDate *time.Time `json:"move_out_date"`
}
