package request

// CreateRoomRequest represents the create room request body
type CreateRoomRequest struct {
	RoomNumber  string  `json:"room_number" binding:"required,max=20"`
	Floor       int     `json:"floor"`
	Area        float64 `json:"area" binding:"gte=0"`
	Price       int64   `json:"price" binding:"gte=0"`
	Deposit     int64   `json:"deposit" binding:"gte=0"`
	Status      string  `json:"status" binding:"omitempty,oneof=available occupied maintenance"`
	Description string  `json:"description"`
}

// UpdateRoomRequest represents the update room request body
type UpdateRoomRequest struct {
	RoomNumber  *string  `json:"room_number" binding:"omitempty,max=20"`
	Floor       *int     `json:"floor"`
	Area        *float64 `json:"area" binding:"omitempty,gte=0"`
	Price       *int64   `json:"price" binding:"omitempty,gte=0"`
	Deposit     *int64   `json:"deposit" binding:"omitempty,gte=0"`
	Status      *string  `json:"status" binding:"omitempty,oneof=available occupied maintenance"`
	Description *string  `json:"description"`
}
