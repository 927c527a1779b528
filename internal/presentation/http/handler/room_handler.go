package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhvu/roomledger-api/internal/application/service"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/internal/presentation/http/dto/request"
	"github.com/minhvu/roomledger-api/internal/presentation/http/dto/response"
)

// RoomHandler handles room-related HTTP requests
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// List handles listing rooms
func (h *RoomHandler) List(c *gin.Context) {
	params := &repository.RoomFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.RoomStatus(statusStr)
		if status.IsValid() {
			params.Status = &status
		}
	}

	result, err := h.roomService.ListRooms(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Rooms retrieved successfully", result)
}

// Get handles retrieving a single room
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid room ID")
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room retrieved successfully", room)
}

// Create handles creating a room
func (h *RoomHandler) Create(c *gin.Context) {
	var req request.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), &service.CreateRoomInput{
		RoomNumber:  req.RoomNumber,
		Floor:       req.Floor,
		Area:        req.Area,
		Price:       req.Price,
		Deposit:     req.Deposit,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Room created successfully", room)
}

// Update handles updating a room
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid room ID")
		return
	}

	var req request.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), id, &service.UpdateRoomInput{
		RoomNumber:  req.RoomNumber,
		Floor:       req.Floor,
		Area:        req.Area,
		Price:       req.Price,
		Deposit:     req.Deposit,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room updated successfully", room)
}

// Delete handles deleting a room
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid room ID")
		return
	}

	if err := h.roomService.DeleteRoom(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Statistics handles room statistics
func (h *RoomHandler) Statistics(c *gin.Context) {
	stats, err := h.roomService.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room statistics retrieved successfully", stats)
}

// parsePeriod reads month and year query parameters, defaulting to zero
func parsePeriod(c *gin.Context) (int, int) {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	return month, year
}
