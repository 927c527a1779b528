package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/application/service"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/internal/presentation/http/dto/request"
	"github.com/minhvu/roomledger-api/internal/presentation/http/dto/response"
)

// TenantHandler handles tenant-related HTTP requests
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// List handles listing tenants
func (h *TenantHandler) List(c *gin.Context) {
	params := &repository.TenantFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.TenantStatus(statusStr)
		if status.IsValid() {
			params.Status = &status
		}
	}

	if roomIDStr := c.Query("room_id"); roomIDStr != "" {
		if roomID, err := uuid.Parse(roomIDStr); err == nil {
			params.RoomID = &roomID
		}
	}

	result, err := h.tenantService.ListTenants(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Tenants retrieved successfully", result)
}

// Get handles retrieving a single tenant
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant retrieved successfully", tenant)
}

// Create handles moving a tenant in
func (h *TenantHandler) Create(c *gin.Context) {
	var req request.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		response.BadRequest(c, "Invalid room ID")
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), &service.CreateTenantInput{
		RoomID:       roomID,
		FullName:     req.FullName,
		IDNumber:     req.IDNumber,
		Phone:        req.Phone,
		Email:        req.Email,
		DateOfBirth:  req.DateOfBirth,
		Hometown:     req.Hometown,
		MoveInDate:   req.MoveInDate,
		Deposit:      req.Deposit,
		IsMainTenant: req.IsMainTenant,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tenant created successfully", tenant)
}

// Update handles updating a tenant
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req request.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), id, &service.UpdateTenantInput{
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		DateOfBirth:  req.DateOfBirth,
		Hometown:     req.Hometown,
		Deposit:      req.Deposit,
		IsMainTenant: req.IsMainTenant,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant updated successfully", tenant)
}

// Checkout handles moving a tenant out
func (h *TenantHandler) Checkout(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	// Body is optional; an empty body means "moved out today".
	var req request.CheckoutTenantRequest
	_ = c.ShouldBindJSON(&req)

	tenant, err := h.tenantService.Checkout(c.Request.Context(), id, req.MoveOutDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant checked out successfully", tenant)
}

// Delete handles deleting a tenant record
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.tenantService.DeleteTenant(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Statistics handles tenant statistics
func (h *TenantHandler) Statistics(c *gin.Context) {
	stats, err := h.tenantService.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant statistics retrieved successfully", stats)
}
