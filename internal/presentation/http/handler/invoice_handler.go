package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minhvu/roomledger-api/internal/application/service"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/internal/presentation/http/dto/request"
	"github.com/minhvu/roomledger-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: parsePagination(c),
		RoomNumber: c.Query("room_number"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.InvoiceStatus(statusStr)
		if status.IsValid() {
			params.Status = &status
		}
	}

	if monthStr := c.Query("month"); monthStr != "" {
		if month, err := strconv.Atoi(monthStr); err == nil {
			params.Month = &month
		}
	}

	if yearStr := c.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			params.Year = &year
		}
	}

	if roomIDStr := c.Query("room_id"); roomIDStr != "" {
		if roomID, err := uuid.Parse(roomIDStr); err == nil {
			params.RoomID = &roomID
		}
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles retrieving a single invoice with its payments
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		response.BadRequest(c, "Invalid room ID")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		RoomID:            roomID,
		Month:             req.Month,
		Year:              req.Year,
		ElectricOld:       req.ElectricOld,
		ElectricNew:       req.ElectricNew,
		ElectricUnitPrice: req.ElectricUnitPrice,
		WaterOld:          req.WaterOld,
		WaterNew:          req.WaterNew,
		WaterUnitPrice:    req.WaterUnitPrice,
		OtherFees:         req.OtherFees,
		DueDate:           req.DueDate,
		Notes:             req.Notes,
		CreatedBy:         GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// CreateBulk handles bulk invoice creation for a billing period
func (h *InvoiceHandler) CreateBulk(c *gin.Context) {
	var req request.BulkCreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.invoiceService.CreateBulk(c.Request.Context(), &service.BulkCreateInput{
		Month:     req.Month,
		Year:      req.Year,
		DueDate:   req.DueDate,
		CreatedBy: GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoices created successfully", result)
}

// Update handles updating an invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, &service.UpdateInvoiceInput{
		ElectricOld:       req.ElectricOld,
		ElectricNew:       req.ElectricNew,
		ElectricUnitPrice: req.ElectricUnitPrice,
		WaterOld:          req.WaterOld,
		WaterNew:          req.WaterNew,
		WaterUnitPrice:    req.WaterUnitPrice,
		RoomCharge:        req.RoomCharge,
		OtherFees:         req.OtherFees,
		DueDate:           req.DueDate,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListOverdue handles listing overdue invoices with severity levels
func (h *InvoiceHandler) ListOverdue(c *gin.Context) {
	result, err := h.invoiceService.ListOverdue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overdue invoices retrieved successfully", result)
}

// Statistics handles invoice statistics for a period
func (h *InvoiceHandler) Statistics(c *gin.Context) {
	month, year := parsePeriod(c)
	stats, err := h.invoiceService.Statistics(c.Request.Context(), month, year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice statistics retrieved successfully", stats)
}

// RoomsWithoutInvoice handles listing occupied rooms missing an invoice
func (h *InvoiceHandler) RoomsWithoutInvoice(c *gin.Context) {
	month, year := parsePeriod(c)
	rooms, err := h.invoiceService.RoomsWithoutInvoice(c.Request.Context(), month, year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rooms retrieved successfully", rooms)
}
