// Package http exposes the assignment engine over a REST API.
// It translates transport concerns (binding, status codes) and delegates all
// behavior to the command and query handlers.
package http

import (
	"errors"
	"net/http"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	overrideCourierHandler commands.OverrideCourierCommandHandler
	advanceOrderHandler    commands.AdvanceOrderCommandHandler

	// Query handlers
	getAssignmentHandler queries.GetAssignmentQueryHandler
	getAuditTrailHandler queries.GetAuditTrailQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	overrideCourierHandler commands.OverrideCourierCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	getAssignmentHandler queries.GetAssignmentQueryHandler,
	getAuditTrailHandler queries.GetAuditTrailQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		overrideCourierHandler: overrideCourierHandler,
		advanceOrderHandler:    advanceOrderHandler,
		getAssignmentHandler:   getAssignmentHandler,
		getAuditTrailHandler:   getAuditTrailHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:id/advance", s.AdvanceOrder)
	v1.POST("/orders/:id/courier/override", s.OverrideCourier)
	v1.GET("/orders/:id/courier", s.GetAssignment)
	v1.GET("/orders/:id/courier/audit", s.GetAuditTrail)
}

// ErrorResponse is the JSON error body returned by all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	TenantID string  `json:"tenant_id"`
	Zone     string  `json:"zone"`
	WeightKg float64 `json:"weight_kg"`
	Value    int64   `json:"value"`
	Payment  string  `json:"payment"`
	Pincode  string  `json:"pincode"`
}

// OrderCreatedResponse is returned by POST /api/v1/orders.
type OrderCreatedResponse struct {
	ID string `json:"id"`
}

// OverrideRequest is the body of POST /api/v1/orders/:id/courier/override.
type OverrideRequest struct {
	CarrierID string `json:"carrier_id"`
	Actor     string `json:"actor"`
	Reason    string `json:"reason"`
}

// AssignmentResponse is the JSON form of an order's courier snapshot.
type AssignmentResponse struct {
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	CarrierID   string    `json:"carrier_id"`
	CarrierName string    `json:"carrier_name"`
	CarrierCode string    `json:"carrier_code"`
	RuleID      *string   `json:"rule_id,omitempty"`
	AssignedAt  time.Time `json:"assigned_at"`
	Reason      string    `json:"reason"`
}

// AuditSnapshotResponse is one frozen courier decision inside an audit entry.
type AuditSnapshotResponse struct {
	CarrierID   string    `json:"carrier_id"`
	CarrierName string    `json:"carrier_name"`
	CarrierCode string    `json:"carrier_code"`
	RuleID      *string   `json:"rule_id,omitempty"`
	AssignedAt  time.Time `json:"assigned_at"`
	Reason      string    `json:"reason"`
}

// AuditEntryResponse is one entry of GET /api/v1/orders/:id/courier/audit.
type AuditEntryResponse struct {
	ID             string                 `json:"id"`
	OrderID        string                 `json:"order_id"`
	Previous       *AuditSnapshotResponse `json:"previous,omitempty"`
	Next           AuditSnapshotResponse  `json:"next"`
	Actor          string                 `json:"actor"`
	OverrideReason string                 `json:"override_reason,omitempty"`
	RecordedAt     time.Time              `json:"recorded_at"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - creates an order and resolves its
// courier in one step. Returns 422 when no courier can serve the order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	tenantID, err := kernel.UUIDFromString(req.TenantID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid tenant id: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, tenantID, req.Zone, req.WeightKg, req.Value, req.Payment, req.Pincode)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{ID: orderID.String()})
}

// OverrideCourier handles POST /api/v1/orders/:id/courier/override - replaces
// the assigned courier with a manually chosen one.
func (s *Server) OverrideCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	var req OverrideRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid carrier id: "+err.Error())
	}

	cmd, err := commands.NewOverrideCourierCommand(orderID, carrierID, req.Actor, req.Reason)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid override data: "+err.Error())
	}

	if handleErr := s.overrideCourierHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance - moves the order to
// its next lifecycle status.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	if handleErr := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAssignment handles GET /api/v1/orders/:id/courier - returns the current
// courier snapshot of an order.
func (s *Server) GetAssignment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetAssignmentQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	assignment, err := s.getAssignmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errorJSON(ctx, http.StatusNotFound, "Assignment not found")
		}
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve assignment")
	}

	return ctx.JSON(http.StatusOK, AssignmentResponse{
		OrderID:     assignment.OrderID.String(),
		Status:      assignment.Status,
		CarrierID:   assignment.CarrierID.String(),
		CarrierName: assignment.CarrierName,
		CarrierCode: assignment.CarrierCode,
		RuleID:      uuidString(assignment.RuleID),
		AssignedAt:  assignment.AssignedAt,
		Reason:      assignment.Reason,
	})
}

// GetAuditTrail handles GET /api/v1/orders/:id/courier/audit - returns the
// order's assignment history, oldest entry first.
func (s *Server) GetAuditTrail(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetAuditTrailQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	entries, err := s.getAuditTrailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve audit trail")
	}

	response := make([]AuditEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = AuditEntryResponse{
			ID:             entry.EntryID.String(),
			OrderID:        entry.OrderID.String(),
			Previous:       auditSnapshot(entry.Previous),
			Next:           *auditSnapshot(&entry.Next),
			Actor:          entry.Actor,
			OverrideReason: entry.OverrideReason,
			RecordedAt:     entry.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// commandError maps domain and application errors to HTTP status codes.
func (s *Server) commandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNoCourierAvailable),
		errors.Is(err, commands.ErrCarrierNotEligible):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, order.ErrOverrideNotAllowed),
		errors.Is(err, order.ErrNoCourierAssigned),
		errors.Is(err, order.ErrCourierRequiredToShip),
		errors.Is(err, ports.ErrConcurrencyConflict):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Internal error")
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func auditSnapshot(snapshot *queries.AssignmentSnapshotResponse) *AuditSnapshotResponse {
	if snapshot == nil {
		return nil
	}
	return &AuditSnapshotResponse{
		CarrierID:   snapshot.CarrierID.String(),
		CarrierName: snapshot.CarrierName,
		CarrierCode: snapshot.CarrierCode,
		RuleID:      uuidString(snapshot.RuleID),
		AssignedAt:  snapshot.AssignedAt,
		Reason:      snapshot.Reason,
	}
}
