package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del ledger de stock (protegido).
type StockHandler struct {
	uc     *ledger.StockLedgerUseCase
	report *usecase.ReportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.StockLedgerUseCase, report *usecase.ReportUseCase) *StockHandler {
	return &StockHandler{uc: uc, report: report}
}

// Create godoc
// @Summary      Dar de alta stock de un producto en una bodega
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "product_id, warehouse_id, quantity inicial"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := h.uc.Create(c.Context(), GetUserID(c), in.ProductID, in.WarehouseID, in.Quantity, in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockResponse(stock))
}

// GetByID godoc
// @Summary      Obtener registro de stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Stock ID"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	stock, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockResponse(stock))
}

// List godoc
// @Summary      Listar registros de stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.StockResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	stocks, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]*dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, toStockResponse(s))
	}
	return c.JSON(out)
}

// Put godoc
// @Summary      Agregar cantidad al stock
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Stock ID"
// @Param        body  body  dto.StockMutationRequest  true  "quantity, reason, cost"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/put [post]
func (h *StockHandler) Put(c *fiber.Ctx) error {
	return h.mutate(c, h.uc.Put)
}

// Take godoc
// @Summary      Descontar cantidad del stock
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Stock ID"
// @Param        body  body  dto.StockMutationRequest  true  "quantity, reason, cost"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/take [post]
func (h *StockHandler) Take(c *fiber.Ctx) error {
	return h.mutate(c, h.uc.Take)
}

// MoveTo godoc
// @Summary      Trasladar el stock a otra bodega
// @Description  Cambia la bodega del registro sin generar movimiento del ledger.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Stock ID"
// @Param        body  body  dto.MoveStockRequest  true  "warehouse_id destino"
// @Success      200   {object}  dto.StockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/move [post]
func (h *StockHandler) MoveTo(c *fiber.Ctx) error {
	var in dto.MoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := h.uc.MoveTo(c.Context(), GetUserID(c), c.Params("id"), in.WarehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockResponse(stock))
}

// Rollback godoc
// @Summary      Revertir un movimiento del ledger
// @Description  Sin movement_id revierte el más reciente; recursive revierte
//
//	también todo lo posterior al movimiento indicado.
//
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Stock ID"
// @Param        body  body  dto.RollbackRequest  false  "movement_id, recursive"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/rollback [post]
func (h *StockHandler) Rollback(c *fiber.Ctx) error {
	var in dto.RollbackRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	stock, err := h.uc.Rollback(c.Context(), GetUserID(c), c.Params("id"), in.MovementID, in.Recursive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockResponse(stock))
}

// ListMovements godoc
// @Summary      Listar movimientos del ledger de un stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Stock ID"
// @Param        limit   query  int     false  "Máximo de filas (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	movements, err := h.uc.ListMovements(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// MovementReport godoc
// @Summary      Reporte PDF de movimientos (kardex)
// @Tags         stocks
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Stock ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/movements/report [get]
func (h *StockHandler) MovementReport(c *fiber.Ctx) error {
	pdfBytes, err := h.report.MovementReport(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="movimientos.pdf"`)
	return c.Send(pdfBytes)
}

// mutate factoriza put/take: mismo body, misma respuesta.
func (h *StockHandler) mutate(
	c *fiber.Ctx,
	fn func(ctx context.Context, stockID string, mut ledger.StockMutation) (*entity.StockRecord, error),
) error {
	var in dto.StockMutationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := fn(c.Context(), c.Params("id"), ledger.StockMutation{
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		Cost:       in.Cost,
		Serial:     in.Serial,
		ReceiverID: in.ReceiverID,
		Actor:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockResponse(stock))
}

func toStockResponse(s *entity.StockRecord) *dto.StockResponse {
	return &dto.StockResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:         m.ID,
		StockID:    m.StockID,
		Before:     m.Before,
		After:      m.After,
		Cost:       m.Cost,
		Reason:     m.Reason,
		Serial:     m.Serial,
		ReceiverID: m.ReceiverID,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}
