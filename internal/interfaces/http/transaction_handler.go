package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/transaction"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// TransactionHandler maneja las peticiones HTTP de transacciones de inventario
// (protegido). Cada operación de la máquina de estados es un endpoint POST.
type TransactionHandler struct {
	uc *transaction.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *transaction.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir una transacción de inventario
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "stock_id, name"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	trans, err := h.uc.Create(c.Context(), GetUserID(c), in.StockID, in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(trans))
}

// GetByID godoc
// @Summary      Obtener transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Transaction ID"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	trans, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// ListHistory godoc
// @Summary      Traza de estados de la transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Transaction ID"
// @Param        limit   query  int     false  "Máximo de filas (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.TransactionHistoryResponse
// @Router       /api/transactions/{id}/history [get]
func (h *TransactionHandler) ListHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	rows, err := h.uc.ListHistory(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]*dto.TransactionHistoryResponse, 0, len(rows))
	for _, hRow := range rows {
		out = append(out, toHistoryResponse(hRow))
	}
	return c.JSON(out)
}

// ── Operaciones de comercio ───────────────────────────────────────────────────

// Checkout godoc
// @Summary      Mover stock al checkout del cliente
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  true  "quantity requerido"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/checkout [post]
func (h *TransactionHandler) Checkout(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	qty, ok := requireQuantity(c, in)
	if !ok {
		return nil
	}
	trans, err := h.uc.Checkout(c.Context(), GetUserID(c), c.Params("id"), qty, in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// Sold godoc
// @Summary      Marcar la transacción como vendida
// @Description  Sin quantity vende lo ya retenido (post-checkout); con quantity
//
//	es una venta directa que descuenta stock.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  false  "quantity opcional"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/sold [post]
func (h *TransactionHandler) Sold(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	trans, err := h.uc.Sold(c.Context(), GetUserID(c), c.Params("id"), in.Quantity, in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// Returned godoc
// @Summary      Registrar devolución total o parcial
// @Description  Sin quantity devuelve todo; con quantity menor a lo retenido es
//
//	devolución parcial.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  false  "quantity opcional"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/returned [post]
func (h *TransactionHandler) Returned(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	trans, err := h.uc.Returned(c.Context(), GetUserID(c), c.Params("id"), in.Quantity, in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// Reserved godoc
// @Summary      Reservar stock para el cliente
// @Description  Con back_order=true, si no hay existencia suficiente la
//
//	transacción pasa a back-order en lugar de fallar.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  true  "quantity requerido, back_order opcional"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/reserved [post]
func (h *TransactionHandler) Reserved(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	qty, ok := requireQuantity(c, in)
	if !ok {
		return nil
	}
	trans, err := h.uc.Reserved(c.Context(), GetUserID(c), c.Params("id"), qty, in.BackOrder, in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// BackOrder godoc
// @Summary      Registrar pedido pendiente por falta de existencia
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  true  "quantity requerido"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/back-order [post]
func (h *TransactionHandler) BackOrder(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	qty, ok := requireQuantity(c, in)
	if !ok {
		return nil
	}
	trans, err := h.uc.BackOrder(c.Context(), GetUserID(c), c.Params("id"), qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// FillBackOrder godoc
// @Summary      Surtir un pedido pendiente
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  false  "reason, cost"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/fill-back-order [post]
func (h *TransactionHandler) FillBackOrder(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	trans, err := h.uc.FillBackOrder(c.Context(), GetUserID(c), c.Params("id"), in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// ── Operaciones de bodega ─────────────────────────────────────────────────────

// Ordered godoc
// @Summary      Registrar pedido a proveedor
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  true  "quantity requerido"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/ordered [post]
func (h *TransactionHandler) Ordered(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	qty, ok := requireQuantity(c, in)
	if !ok {
		return nil
	}
	trans, err := h.uc.Ordered(c.Context(), GetUserID(c), c.Params("id"), qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// Received godoc
// @Summary      Registrar recepción total o parcial del pedido
// @Description  Sin quantity recibe todo lo pedido; con quantity menor es
//
//	recepción parcial.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  false  "quantity opcional"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/received [post]
func (h *TransactionHandler) Received(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	trans, err := h.uc.Received(c.Context(), GetUserID(c), c.Params("id"), in.Quantity, in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// Hold godoc
// @Summary      Retener stock en espera
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  true  "quantity requerido"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/hold [post]
func (h *TransactionHandler) Hold(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	qty, ok := requireQuantity(c, in)
	if !ok {
		return nil
	}
	trans, err := h.uc.Hold(c.Context(), GetUserID(c), c.Params("id"), qty, in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// Release godoc
// @Summary      Liberar stock retenido (total o parcial)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  false  "quantity opcional"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/release [post]
func (h *TransactionHandler) Release(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	trans, err := h.uc.Release(c.Context(), GetUserID(c), c.Params("id"), in.Quantity, in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// Remove godoc
// @Summary      Remover stock del inventario (total o parcial)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  false  "quantity opcional"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/remove [post]
func (h *TransactionHandler) Remove(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	trans, err := h.uc.Remove(c.Context(), GetUserID(c), c.Params("id"), in.Quantity, in.Reason, in.Cost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// Cancel godoc
// @Summary      Cancelar la transacción
// @Description  Repone el stock retenido cuando el estado actual lo retiene
//
//	(checkout, reservado, en espera).
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transaction ID"
// @Param        body  body  dto.TransactionOpRequest  false  "reason"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	in, ok := parseOp(c)
	if !ok {
		return nil
	}
	trans, err := h.uc.Cancel(c.Context(), GetUserID(c), c.Params("id"), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toTransactionResponse(trans))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// parseOp parsea el body común de las operaciones. Body vacío es válido en las
// operaciones con quantity opcional. Con ok=false la respuesta de error ya fue
// escrita y el handler debe retornar nil.
func parseOp(c *fiber.Ctx) (in dto.TransactionOpRequest, ok bool) {
	if len(c.Body()) == 0 {
		return in, true
	}
	if err := c.BodyParser(&in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return in, false
	}
	return in, true
}

// requireQuantity exige quantity en las operaciones que no tienen variante sin cantidad.
func requireQuantity(c *fiber.Ctx, in dto.TransactionOpRequest) (decimal.Decimal, bool) {
	if in.Quantity == nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity requerido"})
		return decimal.Zero, false
	}
	return *in.Quantity, true
}

func toTransactionResponse(t *entity.InventoryTransaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:        t.ID,
		StockID:   t.StockID,
		Name:      t.Name,
		State:     string(t.State),
		Quantity:  t.Quantity,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toHistoryResponse(h *entity.TransactionHistory) *dto.TransactionHistoryResponse {
	return &dto.TransactionHistoryResponse{
		ID:             h.ID,
		TransactionID:  h.TransactionID,
		StateBefore:    string(h.StateBefore),
		StateAfter:     string(h.StateAfter),
		QuantityBefore: h.QuantityBefore,
		QuantityAfter:  h.QuantityAfter,
		CreatedAt:      h.CreatedAt,
	}
}
