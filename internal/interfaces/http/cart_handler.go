package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-archivo/internal/application/dto"
	"github.com/jhoicas/tienda-archivo/internal/application/usecase"
)

// CartHandler maneja las peticiones HTTP para Cart.
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Create godoc
// @Summary      Crear carrito
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCartRequest  true  "Dueño e items"
// @Success      201   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/carts [post]
func (h *CartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCode godoc
// @Summary      Obtener carrito por código
// @Tags         carts
// @Produce      json
// @Param        code  path  int  true  "Código del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{code} [get]
func (h *CartHandler) GetByCode(c *fiber.Ctx) error {
	code, ok := codeParam(c)
	if !ok {
		return invalidCode(c)
	}
	out, err := h.uc.GetByCode(code)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "carrito no encontrado")
	}
	return c.JSON(out)
}

// Owner godoc
// @Summary      Dueño del carrito
// @Tags         carts
// @Produce      json
// @Param        code  path  int  true  "Código del carrito"
// @Success      200  {object}  dto.UserResponse
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{code}/owner [get]
func (h *CartHandler) Owner(c *fiber.Ctx) error {
	code, ok := codeParam(c)
	if !ok {
		return invalidCode(c)
	}
	out, err := h.uc.Owner(code)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar carritos (opcionalmente de un usuario)
// @Tags         carts
// @Produce      json
// @Param        user    query  string  false  "Cédula del dueño"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.CartListResponse
// @Router       /api/carts [get]
func (h *CartHandler) List(c *fiber.Ctx) error {
	if user := c.Query("user"); user != "" {
		items, err := h.uc.ListByUser(user)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.CartListResponse{Items: items, Page: dto.PageResponse{Total: len(items)}})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReplaceItems godoc
// @Summary      Reemplazar items del carrito
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        code  path  int  true  "Código del carrito"
// @Param        body  body  dto.ReplaceCartItemsRequest  true  "Items"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/carts/{code} [put]
func (h *CartHandler) ReplaceItems(c *fiber.Ctx) error {
	code, ok := codeParam(c)
	if !ok {
		return invalidCode(c)
	}
	var in dto.ReplaceCartItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ReplaceItems(code, in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "carrito no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar carrito
// @Tags         carts
// @Param        code  path  int  true  "Código del carrito"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{code} [delete]
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	code, ok := codeParam(c)
	if !ok {
		return invalidCode(c)
	}
	if err := h.uc.Delete(code); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
