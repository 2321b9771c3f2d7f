package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-lite/internal/application/dto"
	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/domain"
	"github.com/jhoicas/almacen-lite/internal/infrastructure/barcode"
	"github.com/jhoicas/almacen-lite/internal/infrastructure/pdf"
)

// ProductHandler maneja las peticiones HTTP de productos.
type ProductHandler struct {
	store  *store.Store
	labels *pdf.LabelGenerator
}

// NewProductHandler construye el handler.
func NewProductHandler(s *store.Store, labels *pdf.LabelGenerator) *ProductHandler {
	return &ProductHandler{store: s, labels: labels}
}

// persistWarning expone en la respuesta el último fallo de persistencia: la
// mutación quedó aplicada en memoria pero el blob en disco puede estar viejo.
func persistWarning(c *fiber.Ctx, s *store.Store) {
	if err := s.LastPersistErr(); err != nil {
		c.Set("Warning", `199 - "persistencia degradada: `+err.Error()+`"`)
	}
}

func validationError(c *fiber.Ctx, verr *domain.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos del producto inválidos",
		Fields:  verr.Fields,
	})
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input, err := in.ToInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	p, err := h.store.AddProduct(input)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return validationError(c, verr)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	persistWarning(c, h.store)
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(p))
}

// List godoc
// @Summary      Listar productos con búsqueda, filtro y orden
// @Tags         products
// @Produce      json
// @Param        search      query  string  false  "Búsqueda por nombre o código"
// @Param        category    query  string  false  "Filtro de categoría exacta"
// @Param        sort_by     query  string  false  "Campo de ordenamiento"  default(name)
// @Param        sort_order  query  string  false  "asc o desc"             default(asc)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items := h.store.FilteredProducts(
		c.Query("search"),
		c.Query("category"),
		c.Query("sort_by", "name"),
		c.Query("sort_order", "asc"),
	)
	return c.JSON(dto.ProductListResponse{
		Items: dto.ToProductResponses(items),
		Total: len(items),
	})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.store.GetProduct(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.ToProductResponse(p))
}

// Update godoc
// @Summary      Reemplazar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.SaveProductRequest  true  "Datos a guardar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input, err := in.ToInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	p, err := h.store.UpdateProduct(c.Params("id"), input)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			return validationError(c, verr)
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	persistWarning(c, h.store)
	return c.JSON(dto.ToProductResponse(p))
}

// Delete godoc
// @Summary      Eliminar producto (idempotente)
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	// Borrar un id inexistente es un no-op silencioso
	h.store.DeleteProduct(c.Params("id"))
	persistWarning(c, h.store)
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStock godoc
// @Summary      Ajustar stock de un producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateStockRequest  true  "Nueva cantidad y motivo"
// @Success      200   {object}  dto.StockUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [post]
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.NewQuantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "new_quantity es requerido"})
	}
	p, delta, err := h.store.UpdateStock(c.Params("id"), *in.NewQuantity, in.Reason)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	persistWarning(c, h.store)
	return c.JSON(dto.StockUpdateResponse{Product: dto.ToProductResponse(p), Delta: delta})
}

// Barcode godoc
// @Summary      Código de barras del producto (PNG, Code 128)
// @Tags         products
// @Produce      png
// @Param        id  path  string  true  "ID del producto"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/barcode [get]
func (h *ProductHandler) Barcode(c *fiber.Ctx) error {
	p, err := h.store.GetProduct(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	img, err := barcode.PNG(p.Code, c.QueryInt("width", 300), c.QueryInt("height", 80))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "BARCODE", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(img)
}

// Label godoc
// @Summary      Etiqueta de despacho del producto (PDF)
// @Tags         products
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del producto"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/label [get]
func (h *ProductHandler) Label(c *fiber.Ctx) error {
	p, err := h.store.GetProduct(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	doc, err := h.labels.GenerateDeliveryLabel(p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "LABEL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="etiqueta-`+p.Code+`.pdf"`)
	return c.Send(doc)
}
