package http

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-lite/internal/application/dto"
	"github.com/jhoicas/almacen-lite/internal/application/importer"
	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/infrastructure/excel"
)

const (
	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvMIME  = "text/csv; charset=utf-8"
)

// ExportHandler maneja la exportación e importación de planillas.
type ExportHandler struct {
	store    *store.Store
	exporter *excel.Exporter
	importer *importer.Importer
}

// NewExportHandler construye el handler.
func NewExportHandler(s *store.Store, e *excel.Exporter, i *importer.Importer) *ExportHandler {
	return &ExportHandler{store: s, exporter: e, importer: i}
}

func attachment(c *fiber.Ctx, name, mime string, body []byte) error {
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(body)
}

func datedName(prefix, ext string) string {
	return prefix + "-" + time.Now().Format("2006-01-02") + ext
}

// Excel godoc
// @Summary      Exportar el inventario completo (.xlsx con hoja de resumen)
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/export/excel [get]
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	body, err := h.exporter.ProductsWorkbook(h.store.Products(), h.store.GetStats())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT", Message: err.Error()})
	}
	return attachment(c, datedName("inventario", ".xlsx"), xlsxMIME, body)
}

// CSV godoc
// @Summary      Exportar el inventario completo en CSV
// @Tags         export
// @Produce      text/csv
// @Success      200
// @Router       /api/export/csv [get]
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := excel.WriteProductsCSV(&buf, h.store.Products()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT", Message: err.Error()})
	}
	return attachment(c, datedName("inventario", ".csv"), csvMIME, buf.Bytes())
}

// Categories godoc
// @Summary      Exportar el reporte por categoría (.xlsx)
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/export/categories [get]
func (h *ExportHandler) Categories(c *fiber.Ctx) error {
	body, err := h.exporter.CategoryWorkbook(h.store.CategoryReport())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT", Message: err.Error()})
	}
	return attachment(c, datedName("reporte-categorias", ".xlsx"), xlsxMIME, body)
}

// LowStock godoc
// @Summary      Exportar el reporte de stock bajo (.xlsx)
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/export/low-stock [get]
func (h *ExportHandler) LowStock(c *fiber.Ctx) error {
	body, err := h.exporter.LowStockWorkbook(h.store.GetStats().LowStockProducts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT", Message: err.Error()})
	}
	return attachment(c, datedName("stock-bajo", ".xlsx"), xlsxMIME, body)
}

// Import godoc
// @Summary      Importar productos desde planilla (.xlsx o .csv)
// @Description  Cada fila se valida por separado; las inválidas se reportan
// @Description  con su número sin abortar el resto del lote.
// @Tags         export
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla a importar"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import [post]
func (h *ExportHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "se espera el archivo en el campo 'file'"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	defer f.Close()

	var res importer.Result
	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".csv":
		res, err = h.importer.ImportCSV(f)
	case ".xlsx", ".xls":
		res, err = h.importer.ImportExcel(f)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FORMAT", Message: "formato no soportado: se acepta .xlsx o .csv"})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo: " + err.Error()})
	}
	persistWarning(c, h.store)
	return c.JSON(dto.ToImportResponse(res))
}
