package dto

import "github.com/jhoicas/almacen-lite/internal/application/importer"

// ImportRowError fallo de una fila del archivo importado.
type ImportRowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ImportResponse resumen de una importación masiva.
type ImportResponse struct {
	Total    int               `json:"total"`
	Imported int               `json:"imported"`
	Products []ProductResponse `json:"products"`
	Errors   []ImportRowError  `json:"errors"`
}

// ToImportResponse mapea el resultado del importador.
func ToImportResponse(res importer.Result) ImportResponse {
	errs := make([]ImportRowError, 0, len(res.Errors))
	for _, e := range res.Errors {
		errs = append(errs, ImportRowError{Row: e.Row, Errors: e.Errors})
	}
	return ImportResponse{
		Total:    res.Total,
		Imported: len(res.Imported),
		Products: ToProductResponses(res.Imported),
		Errors:   errs,
	}
}
