package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse cuerpo mínimo para operaciones sin payload de retorno.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Los listados responden con la forma {data, total, page, limit} que consume
// el dashboard; los valores por defecto y topes se aplican aquí.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage aplica defaults y límites a page/limit de un listado.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
