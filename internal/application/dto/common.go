package dto

// Envelope cuerpo de respuesta exitosa que consume la SPA.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Success bool   `json:"success"`
	Error   bool   `json:"error"`
}

// OK construye un Envelope exitoso.
func OK(message string, data any) Envelope {
	return Envelope{Message: message, Data: data, Success: true}
}

// PageEnvelope Envelope con metadatos de paginación.
type PageEnvelope struct {
	Envelope
	TotalCount int `json:"totalCount"`
	TotalPage  int `json:"totalPage,omitempty"`
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
}

// PageRequest paginación por página (1-based) para listados.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero o negativos.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset desplazamiento SQL de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages número de páginas para count elementos.
func TotalPages(count, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}

// IDRequest cuerpo con solo el identificador.
type IDRequest struct {
	ID string `json:"_id"`
}

// RefDTO referencia poblada (id + nombre).
type RefDTO struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Success bool   `json:"success"`
	Error   bool   `json:"error"`
}

// Fail construye un ErrorResponse.
func Fail(code, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, Error: true}
}
