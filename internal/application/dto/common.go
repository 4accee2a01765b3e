package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CountResponse respuesta de conteo simple.
type CountResponse struct {
	Count int64 `json:"count"`
}
