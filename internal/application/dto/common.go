package dto

// ErrorResponse carga de error estándar de la API: código estable legible por
// máquina + mensaje para humanos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta genérica con solo un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
