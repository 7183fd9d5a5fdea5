package dtos

// WebResponse ist die Hülle jeder erfolgreichen Antwort der Wartungs-API.
type WebResponse[T any] struct {
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Details   []any  `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse ist der Fehlerkörper, den die Auth- und Rollen-Middleware
// vor dem Routing schreiben. Type entspricht app_errors (UNAUTHORIZED, FORBIDDEN).
type ErrorResponse struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}
