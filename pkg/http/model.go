package http

// APIResponse is the envelope every endpoint writes: the HTTP status repeated
// in the body, a status text message, and the payload under data.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError describes one failed request field.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"ticker"`
	Message string                 `json:"message,omitempty" example:"ticker is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
