package types

// Result represents an operation result at the API boundary
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}

// Ok builds a success result
func Ok(data map[string]interface{}) *Result {
	return &Result{Success: true, Data: data}
}

// Fail builds a failure result
func Fail(message string) *Result {
	return &Result{Success: false, Error: &message}
}
