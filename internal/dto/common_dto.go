package dto

// ErrorResponse is the conventional failure envelope: {success:false, message}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Error(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
