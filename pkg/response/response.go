package response

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

var (
	UnsupportedMediaTypeResponse = ErrorResponse{
		Error: "Content-Type must be application/json",
	}
	MissingURLParamResponse = ErrorResponse{
		Error: "'url' parameter is required in request body",
	}
	InvalidURLResponse = ErrorResponse{
		Error: "Invalid URL",
	}
	ShortCodeNotFoundResponse = ErrorResponse{
		Error: "Short code not found",
	}
	CodeGenerationFailedResponse = ErrorResponse{
		Error: "Could not generate unique code",
	}
	ServerErrorResponse = ErrorResponse{
		Error: "Internal server error",
	}
)

// HealthResponse is the JSON body returned by the liveness endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Message string `json:"message,omitempty"`
}

var (
	ServiceHealthyResponse = HealthResponse{
		Status:  "healthy",
		Service: "URL Shortener API",
	}
	APIHealthyResponse = HealthResponse{
		Status:  "ok",
		Message: "URL Shortener API is running",
	}
)
