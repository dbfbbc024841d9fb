package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler   postHandler
	authorHandler authorHandler
	tagHandler    tagHandler
	uploadHandler uploadHandler
	healthHandler healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// CountResponse is the body of GET /posts/_meta
type CountResponse struct {
	Count int64 `json:"count"`
}

// UploadResponse carries the public URL of an uploaded file
type UploadResponse struct {
	URL string `json:"url"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status    string `json:"status"`
	StartedAt string `json:"startedAt"`
	Uptime    string `json:"uptime"`
	Database  string `json:"database"`
}
