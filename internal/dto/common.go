package dto

// HealthResponse represents the service health in the API response
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
	DB     string `json:"db,omitempty"`
}
