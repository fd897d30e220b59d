package models

// ErrorDetail is the serializable payload inside the API error envelope.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ProjectListResponse struct {
	Projects []map[string]interface{} `json:"projects"`
}

type AssetListResponse struct {
	Assets []map[string]interface{} `json:"assets"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type StatusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}

type WelcomeResponse struct {
	Message string `json:"message"`
}

type CollectionInfoResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CollectionSummary struct {
	Name string `json:"name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
