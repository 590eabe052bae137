package request

// IngestRequest is the body of POST /api/v1/relay/{region}.
type IngestRequest struct {
	Results []GroupResult `json:"results" validate:"required,dive"`
}

type GroupResult struct {
	Group  string `json:"group" validate:"required"`
	Status string `json:"status" validate:"required,oneof=ok fail"`
}
