package models

// CountResponse contains the number of applications with a given status.
type CountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DatabaseHealthResponse reports database reachability.
type DatabaseHealthResponse struct {
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}
