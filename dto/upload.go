package dto

// UploadResponse describes one stored file
type UploadResponse struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Mimetype     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

// HealthResponse is returned by the health probe
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
	Database  string  `json:"database"`
}
