package dto

// ScanRequest carries the free text to scan for registered entities.
type ScanRequest struct {
	Text string `json:"text"`
}
