package domain

import "time"

// Receipt kinds.
const (
	ReceiptKindRaw = "raw"
	ReceiptKindL1  = "l1"
)

// UploadReceipt records one successful file upload for downstream consumers.
type UploadReceipt struct {
	File         string    `json:"file"`
	Kind         string    `json:"kind"` // "raw" or "l1"
	ExperimentID int       `json:"experiment_id"`
	Date         time.Time `json:"date"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
