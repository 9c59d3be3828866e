package messaging

// События экспорта, публикуемые в Kafka
const (
	FeedExportCompletedEvent = "feed_export_completed"
	FeedExportFailedEvent    = "feed_export_failed"
)

// ExportEvent представляет полезную нагрузку события экспорта
type ExportEvent struct {
	EventType  string `json:"event_type"`
	RunID      string `json:"run_id"`
	Total      int    `json:"total,omitempty"`
	Emitted    int    `json:"emitted,omitempty"`
	Skipped    int    `json:"skipped,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`
	OutputFile string `json:"output_file,omitempty"`
	Error      string `json:"error,omitempty"`
}
