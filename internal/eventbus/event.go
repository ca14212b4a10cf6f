package eventbus

import "time"

type EventType string

const (
	EventTypeExtraction EventType = "extraction"
)

type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
	Retries   int         `json:"retries"`
}

// ExtractionEvent carries one SMS of a batch to the extraction workers.
type ExtractionEvent struct {
	BatchID  string `json:"batch_id"`
	Provider string `json:"provider"`
	Message  string `json:"message"`
	Index    int    `json:"index"`
}
