package battle

import "time"

type Event struct {
	Type       string         `json:"type"`
	Turn       int            `json:"turn"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}
