package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chat message types.
const (
	MessageTypeUser  = "user"
	MessageTypeAgent = "agent"
)

// ChatLog is one line of the simulated conversation between the traveller
// and the agents during a planning run.
type ChatLog struct {
	ID          uuid.UUID     `json:"id"`
	TripID      uuid.UUID     `json:"tripId"`
	Agent       string        `json:"agent"`
	MessageType string        `json:"messageType"`
	Message     string        `json:"message"`
	Metadata    *ChatMetadata `json:"metadata,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// ChatMetadata carries UI hints for a chat line.
type ChatMetadata struct {
	Step        string     `json:"step,omitempty"`
	Specialty   string     `json:"specialty,omitempty"`
	Personality string     `json:"personality,omitempty"`
	DealID      *uuid.UUID `json:"dealId,omitempty"`
}
