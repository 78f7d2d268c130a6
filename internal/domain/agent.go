package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a simulated travel-agent persona.
// IsActive is the only field an operator changes; the averages are
// rewritten by the statistics refresh job and are nil until it first runs.
type Agent struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	IsActive            bool      `json:"isActive"`
	AvgPrice            *float64  `json:"avgPrice"`
	AvgConfirmationTime *string   `json:"avgConfirmationTime"`
	CreatedAt           time.Time `json:"createdAt"`
}

// AgentStats is the recomputed average for one agent.
type AgentStats struct {
	Name                string
	AvgPrice            float64
	AvgConfirmationTime string
}

// AgentLog records one offer evaluated during a planning run.
type AgentLog struct {
	ID           uuid.UUID `json:"id"`
	Agent        string    `json:"agent"`
	Price        float64   `json:"price"`
	HotelRating  int       `json:"hotelRating"`
	DeliveryTime string    `json:"deliveryTime"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Analytics is the dashboard summary shown in the admin panel.
type Analytics struct {
	AvgPrice               float64 `json:"avgPrice"`
	MostPopularDestination string  `json:"mostPopularDestination"`
	FastestConfirmation    string  `json:"fastestConfirmation"`
}
