package model

import "time"

// DefaultStatus is assigned to every ticket at creation. Beyond that the
// storage layer does not enforce a status set: the dashboard treats values
// like "in_progress" or "closed" as conventions only.
const DefaultStatus = "new"

// PriorityUrgent is the only priority value with server-side meaning (the
// stats endpoint counts it). Everything else is a freeform tag.
const PriorityUrgent = "urgent"

type Ticket struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	TicketID string `gorm:"column:ticket_id;uniqueIndex;not null" json:"ticket_id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null" json:"email"`
	Reason   string `gorm:"not null" json:"reason"`
	Priority string `gorm:"type:varchar(32);index;not null" json:"priority"`
	Status   string `gorm:"type:varchar(32);index;not null;default:new" json:"status"`
	Note     string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
