package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventStatusScheduled  EventStatus = "scheduled"
	EventStatusConfirmed  EventStatus = "confirmed"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
)

// Event is a booked job for a client. Archived is nullable because older
// records predate the column; nil reads as not archived.
type Event struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	UserID         string          `gorm:"not null;index" json:"user_id"`
	ClientID       string          `gorm:"index" json:"client_id"`
	EventDate      time.Time       `gorm:"not null" json:"event_date"`
	Type           string          `json:"type"`
	TotalValue     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_value"`
	PaymentDueDate *time.Time      `json:"payment_due_date,omitempty"`
	Status         EventStatus     `gorm:"not null" json:"status"`
	Archived       *bool           `json:"archived,omitempty"`
	PrintCount     *int            `json:"print_count,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
}

func (Event) TableName() string { return "events" }

type Payment struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	UserID      string          `gorm:"not null;index" json:"user_id"`
	EventID     string          `gorm:"not null;index" json:"event_id"`
	Value       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"value"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	Status      PaymentStatus   `gorm:"not null" json:"status"`
	Cancelled   bool            `gorm:"not null;default:false" json:"cancelled"`
}

func (Payment) TableName() string { return "payments" }

type Cost struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	UserID      string          `gorm:"not null;index" json:"user_id"`
	EventID     string          `gorm:"not null;index" json:"event_id"`
	CostTypeID  string          `json:"cost_type_id"`
	UnitValue   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"unit_value"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	CreatedDate time.Time       `gorm:"not null" json:"created_date"`
	Removed     bool            `gorm:"not null;default:false" json:"removed"`
}

func (Cost) TableName() string { return "costs" }

// Effective is UnitValue × Quantity, with a non-positive quantity counted as one.
func (c Cost) Effective() decimal.Decimal {
	qty := c.Quantity
	if qty <= 0 {
		qty = 1
	}
	return c.UnitValue.Mul(decimal.NewFromInt(int64(qty)))
}

type Service struct {
	ID            string `gorm:"primaryKey" json:"id"`
	UserID        string `gorm:"not null;index" json:"user_id"`
	EventID       string `gorm:"not null;index" json:"event_id"`
	ServiceTypeID string `json:"service_type_id"`
	Removed       bool   `gorm:"not null;default:false" json:"removed"`
}

func (Service) TableName() string { return "services" }

type Client struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	UserID    string  `gorm:"not null;index" json:"user_id"`
	Name      string  `json:"name"`
	ChannelID *string `json:"channel_id,omitempty"`
	Archived  bool    `gorm:"not null;default:false" json:"archived"`
}

func (Client) TableName() string { return "clients" }

type Channel struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	Name   string `json:"name"`
}

func (Channel) TableName() string { return "channels" }

type ServiceType struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	Name   string `json:"name"`
}

func (ServiceType) TableName() string { return "service_types" }

type CostType struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	Name   string `json:"name"`
}

func (CostType) TableName() string { return "cost_types" }
