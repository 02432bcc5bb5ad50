package journal

import "time"

// Side identifies the direction of a trade
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// Valid reports whether the side is a known value
func (s Side) Valid() bool {
	return s == SideLong || s == SideShort
}

// Trade is a single closed trade as recorded in the journal.
// ProfitLoss is the realized, signed result of the trade. It is stored by
// the caller when the trade is logged and is the single source of truth for
// every downstream computation; it is never re-derived from prices.
type Trade struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Symbol         string    `json:"symbol"`
	Side           Side      `json:"side"`
	EntryPrice     float64   `json:"entry_price"`
	ExitPrice      float64   `json:"exit_price"`
	EntryTime      time.Time `json:"entry_time"`
	ExitTime       time.Time `json:"exit_time"`
	Quantity       float64   `json:"quantity"`
	ProfitLoss     float64   `json:"profit_loss"`
	Strategy       string    `json:"strategy,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	EmotionalState string    `json:"emotional_state,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Note is a free-form journal note, optionally attached to a trade
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TradeID   string    `json:"trade_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event is a dated journal event (earnings, FOMC, personal milestones)
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Kind        string    `json:"kind"`
	EventTime   time.Time `json:"event_time"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TradeFilter narrows trade listings
type TradeFilter struct {
	From   *time.Time
	To     *time.Time
	Symbol string
	Limit  int
}
