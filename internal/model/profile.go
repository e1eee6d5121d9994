package model

import "time"

// Profile is the tenant record of a restaurant account.  MinutesBalance
// is the number of call minutes left for the voice agent; it only ever
// changes through atomic add / consume statements in the repository.
type Profile struct {
	UserID                string    `json:"user_id"`
	DisplayName           *string   `json:"display_name"`
	ContactEmail          *string   `json:"contact_email"`
	RestaurantName        *string   `json:"restaurant_name"`
	MinutesBalance        int       `json:"minutes_balance"`
	AutoRechargeEnabled   bool      `json:"auto_recharge_enabled"`
	AutoRechargeThreshold int       `json:"auto_recharge_threshold"`
	PreferredPackType     *string   `json:"preferred_pack_type"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// MinutesConsumption records minutes used by one call.
type MinutesConsumption struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MinutesUsed int       `json:"minutes_used"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
