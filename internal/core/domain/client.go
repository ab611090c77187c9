package domain

// Client is a customer the freelancer bills. Revenue from its missions is
// expressed in Currency, and its HolidayCountry drives entry holiday flags.
type Client struct {
	ClientID       string `json:"clientID"`
	Name           string `json:"name"`
	Currency       string `json:"currency"`       // ISO 4217, upper-case
	HolidayCountry string `json:"holidayCountry"` // ISO 3166-1 alpha-2
	UserID         string `json:"userID"`
	AuditFields
}
