package models

// Client is a row of the clients table.
type Client struct {
	ClientID       string `db:"client_id"`
	UserID         string `db:"user_id"`
	Name           string `db:"name"`
	Currency       string `db:"currency"`
	HolidayCountry string `db:"holiday_country"`
	AuditFields
}

// Company is a row of the companies table.
type Company struct {
	CompanyID string `db:"company_id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	IsDefault bool   `db:"is_default"`
	AuditFields
}
