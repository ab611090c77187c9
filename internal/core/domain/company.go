package domain

// Company is the legal entity the freelancer invoices through.
// Exactly one company per user is the default.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	UserID    string `json:"userID"`
	AuditFields
}
