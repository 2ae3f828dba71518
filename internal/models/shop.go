package models

// Shop is a row of the shop table.
type Shop struct {
	ShopID  string
	Name    string
	Address string
	AuditFields
}

// Investor is a row of the investor table.
type Investor struct {
	InvestorID string
	Name       string
	AuditFields
}
