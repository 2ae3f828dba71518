package domain

// Investor is a capital contributor. One investor may hold stakes in several shops.
type Investor struct {
	InvestorID string `json:"investorID"`
	Name       string `json:"name"`
	AuditFields
}
