package domain

// Shop is a business unit owned by one or more investors.
type Shop struct {
	ShopID  string `json:"shopID"`
	Name    string `json:"name"`
	Address string `json:"address"`
	AuditFields
}
