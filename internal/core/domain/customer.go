package domain

// Center is a collection point grouping several borrower groups.
type Center struct {
	CenterID string `json:"centerID"` // Primary Key (e.g., UUID)
	Name     string `json:"name"`
	BranchID string `json:"branchID"`
	Active   bool   `json:"active"`
	AuditFields
}

// Group is a small borrower group within a center. Guarantors for a new loan
// are drawn from the applicant's fellow group members in membership order.
type Group struct {
	GroupID  string `json:"groupID"` // Primary Key (e.g., UUID)
	CenterID string `json:"centerID"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	AuditFields
}

// GroupMember ties a customer to a group with a stable ordering position.
type GroupMember struct {
	GroupID    string `json:"groupID"`
	CustomerID string `json:"customerID"`
	Position   int    `json:"position"` // membership order, 1-based
	Active     bool   `json:"active"`
}

// Customer is a registered borrower.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (e.g., UUID)
	NIC        string `json:"nic"`
	FullName   string `json:"fullName"`
	Gender     string `json:"gender"` // "Male" or "Female", derived from NIC at registration
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	CenterID   string `json:"centerID"`
	GroupID    string `json:"groupID"`
	Active     bool   `json:"active"`
	AuditFields
}
