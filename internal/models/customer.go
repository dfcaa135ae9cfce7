package models

// Center is the database row for a collection center.
type Center struct {
	CenterID string `db:"center_id"`
	Name     string `db:"name"`
	BranchID string `db:"branch_id"`
	IsActive bool   `db:"is_active"`
	AuditFields
}

// Group is the database row for a borrower group.
type Group struct {
	GroupID  string `db:"group_id"`
	CenterID string `db:"center_id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
	AuditFields
}

// GroupMember is the database row tying a customer to a group.
type GroupMember struct {
	GroupID    string `db:"group_id"`
	CustomerID string `db:"customer_id"`
	Position   int    `db:"position"`
	IsActive   bool   `db:"is_active"`
}

// Customer is the database row for a registered borrower.
type Customer struct {
	CustomerID string `db:"customer_id"`
	NIC        string `db:"nic"`
	FullName   string `db:"full_name"`
	Gender     string `db:"gender"`
	Phone      string `db:"phone"`
	Address    string `db:"address"`
	CenterID   string `db:"center_id"`
	GroupID    string `db:"group_id"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
