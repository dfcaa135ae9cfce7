package dto

import (
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// CustomerResponse defines data returned for a customer.
type CustomerResponse struct {
	CustomerID string `json:"customerID"`
	NIC        string `json:"nic"`
	FullName   string `json:"fullName"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	CenterID   string `json:"centerID"`
	GroupID    string `json:"groupID"`
	Active     bool   `json:"active"`
}

// ToCustomerResponse converts a domain.Customer to DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		NIC:        c.NIC,
		FullName:   c.FullName,
		Gender:     c.Gender,
		Phone:      c.Phone,
		Address:    c.Address,
		CenterID:   c.CenterID,
		GroupID:    c.GroupID,
		Active:     c.Active,
	}
}

// ListCustomersResponse wraps the customers of a group in membership order.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToListCustomersResponse converts a slice of domain.Customer to DTO.
func ToListCustomersResponse(cs []domain.Customer) ListCustomersResponse {
	list := make([]CustomerResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCustomerResponse(&c)
	}
	return ListCustomersResponse{Customers: list}
}

// CenterResponse defines data returned for a center.
type CenterResponse struct {
	CenterID string `json:"centerID"`
	Name     string `json:"name"`
	BranchID string `json:"branchID"`
	Active   bool   `json:"active"`
}

// GroupResponse defines data returned for a group.
type GroupResponse struct {
	GroupID  string `json:"groupID"`
	CenterID string `json:"centerID"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
}

// ToCenterResponses converts center domain objects to DTOs.
func ToCenterResponses(cs []domain.Center) []CenterResponse {
	list := make([]CenterResponse, len(cs))
	for i, c := range cs {
		list[i] = CenterResponse{CenterID: c.CenterID, Name: c.Name, BranchID: c.BranchID, Active: c.Active}
	}
	return list
}

// ToGroupResponses converts group domain objects to DTOs.
func ToGroupResponses(gs []domain.Group) []GroupResponse {
	list := make([]GroupResponse, len(gs))
	for i, g := range gs {
		list[i] = GroupResponse{GroupID: g.GroupID, CenterID: g.CenterID, Name: g.Name, Active: g.Active}
	}
	return list
}
