package dto

import "github.com/finledger/finledger/internal/core/domain"

// CreateCategoryRequest creates a user-scoped category.
type CreateCategoryRequest struct {
	Key   string              `json:"key" binding:"required"`
	Name  domain.CategoryName `json:"name" binding:"required"`
	Color string              `json:"color"`
	Icon  string              `json:"icon"`
}

// CreateCounterpartyRequest creates a user-scoped counterparty.
type CreateCounterpartyRequest struct {
	Key   string `json:"key" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"omitempty,oneof=company person institution other"`
	Logo  string `json:"logo"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}
