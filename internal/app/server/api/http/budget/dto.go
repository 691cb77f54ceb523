package budget

import (
	"github.com/shopspring/decimal"

	"budgetkeeper/internal/model"
)

type listInput struct {
	Month string `query:"month" doc:"Budget month, YYYY-MM"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Allocations []model.BudgetAllocation `json:"allocations"`
}

type assignInput struct {
	CategoryID int64 `path:"categoryId" doc:"Category id"`
	Body       assignRequest
}

type assignRequest struct {
	Month    string          `json:"month" doc:"Budget month, YYYY-MM"`
	Assigned decimal.Decimal `json:"assigned" doc:"Budgeted amount for the month"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}
