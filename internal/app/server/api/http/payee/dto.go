package payee

import "budgetkeeper/internal/model"

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Payees []model.Payee `json:"payees"`
}
