package account

import (
	"github.com/shopspring/decimal"

	"budgetkeeper/internal/model"
)

type listInput struct {
	IncludeInactive bool `query:"includeInactive" doc:"Also return deactivated accounts"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Accounts []model.Account `json:"accounts"`
}

type createInput struct {
	Body accountRequest
}

type updateInput struct {
	ID   int64 `path:"id" doc:"Account id"`
	Body accountRequest
}

type deleteInput struct {
	ID int64 `path:"id" doc:"Account id"`
}

type accountRequest struct {
	Name      string          `json:"name" doc:"Account name" minLength:"1"`
	Type      string          `json:"type" doc:"One of checking, savings, credit_card, cash, investment, other"`
	Balance   decimal.Decimal `json:"balance,omitempty" doc:"Opening balance"`
	Currency  string          `json:"currency,omitempty" doc:"ISO currency code"`
	Color     string          `json:"color,omitempty" doc:"Display color"`
	SortOrder int             `json:"sort_order,omitempty"`
}

func (r accountRequest) toModel(id int64) model.Account {
	return model.Account{
		ID:        id,
		Name:      r.Name,
		Type:      model.AccountType(r.Type),
		Balance:   r.Balance,
		Currency:  r.Currency,
		Color:     r.Color,
		SortOrder: r.SortOrder,
	}
}

type idOutput struct {
	Body idResponse
}

type idResponse struct {
	ID int64 `json:"id"`
}
