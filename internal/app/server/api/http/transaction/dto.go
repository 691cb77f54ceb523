package transaction

import (
	"github.com/shopspring/decimal"

	"budgetkeeper/internal/model"
)

type listInput struct {
	AccountID int64 `query:"accountId" doc:"Only transactions of this account"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Transactions []model.Transaction `json:"transactions"`
}

type createInput struct {
	// Offline clients send the key when replaying queued mutations so a
	// retried create is booked exactly once.
	IdempotencyKey string `header:"Idempotency-Key" doc:"Dedupe key for replayed requests"`
	Body           transactionRequest
}

type updateInput struct {
	ID   int64 `path:"id" doc:"Transaction id"`
	Body transactionRequest
}

type deleteInput struct {
	ID int64 `path:"id" doc:"Transaction id"`
}

type transactionRequest struct {
	AccountID   int64           `json:"account_id" doc:"Account the transaction belongs to"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" doc:"Signed amount; negative is spending"`
	Description string          `json:"description" minLength:"1"`
	Date        string          `json:"date" doc:"Booking date, YYYY-MM-DD"`
	Payee       string          `json:"payee,omitempty"`
	Memo        string          `json:"memo,omitempty"`
	Cleared     string          `json:"cleared,omitempty" doc:"One of cleared, uncleared, reconciled"`
	Notes       string          `json:"notes,omitempty"`
}

func (r transactionRequest) toModel(id int64) model.Transaction {
	return model.Transaction{
		ID:          id,
		AccountID:   r.AccountID,
		CategoryID:  r.CategoryID,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
		Payee:       r.Payee,
		Memo:        r.Memo,
		Cleared:     model.ClearedStatus(r.Cleared),
		Notes:       r.Notes,
	}
}

type idOutput struct {
	Body idResponse
}

type idResponse struct {
	ID int64 `json:"id"`
}
