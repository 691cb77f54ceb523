package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates the supported account kinds.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	AccountCash       AccountType = "cash"
	AccountInvestment AccountType = "investment"
	AccountOther      AccountType = "other"
)

// CategoryType distinguishes spending categories from income categories.
type CategoryType string

const (
	CategoryExpense CategoryType = "expense"
	CategoryIncome  CategoryType = "income"
)

// ClearedStatus is the reconciliation state of a transaction.
type ClearedStatus string

const (
	ClearedCleared    ClearedStatus = "cleared"
	ClearedUncleared  ClearedStatus = "uncleared"
	ClearedReconciled ClearedStatus = "reconciled"
)

type Account struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Color     string          `json:"color,omitempty"`
	IsActive  bool            `json:"is_active"`
	SortOrder int             `json:"sort_order,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Category struct {
	ID       int64        `json:"id"`
	GroupID  *int64       `json:"group_id,omitempty"`
	Name     string       `json:"name"`
	Type     CategoryType `json:"type"`
	Color    string       `json:"color,omitempty"`
	IsActive bool         `json:"is_active"`
	IsHidden bool         `json:"is_hidden"`
}

type CategoryGroup struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order,omitempty"`
}

type Payee struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	UseCount int    `json:"use_count,omitempty"`
}

// Transaction is a booked movement on an account. Amount is positive for
// income and negative for expenses. Date uses the YYYY-MM-DD form.
type Transaction struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"account_id"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Payee       string          `json:"payee,omitempty"`
	Memo        string          `json:"memo,omitempty"`
	Cleared     ClearedStatus   `json:"cleared,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BudgetAllocation assigns an amount to a category for one month
// (Month uses the YYYY-MM form).
type BudgetAllocation struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	Month      string          `json:"month"`
	Assigned   decimal.Decimal `json:"assigned"`
}

// DashboardStats is the aggregate the dashboard endpoint serves.
type DashboardStats struct {
	TotalBalance    decimal.Decimal `json:"total_balance"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	AccountsCount   int             `json:"accounts_count"`
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
