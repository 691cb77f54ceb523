package dashboard

import "budgetkeeper/internal/model"

type statsOutput struct {
	Body model.DashboardStats
}
