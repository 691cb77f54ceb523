package category

import "budgetkeeper/internal/model"

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Categories []model.Category `json:"categories"`
}

type createInput struct {
	Body categoryRequest
}

type categoryRequest struct {
	GroupID  *int64 `json:"group_id,omitempty" doc:"Parent group id"`
	Name     string `json:"name" doc:"Category name" minLength:"1"`
	Type     string `json:"type" doc:"One of expense, income"`
	Color    string `json:"color,omitempty"`
	IsHidden bool   `json:"is_hidden,omitempty"`
}

func (r categoryRequest) toModel() model.Category {
	return model.Category{
		GroupID:  r.GroupID,
		Name:     r.Name,
		Type:     model.CategoryType(r.Type),
		Color:    r.Color,
		IsHidden: r.IsHidden,
	}
}

type listGroupsOutput struct {
	Body listGroupsResponse
}

type listGroupsResponse struct {
	Groups []model.CategoryGroup `json:"groups"`
}

type createGroupInput struct {
	Body groupRequest
}

type groupRequest struct {
	Name      string `json:"name" doc:"Group name" minLength:"1"`
	SortOrder int    `json:"sort_order,omitempty"`
}

func (r groupRequest) toModel() model.CategoryGroup {
	return model.CategoryGroup{
		Name:      r.Name,
		SortOrder: r.SortOrder,
	}
}

type idOutput struct {
	Body idResponse
}

type idResponse struct {
	ID int64 `json:"id"`
}
