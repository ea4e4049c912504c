package model

// Page is the paginated response envelope.
type Page[T any] struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
	Data     []T `json:"data"`
}
