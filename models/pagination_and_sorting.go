package models

type SortingOrder string

const (
	SortingOrderAsc  SortingOrder = "ASC"
	SortingOrderDesc SortingOrder = "DESC"
)

type PaginationAndSorting struct {
	// OffsetId is the id of the cursor change: results strictly after (or
	// before, depending on Order) that change's (created_at, id) pair.
	OffsetId string
	Order    SortingOrder
	Limit    int
}

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

func WithPaginationDefaults(pagination PaginationAndSorting) PaginationAndSorting {
	if pagination.Limit <= 0 {
		pagination.Limit = DefaultPageSize
	}
	if pagination.Limit > MaxPageSize {
		pagination.Limit = MaxPageSize
	}
	if pagination.Order == "" {
		pagination.Order = SortingOrderDesc
	}
	return pagination
}
