package repository

import "time"

// ZoneListFilter 查询配送区域的过滤条件
type ZoneListFilter struct {
	OnlyActive bool
	Kind       string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page            int
	PageSize        int
	UserID          uint
	Status          string
	FulfillmentType string
	OrderType       string
	OrderNo         string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
