package repository

import "gorm.io/gorm"

// maxPageSize 列表单页上限，与接口层分页归一化保持一致
const maxPageSize = 100

// applyPagination pageSize<=0 表示不分页；页码从 1 开始
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
