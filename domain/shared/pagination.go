package shared

// PageSize 分页查询的固定页大小
const PageSize = 20

// PaginationParams 分页参数，页码从 1 开始
type PaginationParams struct {
	Page int
}

// Bounds 返回第 Page 页在长度为 total 的序列中的 [start, end) 区间
// 页码小于 1 或超出范围时 ok=false，调用方应返回空结果而非错误
func (p PaginationParams) Bounds(total int) (start, end int, ok bool) {
	if p.Page < 1 {
		return 0, 0, false
	}
	start = (p.Page - 1) * PageSize
	if start >= total {
		return 0, 0, false
	}
	end = start + PageSize
	if end > total {
		end = total
	}
	return start, end, true
}

// Offset 数据库查询使用的偏移量
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * PageSize
}
