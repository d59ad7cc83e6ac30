package api

// Pagination
type Pagination struct {
	// 总共有多少条目，请求时可以不用传递
	Total uint32 `json:"total,omitempty"`
	// 当前页索引，从 1 开始
	Page int32 `json:"page,omitempty"`
	// 总页数
	Pages int32 `json:"pages,omitempty"`
	// 每页数据量，为 -1 时表示查询全部
	PageSize int32 `json:"pageSize,omitempty"`
}

type QueryPage struct {
	Page     int32
	PageSize int32
	PoolName string
	TaskName string
}

type RspFailBody struct {
	ErrCode int    `json:"errcode"`
	Desc    string `json:"description"`
}
