package dto

// ListFundsParams は GET /api/funds のクエリパラメータです。
type ListFundsParams struct {
	// Keyword は名称またはコードの部分一致（大文字小文字を区別しない）
	Keyword *string `form:"keyword,omitempty" json:"keyword,omitempty"`
	// Type はファンド種別の完全一致
	Type *string `form:"type,omitempty" json:"type,omitempty"`
}

// HistoryParams は GET /api/funds/{fundId}/history のクエリパラメータです。
type HistoryParams struct {
	// Days は返す直近の件数
	Days *int `form:"days,omitempty" json:"days,omitempty"`
}
