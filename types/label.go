package types

// Label 快照中的标签
type Label struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	UserID uint64 `json:"user_id"`
}

// CreateLabelRequest 创建/更新标签
type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required,notblank,max=100"`
	Color string `json:"color" binding:"max=50"`
}

// LabelIDsRequest 笔记挂载/移除标签
type LabelIDsRequest struct {
	LabelIDs []uint64 `json:"label_ids" binding:"required,min=1,dive,gt=0"`
}
