package types

// CreateNoteRequest 创建/全量更新笔记
type CreateNoteRequest struct {
	Title       string     `json:"title" binding:"required,notblank,max=255"`
	Description string     `json:"description"`
	Color       string     `json:"color" binding:"max=50"`
	IsArchive   bool       `json:"is_archive"`
	IsTrash     bool       `json:"is_trash"`
	Reminder    *Timestamp `json:"reminder"`
}

// NoteSnapshot 笔记的完整反范式快照，写入缓存并作为接口返回
type NoteSnapshot struct {
	ID            uint64        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Color         string        `json:"color"`
	IsArchive     bool          `json:"is_archive"`
	IsTrash       bool          `json:"is_trash"`
	Reminder      *Timestamp    `json:"reminder"`
	UserID        uint64        `json:"user_id"`
	Labels        []Label       `json:"labels"`
	Collaborators Collaborators `json:"collaborators"`
}

// Archived 归档列表 = 已归档且未删除
func (n *NoteSnapshot) Archived() bool {
	return n.IsArchive && !n.IsTrash
}
