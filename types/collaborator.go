package types

// AccessLevel 对笔记的访问级别
type AccessLevel string

const (
	AccessNone      AccessLevel = ""
	AccessRead      AccessLevel = "readonly"
	AccessReadWrite AccessLevel = "readwrite"
)

func (a AccessLevel) Valid() bool {
	return a == AccessRead || a == AccessReadWrite
}

// CanRead readonly 与 readwrite 均可读
func (a AccessLevel) CanRead() bool {
	return a.Valid()
}

func (a AccessLevel) CanWrite() bool {
	return a == AccessReadWrite
}

type Collaborator struct {
	Email  string      `json:"email"`
	Access AccessLevel `json:"access"`
}

// Collaborators 协作者 user_id -> {email, access}，JSON 中 key 为字符串形式的 user_id
type Collaborators map[uint64]Collaborator

// UserIDs 协作者 ID 列表
func (c Collaborators) UserIDs() []uint64 {
	ids := make([]uint64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	return ids
}

// AddCollaboratorsRequest 添加协作者
type AddCollaboratorsRequest struct {
	NoteID  uint64      `json:"note_id" binding:"required,gt=0"`
	UserIDs []uint64    `json:"user_ids" binding:"required,min=1,dive,gt=0"`
	Access  AccessLevel `json:"access" binding:"required,access"`
}

// RemoveCollaboratorsRequest 移除协作者
type RemoveCollaboratorsRequest struct {
	NoteID  uint64   `json:"note_id" binding:"required,gt=0"`
	UserIDs []uint64 `json:"user_ids" binding:"required,min=1,dive,gt=0"`
}
