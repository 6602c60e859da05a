package types

// Actor 发起请求的用户
type Actor struct {
	ID    uint64
	Email string
}
