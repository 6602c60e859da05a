package config

import "time"

// UserService 用户目录服务
type UserService struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	TimeoutMs int    `json:"timeout_ms" yaml:"timeout_ms"`
}

func (u *UserService) Timeout() time.Duration {
	return time.Duration(u.TimeoutMs) * time.Millisecond
}
