package service

import (
	"Fundoo/pkg/client"
	"Fundoo/pkg/utils"
	"context"
	"fmt"
)

// UserDirectory 外部用户目录
type UserDirectory interface {
	FindUsers(ctx context.Context, ids []uint64) ([]client.DirectoryUser, error)
}

// CollaboratorValidator 确认候选协作者全部存在
type CollaboratorValidator struct {
	Directory UserDirectory
}

// Resolve 查询用户邮箱，任一 ID 无法解析即整体失败
func (v *CollaboratorValidator) Resolve(ctx context.Context, ids []uint64) ([]client.DirectoryUser, error) {
	ids = utils.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil, ErrUnknownUsers
	}

	users, err := v.Directory.FindUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve collaborators: %w", err)
	}
	if len(users) != len(ids) {
		return nil, ErrUnknownUsers
	}

	requested := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}
	for _, u := range users {
		if _, ok := requested[u.ID]; !ok {
			return nil, ErrUnknownUsers
		}
		delete(requested, u.ID)
	}
	return users, nil
}
