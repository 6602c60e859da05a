package cache

import (
	"Fundoo/types"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// warmField 桶已从数据库完整加载的标记
const warmField = "_warm"

// NoteStorage 按用户分桶的笔记快照缓存
// user_{uid} -> note_{id} -> NoteSnapshot JSON
type NoteStorage struct {
	redis *redis.Client
}

func NewNoteStorage(rds *redis.Client) *NoteStorage {
	return &NoteStorage{rds}
}

// Set 将快照写入所有可见用户的桶
func (n *NoteStorage) Set(ctx context.Context, note *types.NoteSnapshot, viewers ...uint64) error {
	if len(viewers) == 0 {
		return nil
	}
	text, err := json.Marshal(note)
	if err != nil {
		return err
	}

	pipe := n.redis.Pipeline()
	field := n.field(note.ID)
	for _, uid := range viewers {
		pipe.HSet(ctx, n.bucket(uid), field, text)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Remove 从指定用户的桶中删除笔记
func (n *NoteStorage) Remove(ctx context.Context, noteID uint64, viewers ...uint64) error {
	if len(viewers) == 0 {
		return nil
	}

	pipe := n.redis.Pipeline()
	field := n.field(noteID)
	for _, uid := range viewers {
		pipe.HDel(ctx, n.bucket(uid), field)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Get 读取单条快照，不存在返回 nil
func (n *NoteStorage) Get(ctx context.Context, uid, noteID uint64) (*types.NoteSnapshot, error) {
	res, err := n.redis.HGet(ctx, n.bucket(uid), n.field(noteID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	note := &types.NoteSnapshot{}
	if err := json.Unmarshal([]byte(res), note); err != nil {
		return nil, fmt.Errorf("decode note %d: %w", noteID, err)
	}
	return note, nil
}

// GetAll 读取整个桶，warm 为 false 表示桶未完整加载，调用方应回源
func (n *NoteStorage) GetAll(ctx context.Context, uid uint64) (notes []*types.NoteSnapshot, warm bool, err error) {
	items, err := n.redis.HGetAll(ctx, n.bucket(uid)).Result()
	if err != nil {
		return nil, false, err
	}
	if _, ok := items[warmField]; !ok {
		return nil, false, nil
	}

	notes = make([]*types.NoteSnapshot, 0, len(items))
	for field, val := range items {
		if !strings.HasPrefix(field, "note_") {
			continue
		}
		note := &types.NoteSnapshot{}
		if err := json.Unmarshal([]byte(val), note); err != nil {
			return nil, false, fmt.Errorf("decode %s: %w", field, err)
		}
		notes = append(notes, note)
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, true, nil
}

// Warm 批量写入用户可见的全部笔记并打上完整标记
func (n *NoteStorage) Warm(ctx context.Context, uid uint64, notes []*types.NoteSnapshot) error {
	values := make(map[string]any, len(notes)+1)
	for _, note := range notes {
		text, err := json.Marshal(note)
		if err != nil {
			return err
		}
		values[n.field(note.ID)] = text
	}
	values[warmField] = "1"

	return n.redis.HSet(ctx, n.bucket(uid), values).Err()
}

// Invalidate 清空用户的桶
func (n *NoteStorage) Invalidate(ctx context.Context, uid uint64) error {
	return n.redis.Del(ctx, n.bucket(uid)).Err()
}

func (n *NoteStorage) bucket(uid uint64) string {
	return "user_" + strconv.FormatUint(uid, 10)
}

func (n *NoteStorage) field(noteID uint64) string {
	return "note_" + strconv.FormatUint(noteID, 10)
}
