package client

import (
	"Fundoo/config"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrInvalidUser = errors.New("invalid user")

// DirectoryUser 用户目录返回的用户信息
type DirectoryUser struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// UserClient 用户服务 HTTP 客户端
// GET {endpoint}/user/{token}      -> {"data": {"id": 1, "email": "..."}}
// GET {endpoint}/users?user_ids=.. -> {"data": [{"id": 2, "email": "..."}]}
type UserClient struct {
	endpoint string
	http     *http.Client
}

func NewUserClient(conf *config.Config) *UserClient {
	return &UserClient{
		endpoint: strings.TrimRight(conf.UserService.Endpoint, "/"),
		http:     &http.Client{Timeout: conf.UserService.Timeout()},
	}
}

// Authenticate 通过 token 解析当前用户
func (u *UserClient) Authenticate(ctx context.Context, token string) (*DirectoryUser, error) {
	body, status, err := u.get(ctx, "/user/"+url.PathEscape(token))
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest {
		return nil, ErrInvalidUser
	}

	data := gjson.GetBytes(body, "data")
	user := &DirectoryUser{
		ID:    data.Get("id").Uint(),
		Email: data.Get("email").String(),
	}
	if user.ID == 0 {
		return nil, ErrInvalidUser
	}
	return user, nil
}

// FindUsers 批量查询用户，不存在的 ID 不会出现在结果中
func (u *UserClient) FindUsers(ctx context.Context, ids []uint64) ([]DirectoryUser, error) {
	q := url.Values{}
	for _, id := range ids {
		q.Add("user_ids", strconv.FormatUint(id, 10))
	}

	body, status, err := u.get(ctx, "/users?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return []DirectoryUser{}, nil
	}
	if status >= http.StatusBadRequest {
		return nil, fmt.Errorf("user service responded %d", status)
	}

	users := make([]DirectoryUser, 0, len(ids))
	gjson.GetBytes(body, "data").ForEach(func(_, item gjson.Result) bool {
		if id := item.Get("id").Uint(); id > 0 {
			users = append(users, DirectoryUser{ID: id, Email: item.Get("email").String()})
		}
		return true
	})
	return users, nil
}

func (u *UserClient) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.endpoint+path, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := u.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("call user service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
