package handler

import (
	"Fundoo/config"
	"Fundoo/dao"
	"Fundoo/dao/cache"
	"Fundoo/middleware"
	"Fundoo/pkg/client"
	"Fundoo/pkg/database"
	"Fundoo/scheduler"
	"Fundoo/service"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// tokenAuthenticator token 即 "user-{id}"
type tokenAuthenticator struct{}

func (tokenAuthenticator) Authenticate(_ context.Context, token string) (*client.DirectoryUser, error) {
	var id uint64
	if _, err := fmt.Sscanf(token, "user-%d", &id); err != nil || id == 0 {
		return nil, errors.New("invalid token")
	}
	return &client.DirectoryUser{ID: id, Email: fmt.Sprintf("user%d@x.io", id)}, nil
}

func (tokenAuthenticator) Mode() string { return "test" }

type testServer struct {
	engine    *gin.Engine
	mr        *miniredis.Miniredis
	scheduler *scheduler.Scheduler
}

// newTestServer 用户目录中存在 1..5 号用户
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	directory := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		users := make([]map[string]any, 0)
		for _, raw := range r.URL.Query()["user_ids"] {
			var id uint64
			if _, err := fmt.Sscanf(raw, "%d", &id); err == nil && id >= 1 && id <= 5 {
				users = append(users, map[string]any{"id": id, "email": fmt.Sprintf("user%d@x.io", id)})
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": users})
	}))
	t.Cleanup(directory.Close)

	conf, err := config.Parse([]byte(fmt.Sprintf("user_service:\n  endpoint: %s\n", directory.URL)))
	require.NoError(t, err)

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })

	sched := scheduler.NewScheduler(conf, dao.NewReminderJobDAO(db), scheduler.LogDispatcher{})

	noteDAO := dao.NewNoteDAO(db)
	labelDAO := dao.NewLabelDAO(db)
	notes := &service.NoteService{
		Config:    conf,
		NoteDAO:   noteDAO,
		LabelDAO:  labelDAO,
		Cache:     cache.NewNoteStorage(rds),
		Validator: &service.CollaboratorValidator{Directory: client.NewUserClient(conf)},
		Scheduler: sched,
	}
	labels := &service.LabelService{LabelDAO: labelDAO, NoteDAO: noteDAO, NoteService: notes}

	require.NoError(t, middleware.RegisterValidators())
	r := gin.New()
	(&Note{NoteService: notes, Authenticator: tokenAuthenticator{}}).RegisterRouter(r)
	(&Label{LabelService: labels, Authenticator: tokenAuthenticator{}}).RegisterRouter(r)

	return &testServer{engine: r, mr: mr, scheduler: sched}
}

type envelope struct {
	Message string          `json:"message"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, uid uint64, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if uid != 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer user-%d", uid))
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

// createNote 创建笔记并返回 ID
func (s *testServer) createNote(t *testing.T, uid uint64, title string) uint64 {
	t.Helper()
	code, env := s.do(t, uid, http.MethodPost, "/notes/", map[string]any{"title": title})
	require.Equal(t, http.StatusCreated, code, env.Message)

	var note struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &note))
	return note.ID
}

func (s *testServer) createLabel(t *testing.T, uid uint64, name string) uint64 {
	t.Helper()
	code, env := s.do(t, uid, http.MethodPost, "/labels/", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, code, env.Message)

	var label struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &label))
	return label.ID
}
