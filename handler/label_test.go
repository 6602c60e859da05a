package handler

import (
	"Fundoo/types"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelCRUD(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, 1, http.MethodGet, "/labels/", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "No labels found", env.Message)

	id := s.createLabel(t, 1, "work")
	code, _ = s.do(t, 1, http.MethodPost, "/labels/", map[string]any{"name": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, env = s.do(t, 1, http.MethodGet, "/labels/", nil)
	require.Equal(t, http.StatusOK, code)
	var labels []types.Label
	require.NoError(t, json.Unmarshal(env.Data, &labels))
	require.Len(t, labels, 1)
	assert.Equal(t, "work", labels[0].Name)

	path := fmt.Sprintf("/labels/%d", id)
	code, _ = s.do(t, 2, http.MethodPut, path, map[string]any{"name": "stolen"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(t, 1, http.MethodPut, path, map[string]any{"name": "office", "color": "grey"})
	require.Equal(t, http.StatusOK, code)
	var label types.Label
	require.NoError(t, json.Unmarshal(env.Data, &label))
	assert.Equal(t, "office", label.Name)
	assert.Equal(t, "grey", label.Color)

	code, _ = s.do(t, 2, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, env = s.do(t, 1, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Label deleted successfully", env.Message)
	code, _ = s.do(t, 1, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLabelRenameUpdatesCachedNotes(t *testing.T) {
	s := newTestServer(t)
	noteID := s.createNote(t, 1, "n")
	labelID := s.createLabel(t, 1, "draft")

	code, _ := s.do(t, 1, http.MethodPost, fmt.Sprintf("/notes/%d/add-labels/", noteID), map[string]any{"label_ids": []uint64{labelID}})
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, 1, http.MethodPut, fmt.Sprintf("/labels/%d", labelID), map[string]any{"name": "final"})
	require.Equal(t, http.StatusOK, code)

	var cached types.NoteSnapshot
	require.NoError(t, json.Unmarshal([]byte(s.mr.HGet("user_1", fmt.Sprintf("note_%d", noteID))), &cached))
	require.Len(t, cached.Labels, 1)
	assert.Equal(t, "final", cached.Labels[0].Name)
}
