package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowerhq/flower-api/internal/dto"
	apierrors "github.com/flowerhq/flower-api/internal/errors"
	"github.com/flowerhq/flower-api/internal/models"
)

func TestGroupHandler_AddGroup_CreatesOwnerMembership(t *testing.T) {
	env := setupTestEnv(t)
	env.seedGroup(t, "alice", "flower dev")

	groupID := env.groupID(t, "flower dev")

	var member models.GroupMember
	require.NoError(t, env.db.Where("group_id = ?", groupID).First(&member).Error)
	require.True(t, member.Writeable)

	var group models.Group
	require.NoError(t, env.db.First(&group, "group_id = ?", groupID).Error)
	require.Equal(t, member.UserID, group.OwnerUserID)
}

func TestGroupHandler_AddGroup_RequiresSession(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api-group-selection/add-group", map[string]any{
		"group_name": "nope",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response apierrors.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Session ID not found", response.Message)
}

func TestGroupHandler_ListGroups(t *testing.T) {
	env := setupTestEnv(t)
	cookie := env.seedGroup(t, "alice", "flower dev")

	w := env.do(t, http.MethodPost, "/api-group-selection/group-list", map[string]any{}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.GroupListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Groups, 1)
	require.Equal(t, "flower dev", response.Groups[0].GroupName)
	require.Equal(t, "alice", response.Groups[0].OwnerUsername)
	require.True(t, response.Groups[0].Writeable)
}

func TestGroupHandler_ListGroups_IncludesMemberships(t *testing.T) {
	env := setupTestEnv(t)
	ownerCookie := env.seedGroup(t, "alice", "flower dev")
	env.registerUser(t, "bob")

	w := env.do(t, http.MethodPost, "/api-group-view/add-worker", map[string]any{
		"owner_user_name":  "alice",
		"group_name":       "flower dev",
		"worker_user_name": "bob",
	}, ownerCookie)
	require.Equal(t, http.StatusOK, w.Code)

	bobCookie := env.loginUser(t, "bob")
	w = env.do(t, http.MethodPost, "/api-group-selection/group-list", map[string]any{}, bobCookie)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.GroupListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Groups, 1)
	require.Equal(t, "alice", response.Groups[0].OwnerUsername)
	require.False(t, response.Groups[0].Writeable)
}

func TestGroupHandler_UpdateGroup_Rename(t *testing.T) {
	env := setupTestEnv(t)
	cookie := env.seedGroup(t, "alice", "old name")

	w := env.do(t, http.MethodPost, "/api-group-selection/update-group", map[string]any{
		"group_name":     "old name",
		"new_group_name": "new name",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var response apierrors.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Group name updated successfully", response.Message)

	require.EqualValues(t, 0, env.countRows(t, &models.Group{}, "group_name = ?", "old name"))
	require.EqualValues(t, 1, env.countRows(t, &models.Group{}, "group_name = ?", "new name"))
}

func TestGroupHandler_UpdateGroup_EmptyNameKeepsCurrent(t *testing.T) {
	env := setupTestEnv(t)
	cookie := env.seedGroup(t, "alice", "steady")

	w := env.do(t, http.MethodPost, "/api-group-selection/update-group", map[string]any{
		"group_name":     "steady",
		"new_group_name": "",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var response apierrors.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Group name maintained successfully", response.Message)

	require.EqualValues(t, 1, env.countRows(t, &models.Group{}, "group_name = ?", "steady"))
}

func TestGroupHandler_UpdateGroup_NotOwner(t *testing.T) {
	env := setupTestEnv(t)
	env.seedGroup(t, "alice", "alice group")
	env.registerUser(t, "mallory")
	malloryCookie := env.loginUser(t, "mallory")

	w := env.do(t, http.MethodPost, "/api-group-selection/update-group", map[string]any{
		"group_name":     "alice group",
		"new_group_name": "stolen",
	}, malloryCookie)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.EqualValues(t, 1, env.countRows(t, &models.Group{}, "group_name = ?", "alice group"))
}

func TestGroupHandler_DeleteGroup_CascadeRemovesEverything(t *testing.T) {
	env := setupTestEnv(t)
	cookie := env.seedGroup(t, "alice", "doomed")
	env.registerUser(t, "bob")

	groupID := env.groupID(t, "doomed")

	w := env.do(t, http.MethodPost, "/api-group-view/add-worker", map[string]any{
		"owner_user_name":  "alice",
		"group_name":       "doomed",
		"worker_user_name": "bob",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	tag := models.Tag{GroupID: groupID, TagName: "urgent", TagColor: "#ff0000"}
	require.NoError(t, env.db.Create(&tag).Error)

	project := models.Project{GroupID: groupID, ProjectName: "backend", ProjectDescription: "api work"}
	require.NoError(t, env.db.Create(&project).Error)
	require.NoError(t, env.db.Create(&models.TagProjectMapping{TagID: tag.TagID, ProjectID: project.ProjectID}).Error)

	var owner models.User
	require.NoError(t, env.db.Where("user_name = ?", "alice").First(&owner).Error)
	task := models.Task{
		ProjectID:    project.ProjectID,
		WorkerUserID: owner.UserID,
		Title:        "write handler",
		StartTime:    taskTime(t, "2026-09-01 09:00:00"),
		EndTime:      taskTime(t, "2026-09-01 17:00:00"),
	}
	require.NoError(t, env.db.Create(&task).Error)

	w = env.do(t, http.MethodPost, "/api-group-selection/delete-group", map[string]any{
		"group_name": "doomed",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	require.EqualValues(t, 0, env.countRows(t, &models.Task{}, "project_id = ?", project.ProjectID))
	require.EqualValues(t, 0, env.countRows(t, &models.TagProjectMapping{}, "project_id = ?", project.ProjectID))
	require.EqualValues(t, 0, env.countRows(t, &models.Project{}, "group_id = ?", groupID))
	require.EqualValues(t, 0, env.countRows(t, &models.Tag{}, "group_id = ?", groupID))
	require.EqualValues(t, 0, env.countRows(t, &models.GroupMember{}, "group_id = ?", groupID))
	require.EqualValues(t, 0, env.countRows(t, &models.Group{}, "group_id = ?", groupID))

	// the users themselves survive the cascade
	require.EqualValues(t, 2, env.countRows(t, &models.User{}, "1 = 1"))
}
