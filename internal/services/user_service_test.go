package services

import (
	"testing"

	"task-planner-api/internal/apperrors"
	"task-planner-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user, err := RegisterUser(db, "alice", "alice@test.com", "testpassword")
	require.NoError(t, err)
	require.NotEqual(t, "testpassword", user.Password)

	got, err := AuthenticateUser(db, "alice@test.com", "testpassword")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	_, err = RegisterUser(db, "alice", "alice@test.com", "testpassword")
	require.NoError(t, err)

	_, err = RegisterUser(db, "alice2", "alice@test.com", "otherpassword")
	require.Error(t, err)
	require.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
}

func TestAuthenticateUser_WrongPassword(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	_, err = RegisterUser(db, "alice", "alice@test.com", "testpassword")
	require.NoError(t, err)

	_, err = AuthenticateUser(db, "alice@test.com", "wrong")
	require.Error(t, err)
	require.Equal(t, apperrors.InvalidCredentials, apperrors.KindOf(err))
}

func TestAuthenticateUser_UnknownEmailSameError(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	_, err = AuthenticateUser(db, "nobody@test.com", "whatever")
	require.Error(t, err)
	require.Equal(t, apperrors.InvalidCredentials, apperrors.KindOf(err))
}

func TestProjectAccessViaGrant(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	alice, err := RegisterUser(db, "alice", "alice@test.com", "testpassword")
	require.NoError(t, err)
	bob, err := RegisterUser(db, "bob", "bob@test.com", "testpassword")
	require.NoError(t, err)

	project, err := CreateProject(db, "test project", "description", alice.ID)
	require.NoError(t, err)
	task, err := CreateTask(db, "task", 100, project.ID, alice.ID, "title", nil)
	require.NoError(t, err)

	// Before the grant bob sees nothing.
	_, err = GetProjectByID(db, project.ID, bob.ID)
	require.Error(t, err)
	require.Equal(t, apperrors.PermissionDenied, apperrors.KindOf(err))

	require.NoError(t, GrantTaskAccess(db, task.ID, alice.ID, bob.ID))

	got, err := GetProjectByID(db, project.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, project.ID, got.ID)
}

func TestDeleteProject_Cascades(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	alice, err := RegisterUser(db, "alice", "alice@test.com", "testpassword")
	require.NoError(t, err)

	project, err := CreateProject(db, "test project", "description", alice.ID)
	require.NoError(t, err)
	task, err := CreateTask(db, "task", 100, project.ID, alice.ID, "title", nil)
	require.NoError(t, err)
	_, err = CreateSubTask(db, alice.ID, CreateSubTaskInput{TaskID: task.ID, Title: "sub"})
	require.NoError(t, err)

	require.NoError(t, DeleteProject(db, project.ID, alice.ID))

	tasks, err := ListTasks(db, alice.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)
	subtasks, err := ListSubTasks(db, alice.ID)
	require.NoError(t, err)
	require.Empty(t, subtasks)
}
