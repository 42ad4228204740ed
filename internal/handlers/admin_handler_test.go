package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/pointboard/internal/logging"
	"github.com/arzan03/pointboard/internal/models"
	"github.com/arzan03/pointboard/internal/repository"
)

type stubDirectory struct {
	find func(ctx context.Context, id string) (*models.User, error)
	list func(ctx context.Context) ([]models.User, error)
}

func (d stubDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	return d.find(ctx, id)
}

func (d stubDirectory) List(ctx context.Context) ([]models.User, error) {
	return d.list(ctx)
}

func TestAdminHandler_GetUserByID(t *testing.T) {
	id := primitive.NewObjectID()
	find := func(_ context.Context, raw string) (*models.User, error) {
		switch raw {
		case id.Hex():
			return &models.User{ID: id, Username: "alice", Password: "hash", UserRole: models.RoleUser}, nil
		case "broken":
			return nil, errors.New("boom")
		case "bad":
			return nil, repository.ErrInvalidID
		}
		return nil, repository.ErrUserNotFound
	}

	app := fiber.New()
	NewAdminHandler(stubDirectory{find: find}, logging.Discard()).Register(app.Group("/admin"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/users/"+id.Hex(), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "hash")

	var env struct {
		Body models.User `json:"body"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, "alice", env.Body.Username)

	for path, status := range map[string]int{
		"/admin/users/" + primitive.NewObjectID().Hex(): http.StatusNotFound,
		"/admin/users/bad":    http.StatusNotFound,
		"/admin/users/broken": http.StatusInternalServerError,
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, path)
	}
}

func TestAdminHandler_ListUsers(t *testing.T) {
	users := []models.User{
		{ID: primitive.NewObjectID(), Username: "alice", Password: "hash-a", Points: 12.5, UserRole: models.RoleUser},
		{ID: primitive.NewObjectID(), Username: "root", Password: "hash-r", UserRole: models.RoleAdmin},
	}
	var listErr error
	dir := stubDirectory{list: func(context.Context) ([]models.User, error) {
		if listErr != nil {
			return nil, listErr
		}
		return users, nil
	}}

	app := fiber.New()
	NewAdminHandler(dir, logging.Discard()).Register(app.Group("/admin"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "hash-")

	var env struct {
		Body []models.User `json:"body"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Len(t, env.Body, 2)
	assert.Equal(t, "alice", env.Body[0].Username)
	assert.Equal(t, 12.5, env.Body[0].Points)
	assert.Equal(t, models.RoleAdmin, env.Body[1].UserRole)

	listErr = errors.New("boom")
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
