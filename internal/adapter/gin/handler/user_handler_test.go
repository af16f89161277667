package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	usecase "user-management-api/internal/usecase/user"
	pkgerrors "user-management-api/pkg/errors"
	"user-management-api/pkg/logger"
)

const testID = "3f2b8c1e-9d4a-4e6b-8f70-1a2b3c4d5e6f"

// MockUserUsecase is a mock implementation of user.UserUsecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) (*usecase.CreateUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateUserResponse), args.Error(1)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, req usecase.GetUserRequest) (*usecase.GetUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GetUserResponse), args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, req usecase.UpdateUserRequest) (*usecase.UpdateUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.UpdateUserResponse), args.Error(1)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, req usecase.DeleteUserRequest) (*usecase.DeleteUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeleteUserResponse), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context) (*usecase.ListUsersResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ListUsersResponse), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *MockUserUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockUserUsecase)
	handler := NewUserHandler(mockUsecase, zaptest.NewLogger(t))

	r := gin.New()
	r.Use(logger.RequestID())
	r.GET("/api/users", handler.ListUsers)
	r.GET("/api/users/:id", handler.GetUser)
	r.POST("/api/users", handler.CreateUser)
	r.PUT("/api/users/:id", handler.UpdateUser)
	r.DELETE("/api/users/:id", handler.DeleteUser)

	t.Cleanup(func() { mockUsecase.AssertExpectations(t) })
	return r, mockUsecase
}

func doJSON(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var p ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("ListUsers", mock.Anything).Return(&usecase.ListUsersResponse{
			Users: []usecase.User{
				{ID: testID, Name: "Alice", Email: "a@x.io"},
			},
		}, nil)

		w := doJSON(r, http.MethodGet, "/api/users", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":"`+testID+`","name":"Alice","email":"a@x.io"}]`, w.Body.String())
	})

	t.Run("Empty", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("ListUsers", mock.Anything).Return(&usecase.ListUsersResponse{Users: []usecase.User{}}, nil)

		w := doJSON(r, http.MethodGet, "/api/users", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Store Error", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("ListUsers", mock.Anything).Return(nil, errors.New("connection refused"))

		w := doJSON(r, http.MethodGet, "/api/users", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal_error","message":"An internal error occurred"}`, w.Body.String())
	})
}

func TestGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: testID}).Return(&usecase.GetUserResponse{
			User: usecase.User{ID: testID, Name: "Alice", Email: "a@x.io"},
		}, nil)

		w := doJSON(r, http.MethodGet, "/api/users/"+testID, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"`+testID+`","name":"Alice","email":"a@x.io"}`, w.Body.String())
	})

	t.Run("Not Found", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: testID}).
			Return(nil, pkgerrors.NewNotFoundError("user", testID))

		w := doJSON(r, http.MethodGet, "/api/users/"+testID, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("CreateUser", mock.Anything, usecase.CreateUserRequest{Name: "John Doe", Email: "john@example.com"}).
			Return(&usecase.CreateUserResponse{
				User: usecase.User{ID: testID, Name: "John Doe", Email: "john@example.com"},
			}, nil)

		w := doJSON(r, http.MethodPost, "/api/users", `{"name":"John Doe","email":"john@example.com"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/users/"+testID, w.Header().Get("Location"))

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, UserResponse{ID: testID, Name: "John Doe", Email: "john@example.com"}, resp)
	})

	t.Run("Missing Name", func(t *testing.T) {
		r, _ := setupTest(t)

		w := doJSON(r, http.MethodPost, "/api/users", `{"email":"a@b.c"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		p := decodeProblem(t, w)
		assert.Equal(t, problemType, p.Type)
		assert.Equal(t, problemTitle, p.Title)
		assert.Equal(t, http.StatusBadRequest, p.Status)
		assert.Equal(t, []string{"The Name field is required."}, p.Errors["Name"])
		assert.NotContains(t, p.Errors, "Email")
		assert.Equal(t, w.Header().Get(logger.RequestIDHeader), p.TraceID)
	})

	t.Run("Email Too Long", func(t *testing.T) {
		r, _ := setupTest(t)

		w := doJSON(r, http.MethodPost, "/api/users", `{"name":"A","email":"`+strings.Repeat("e", 21)+`"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		p := decodeProblem(t, w)
		assert.Equal(t, []string{"The field Email must be a string with a maximum length of 20."}, p.Errors["Email"])
	})

	t.Run("Boundary Lengths Accepted", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		name := strings.Repeat("n", 50)
		email := strings.Repeat("é", 20)
		mockUsecase.On("CreateUser", mock.Anything, usecase.CreateUserRequest{Name: name, Email: email}).
			Return(&usecase.CreateUserResponse{User: usecase.User{ID: testID, Name: name, Email: email}}, nil)

		w := doJSON(r, http.MethodPost, "/api/users", `{"name":"`+name+`","email":"`+email+`"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Whitespace Only", func(t *testing.T) {
		r, _ := setupTest(t)

		w := doJSON(r, http.MethodPost, "/api/users", `{"name":"   ","email":"a@b.c"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeProblem(t, w).Errors, "Name")
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		r, _ := setupTest(t)

		w := doJSON(r, http.MethodPost, "/api/users", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeProblem(t, w).Errors, BodyField)
	})

	t.Run("Empty Body", func(t *testing.T) {
		r, _ := setupTest(t)

		w := doJSON(r, http.MethodPost, "/api/users", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeProblem(t, w).Errors, BodyField)
	})

	t.Run("Store Error", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("CreateUser", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

		w := doJSON(r, http.MethodPost, "/api/users", `{"name":"A","email":"a@b.c"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("UpdateUser", mock.Anything, usecase.UpdateUserRequest{ID: testID, Name: "New", Email: "n@x.io"}).
			Return(&usecase.UpdateUserResponse{ID: testID}, nil)

		w := doJSON(r, http.MethodPut, "/api/users/"+testID, `{"name":"New","email":"n@x.io"}`)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Not Found", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("UpdateUser", mock.Anything, mock.Anything).Return(nil, pkgerrors.NewNotFoundError("user", testID))

		w := doJSON(r, http.MethodPut, "/api/users/"+testID, `{"name":"New","email":"n@x.io"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Validation Error", func(t *testing.T) {
		r, _ := setupTest(t)

		w := doJSON(r, http.MethodPut, "/api/users/"+testID, `{"name":"","email":""}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		p := decodeProblem(t, w)
		assert.Contains(t, p.Errors, "Name")
		assert.Contains(t, p.Errors, "Email")
	})

	t.Run("Usecase Validation Error", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("UpdateUser", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewValidationError("Name", "The Name field is required."))

		w := doJSON(r, http.MethodPut, "/api/users/"+testID, `{"name":"New","email":"n@x.io"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"The Name field is required."}, decodeProblem(t, w).Errors["Name"])
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: testID}).
			Return(&usecase.DeleteUserResponse{ID: testID}, nil)

		w := doJSON(r, http.MethodDelete, "/api/users/"+testID, "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: testID}).
			Return(nil, pkgerrors.NewNotFoundError("user", testID))

		w := doJSON(r, http.MethodDelete, "/api/users/"+testID, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Internal Error", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("DeleteUser", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewInternalError("delete failed", errors.New("locked")))

		w := doJSON(r, http.MethodDelete, "/api/users/"+testID, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal_error","message":"An internal error occurred"}`, w.Body.String())
	})
}

type statusError int

func (e statusError) Error() string { return http.StatusText(int(e)) }
func (e statusError) HTTPStatus() int { return int(e) }

func TestHandleError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"wrapped not found", fmt.Errorf("lookup: %w", pkgerrors.NewNotFoundError("user", testID)), http.StatusNotFound, ""},
		{"client status without body", statusError(http.StatusConflict), http.StatusConflict, ""},
		{"server status keeps internal body", statusError(http.StatusServiceUnavailable), http.StatusServiceUnavailable, `{"error":"internal_error","message":"An internal error occurred"}`},
		{"plain error", errors.New("disk full"), http.StatusInternalServerError, `{"error":"internal_error","message":"An internal error occurred"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mockUsecase := setupTest(t)
			mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: testID}).Return(nil, tt.err)

			w := doJSON(r, http.MethodGet, "/api/users/"+testID, "")

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody == "" {
				assert.Empty(t, w.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
