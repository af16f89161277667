package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-management-api/internal/adapter/db/postgres"
	"user-management-api/internal/adapter/gin/handler"
	"user-management-api/internal/adapter/gin/router"
	"user-management-api/internal/usecase/user"
)

// Stack is the full HTTP stack over a temporary SQLite store.
type Stack struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// NewStack wires repository, usecase, handler and router the way the
// api binary does, without Redis.
func NewStack(t testing.TB, opts router.Options) *Stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	db := NewSQLiteDB(t)

	uc := user.New(postgres.NewUserRepoPG(db, log), log)
	r, err := router.SetupRouter(opts, router.Deps{
		UserHandler: handler.NewUserHandler(uc, log),
		DB:          db,
	}, log)
	require.NoError(t, err)

	return &Stack{DB: db, Router: r}
}

// NewServer starts an httptest.Server in front of a fresh stack.
func NewServer(t testing.TB) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(NewStack(t, router.Options{
		ServiceName:    "user-management-api",
		AllowedOrigins: []string{"*"},
	}).Router)
	t.Cleanup(srv.Close)
	return srv
}
