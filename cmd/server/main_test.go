package main

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casahub/backend/internal/handlers"
)

func testHandlers() apiHandlers {
	return apiHandlers{
		auth:            handlers.NewAuthHandler(nil),
		users:           handlers.NewUserHandler(nil, nil, nil),
		projects:        handlers.NewProjectHandler(nil, nil, nil),
		posts:           handlers.NewPostHandler(nil, nil, nil),
		products:        handlers.NewProductHandler(nil),
		search:          handlers.NewSearchHandler(nil),
		orders:          handlers.NewOrderHandler(nil, nil),
		subscriptions:   handlers.NewSubscriptionHandler(nil),
		instantServices: handlers.NewInstantServiceHandler(nil),
		enquiries:       handlers.NewEnquiryHandler(nil, nil),
	}
}

func TestRouterRegistersModerationRoutes(t *testing.T) {
	r := newRouter("test-secret", nil, testHandlers())

	routes := make(map[string]bool)
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	t.Run("flagging is open to every logged-in user", func(t *testing.T) {
		assert.True(t, routes["POST /api/users/{userId}/flag"])
		assert.True(t, routes["POST /api/projects/{projectId}/flag"])
		assert.True(t, routes["POST /api/posts/{postId}/flag"])
	})

	t.Run("admins can clear flags on every flaggable collection", func(t *testing.T) {
		assert.True(t, routes["POST /api/admin/flagged-posts"])
		assert.True(t, routes["POST /api/admin/users/{userId}/clear-flags"])
		assert.True(t, routes["POST /api/admin/projects/{projectId}/clear-flags"])
	})

	t.Run("moderation queue is registered", func(t *testing.T) {
		assert.True(t, routes["GET /api/admin/flagged-posts"])
	})
}
