package handlers

import (
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	handler := NewHandler(&stubProvider{}, zerolog.Nop())

	router := chi.NewRouter()

	assert.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	})
	assert.True(t, router.Match(chi.NewRouteContext(), "GET", "/summary"))
}
