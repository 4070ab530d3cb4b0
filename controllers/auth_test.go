package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMe(t *testing.T) {
	r, _, _ := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"email":        "nova@example.com",
		"password":     "segredo-forte",
		"name":         "Nova Profissional",
		"businessName": "Estúdio Glow",
	})
	mustStatus(t, w, http.StatusCreated)

	var registered struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &registered)
	require.NotEmpty(t, registered.Token)

	w = doRequest(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "nova@example.com",
		"password": "segredo-forte",
	})
	mustStatus(t, w, http.StatusOK)

	var logged struct {
		Token string `json:"token"`
		User  struct {
			Name         string `json:"name"`
			BusinessName string `json:"businessName"`
		} `json:"user"`
	}
	decodeBody(t, w, &logged)
	require.NotEmpty(t, logged.Token)
	assert.Equal(t, "Nova Profissional", logged.User.Name)
	assert.Equal(t, "Estúdio Glow", logged.User.BusinessName)

	w = doRequest(t, r, http.MethodGet, "/auth/me", logged.Token, nil)
	mustStatus(t, w, http.StatusOK)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, user, _ := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"email":    user.Email,
		"password": "segredo-forte",
		"name":     "Duplicada",
	})
	mustStatus(t, w, http.StatusConflict)
}

func TestLoginBadPassword(t *testing.T) {
	r, user, _ := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "senha-errada",
	})
	mustStatus(t, w, http.StatusUnauthorized)
}

func TestShortPasswordRejected(t *testing.T) {
	r, _, _ := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"email":    "curta@example.com",
		"password": "curta",
		"name":     "Curta",
	})
	mustStatus(t, w, http.StatusBadRequest)
}
