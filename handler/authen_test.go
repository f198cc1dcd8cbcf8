package handler_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"travel_manager/constants"
	"travel_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndRefreshRotation(t *testing.T) {
	env := newEnv(t)
	env.account("sales.one", constants.ROLE_SALES, "secret123")

	res := env.do("POST", "/api/v1/auth/login", map[string]string{"username": "sales.one", "password": "nope"}, "")
	assert.Equal(t, 401, res.status)

	res = env.do("POST", "/api/v1/auth/login", map[string]string{"username": "sales.one", "password": "secret123"}, "")
	require.Equal(t, 200, res.status)
	access, _ := res.body["accessToken"].(string)
	require.NotEmpty(t, access)
	assert.Equal(t, "SALES", res.body["account"].(map[string]any)["role"])

	var stored model.Account
	require.NoError(t, env.db.Where("username = ?", "sales.one").First(&stored).Error)
	require.NotEmpty(t, stored.RefreshToken)
	first := stored.RefreshToken

	res = env.do("POST", "/api/v1/auth/refresh-token", map[string]string{"refreshToken": first}, "")
	require.Equal(t, 200, res.status)

	res = env.do("POST", "/api/v1/auth/refresh-token", map[string]string{"refreshToken": first}, "")
	assert.Equal(t, 401, res.status, "rotated refresh token must be rejected")

	res = env.do("GET", "/api/v1/account/me", nil, access)
	assert.Equal(t, 200, res.status)
	assert.Equal(t, "sales.one", res.data()["username"])
}

func TestLoginSetsCookies(t *testing.T) {
	env := newEnv(t)
	env.account("ops", constants.ROLE_MANAGER, "secret123")

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"username":"ops","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	names := map[string]bool{}
	for _, c := range resp.Cookies() {
		names[c.Name] = c.HttpOnly
	}
	assert.True(t, names["access_token"])
	assert.True(t, names["refresh_token"])
}

func TestInactiveAccountCannotLogin(t *testing.T) {
	env := newEnv(t)
	a := env.account("gone", constants.ROLE_SALES, "secret123")
	env.db.Model(&a).Update("active", false)

	res := env.do("POST", "/api/v1/auth/login", map[string]string{"username": "gone", "password": "secret123"}, "")
	assert.Equal(t, 403, res.status)
}

func TestAccountManagementRequiresAdmin(t *testing.T) {
	env := newEnv(t)
	sales := env.staff(constants.ROLE_SALES)
	admin := env.admin()

	body := map[string]string{"username": "new.acc", "password": "secret123", "role": "ACCOUNTANT"}
	assert.Equal(t, 401, env.do("POST", "/api/v1/account", body, "").status)
	assert.Equal(t, 403, env.do("POST", "/api/v1/account", body, sales).status)

	res := env.do("POST", "/api/v1/account", body, admin)
	require.Equal(t, 201, res.status)
	created := id(res.data()["id"])

	res = env.do("POST", "/api/v1/account", body, admin)
	assert.Equal(t, 409, res.status)
	assert.Equal(t, "username", res.body["keyError"])

	res = env.do("PATCH", "/api/v1/account/"+itoa(created)+"/active", map[string]bool{"active": false}, admin)
	require.Equal(t, 200, res.status)
	assert.Equal(t, false, res.data()["active"])

	// mọi nhân viên vẫn xem được /me dù không phải admin
	assert.Equal(t, 200, env.do("GET", "/api/v1/account/me", nil, sales).status)
}

func TestChangeOwnPassword(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_ACCOUNTANT)

	res := env.do("POST", "/api/v1/account/me/change-password", map[string]string{
		"currentPassword": "wrong", "newPassword": "another1", "repeatPassword": "another1",
	}, token)
	assert.Equal(t, 400, res.status)
	assert.Equal(t, "currentPassword", res.body["keyError"])

	res = env.do("POST", "/api/v1/account/me/change-password", map[string]string{
		"currentPassword": "secret123", "newPassword": "another1", "repeatPassword": "another1",
	}, token)
	assert.Equal(t, 200, res.status)
}
