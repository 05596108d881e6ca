package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	t.Run("creates account", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/v1/signup", "", map[string]string{
			"email":     "new@x.com",
			"password":  "secret1",
			"firstName": "Ada",
			"lastName":  "Lovelace",
		})

		assert.Equal(t, http.StatusCreated, rr.Code)

		var res struct {
			Message string `json:"message"`
			User    struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			} `json:"user"`
		}
		decode(t, rr, &res)
		assert.NotEmpty(t, res.User.ID)
		assert.Equal(t, "new@x.com", res.User.Email)
		// The password hash must never appear in a response.
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		body := map[string]string{"email": "dup@x.com", "password": "secret1"}

		rr := env.do(t, http.MethodPost, "/api/v1/signup", "", body)
		assert.Equal(t, http.StatusCreated, rr.Code)

		rr = env.do(t, http.MethodPost, "/api/v1/signup", "", body)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/v1/signup", "", map[string]string{
			"email":    "not-an-email",
			"password": "secret1",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/v1/signup", "", map[string]string{
			"email":    "short@x.com",
			"password": "abc",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		req := env.do(t, http.MethodPost, "/api/v1/signup", "", "not an object")
		assert.Equal(t, http.StatusBadRequest, req.Code)
	})
}

func TestSignin(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "user@x.com", "secret1")

	t.Run("valid credentials return a token", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/v1/signin", "", map[string]string{
			"email":    "user@x.com",
			"password": "secret1",
		})

		assert.Equal(t, http.StatusOK, rr.Code)

		var res map[string]string
		decode(t, rr, &res)
		assert.NotEmpty(t, res["token"])
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPassword := env.do(t, http.MethodPost, "/api/v1/signin", "", map[string]string{
			"email":    "user@x.com",
			"password": "wrong",
		})
		unknownEmail := env.do(t, http.MethodPost, "/api/v1/signin", "", map[string]string{
			"email":    "nobody@x.com",
			"password": "secret1",
		})

		assert.Equal(t, http.StatusForbidden, wrongPassword.Code)
		assert.Equal(t, http.StatusForbidden, unknownEmail.Code)
		// Same status AND same body — no credential oracle.
		assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "profile@x.com", "secret1")

	t.Run("requires a token", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/user/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects a bad token", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/user/profile", "not.a.token", nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("returns the account", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/v1/user/profile", token, nil)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res struct {
			User struct {
				Email     string `json:"email"`
				FirstName string `json:"firstName"`
			} `json:"user"`
		}
		decode(t, rr, &res)
		assert.Equal(t, "profile@x.com", res.User.Email)
		assert.Equal(t, "Test", res.User.FirstName)
	})

	t.Run("update changes the display name", func(t *testing.T) {
		rr := env.do(t, http.MethodPut, "/api/v1/user/profile", token, map[string]string{
			"firstName": "Grace",
			"lastName":  "Hopper",
		})

		assert.Equal(t, http.StatusOK, rr.Code)

		var res struct {
			User struct {
				FirstName string `json:"firstName"`
				LastName  string `json:"lastName"`
			} `json:"user"`
		}
		decode(t, rr, &res)
		assert.Equal(t, "Grace", res.User.FirstName)
		assert.Equal(t, "Hopper", res.User.LastName)
	})
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "rotate@x.com", "oldpassword")

	t.Run("wrong current password is forbidden", func(t *testing.T) {
		rr := env.do(t, http.MethodPut, "/api/v1/user/password", token, map[string]string{
			"currentPassword": "guessed",
			"newPassword":     "newpassword",
		})
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("rotation takes effect at signin", func(t *testing.T) {
		rr := env.do(t, http.MethodPut, "/api/v1/user/password", token, map[string]string{
			"currentPassword": "oldpassword",
			"newPassword":     "newpassword",
		})
		assert.Equal(t, http.StatusOK, rr.Code)

		old := env.do(t, http.MethodPost, "/api/v1/signin", "", map[string]string{
			"email":    "rotate@x.com",
			"password": "oldpassword",
		})
		assert.Equal(t, http.StatusForbidden, old.Code)

		fresh := env.do(t, http.MethodPost, "/api/v1/signin", "", map[string]string{
			"email":    "rotate@x.com",
			"password": "newpassword",
		})
		assert.Equal(t, http.StatusOK, fresh.Code)
	})
}
