package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyI18n struct{}

func (keyI18n) T(_ string, key string, _ map[string]any) string { return key }

func setupAuth(t *testing.T) (*miniredis.Miniredis, *utils.PasetoMaker, *fiber.App) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	maker, err := utils.NewPasetoMaker(utils.GenerateSymmetricKey())
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/manager-only", AuthMiddleware(maker, rdb), RequireRoles(entity.RoleManager), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("actor_id").(string) + ":" + c.Locals("role").(string))
	})
	return mr, maker, app
}

func get(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/manager-only", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestAuthMiddleware_ManagerPasses(t *testing.T) {
	_, maker, app := setupAuth(t)
	token, err := maker.CreateToken("manager-1", entity.RoleManager, "jti-1", time.Hour)
	require.NoError(t, err)

	status, body := get(t, app, token)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "manager-1:Manager", body)
}

func TestAuthMiddleware_RejectsMissingAndMalformedHeader(t *testing.T) {
	_, _, app := setupAuth(t)

	status, body := get(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, `"type":"UNAUTHORIZED"`)

	status, _ = get(t, app, "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	mr, maker, app := setupAuth(t)
	token, err := maker.CreateToken("manager-1", entity.RoleManager, "jti-2", time.Hour)
	require.NoError(t, err)
	require.NoError(t, mr.Set(RevokedTokenKey("jti-2"), "1"))

	status, _ := get(t, app, token)

	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthMiddleware_RedisDownDoesNotLockOut(t *testing.T) {
	mr, maker, app := setupAuth(t)
	token, err := maker.CreateToken("manager-1", entity.RoleManager, "jti-3", time.Hour)
	require.NoError(t, err)
	mr.Close()

	status, _ := get(t, app, token)

	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRoles_EmployeeForbidden(t *testing.T) {
	_, maker, app := setupAuth(t)
	token, err := maker.CreateToken("employee-1", entity.RoleEmployee, "jti-4", time.Hour)
	require.NoError(t, err)

	status, _ := get(t, app, token)

	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware(keyI18n{})})
	app.Use(RequestIDMiddleware(), AcceptLanguageMiddleware())
	app.Get("/stale", func(c *fiber.Ctx) error {
		return app_errors.NewStaleWorkItem("task-1", "Cancelled")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	cases := []struct {
		path    string
		status  int
		errType string
		message string
	}{
		{"/stale", fiber.StatusConflict, app_errors.ErrStaleWorkItem, "work_item.stale"},
		{"/boom", fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error"},
		{"/nowhere", fiber.StatusNotFound, app_errors.ErrNotFound, "route.not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body struct {
				Error map[string]any `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.errType, body.Error["type"])
			assert.Equal(t, tc.message, body.Error["message"])
			assert.Equal(t, resp.Header.Get("X-Request-ID"), body.Error["request_id"])
		})
	}
}

func TestRevokedTokenKey(t *testing.T) {
	assert.Equal(t, "token:revoked:abc", RevokedTokenKey("abc"))
}

func TestErrorHandlerMiddleware_TransitionStates(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware(keyI18n{})})
	app.Get("/transition", func(c *fiber.Ctx) error {
		return app_errors.NewInvalidTransition("assignment-1", "Pending", "Confirmed", "")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/transition", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "assignment-1", body.Error["entity_id"])
	assert.Equal(t, "Pending", body.Error["current_state"])
	assert.Equal(t, "Confirmed", body.Error["requested_state"])
}

func TestMatchLanguage(t *testing.T) {
	cases := map[string]string{
		"":                        "en",
		"de-DE,de;q=0.9,en;q=0.8": "de",
		"de-CH":                   "de",
		"en-US,de;q=0.5":          "en",
		"fr-FR,fr;q=0.9":          "en",
		";;;":                     "en",
	}
	for header, want := range cases {
		assert.Equal(t, want, MatchLanguage(header), "header %q", header)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("request_id").(string))
	})

	cases := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated", "", false},
		{"forwarded", "gateway-42", true},
		{"too long", strings.Repeat("x", maxRequestIDLength+1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set(fiber.HeaderXRequestID, tc.incoming)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			id := resp.Header.Get(fiber.HeaderXRequestID)
			assert.Equal(t, id, string(raw))
			if tc.keep {
				assert.Equal(t, tc.incoming, id)
			} else {
				assert.True(t, strings.HasPrefix(id, "MNT-"), id)
			}
		})
	}
}
