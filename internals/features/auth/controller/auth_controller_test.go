package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talleres_backend/internals/services/usuariosapi"
)

// servidorUsuarios simula la API de usuarios y captura el device_name del
// pedido de token.
func servidorUsuarios(t *testing.T, deviceName *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*deviceName, _ = body["device_name"].(string)
			_, _ = w.Write([]byte(`{"token":"tok-123"}`))
		case "/api/user":
			_, _ = w.Write([]byte(`{"id":7,"name":"Admin","proyectos":[{"clave":"talleres","roles":[{"clave":"admin"}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func appLogin(usuarios *usuariosapi.Client) *fiber.App {
	app := fiber.New()
	ctl := NewAuthController(usuarios, "talleres")
	app.Post("/auth/login", ctl.Login)
	return app
}

func TestLoginDeviceNameDesdeUserAgent(t *testing.T) {
	var deviceName string
	srv := servidorUsuarios(t, &deviceName)
	defer srv.Close()

	app := appLogin(usuariosapi.NewClient(srv.URL))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secreto"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux)")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Mozilla/5.0 (X11; Linux)", deviceName)
}

func TestLoginDeviceNameExplicitoGana(t *testing.T) {
	var deviceName string
	srv := servidorUsuarios(t, &deviceName)
	defer srv.Close()

	app := appLogin(usuariosapi.NewClient(srv.URL))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secreto","device_name":"app-movil"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "app-movil", deviceName)
}

func TestLoginDeviceNameFallbackSinUserAgent(t *testing.T) {
	var deviceName string
	srv := servidorUsuarios(t, &deviceName)
	defer srv.Close()

	app := appLogin(usuariosapi.NewClient(srv.URL))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secreto"}`))
	req.Header.Set("Content-Type", "application/json")
	// User-Agent en blanco para que net/http no meta el suyo por defecto
	req.Header.Set("User-Agent", "")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "frontend-app", deviceName)
}

func TestLoginDevuelveRolesDelProyecto(t *testing.T) {
	var deviceName string
	srv := servidorUsuarios(t, &deviceName)
	defer srv.Close()

	app := appLogin(usuariosapi.NewClient(srv.URL))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secreto"}`))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Data struct {
			Token string   `json:"token"`
			Roles []string `json:"roles"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "tok-123", body.Data.Token)
	assert.Equal(t, []string{"admin"}, body.Data.Roles)
}
