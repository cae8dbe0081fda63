package usuariosapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/token", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@example.com", body["email"])
		_, _ = w.Write([]byte(`{"token":"tok-123"}`))
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL).Login(context.Background(), "admin@example.com", "secreto", "web")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "x@x.com", "mal", "web")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
}

func TestMeMandaBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":7,"name":"Admin","email":"admin@example.com"}`))
	}))
	defer srv.Close()

	u, err := NewClient(srv.URL).Me(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
}

func TestRolesEnProyecto(t *testing.T) {
	u := &Usuario{
		Proyectos: []Proyecto{
			{Clave: "otro", Roles: []Rol{{Clave: "admin"}}},
			{Clave: "talleres", Roles: []Rol{{Clave: "Organizador"}, {Clave: "docente"}}},
		},
	}

	assert.Equal(t, []string{"organizador", "docente"}, u.RolesEnProyecto("talleres"))
	assert.Nil(t, u.RolesEnProyecto("inexistente"))
}

func TestGetProjectUsersPaginado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/project/3/users", r.URL.Path)
		assert.Equal(t, "juan", r.URL.Query().Get("busqueda"))
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Juan"},{"id":2,"name":"Juana"}]}`))
	}))
	defer srv.Close()

	params := url.Values{}
	params.Set("busqueda", "juan")
	usuarios, err := NewClient(srv.URL).GetProjectUsers(context.Background(), "tok", 3, params)
	require.NoError(t, err)
	require.Len(t, usuarios, 2)
	assert.Equal(t, "Juan", usuarios[0].Name)
}

func TestGetProjectUsersListaPlana(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Juan"}]`))
	}))
	defer srv.Close()

	usuarios, err := NewClient(srv.URL).GetProjectUsers(context.Background(), "tok", 3, nil)
	require.NoError(t, err)
	require.Len(t, usuarios, 1)
}

func TestCreateUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user", r.URL.Path)
		var in CrearUsuario
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []int64{5}, in.Roles)
		_, _ = w.Write([]byte(`{"id":42,"name":"Nuevo"}`))
	}))
	defer srv.Close()

	u, err := NewClient(srv.URL).CreateUser(context.Background(), "tok", CrearUsuario{
		Name:      "Nuevo",
		Email:     "nuevo@example.com",
		Roles:     []int64{5},
		Proyectos: []int64{3},
		Activo:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
}

func TestPatchUserPropagaErrores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"inválido","errors":{"email":["ya existe"]}}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PatchUser(context.Background(), "tok", 7, map[string]any{"email": "dup@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya existe")
}
