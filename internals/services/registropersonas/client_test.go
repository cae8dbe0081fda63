package registropersonas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPersonaEncontrada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/personas/41234567", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"persona": map[string]any{
				"ci":       "41234567",
				"nombre":   "Juan",
				"apellido": "Pérez",
				"telefono": "099123456",
			},
		})
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL).GetPersona(context.Background(), "41234567")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Juan", p.Nombre)
	assert.Equal(t, "Pérez", p.Apellido)
}

func TestGetPersonaNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"persona":null}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL).GetPersona(context.Background(), "99999999")
	require.NoError(t, err, "persona:null no es error, es inexistente")
	assert.Nil(t, p)
}

func TestGetPersonaErrorRemoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetPersona(context.Background(), "41234567")
	assert.Error(t, err)
}

func TestUpdateOrCreatePersona(t *testing.T) {
	var recibido PersonaInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/personas/updateOrCreate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tel := "099123456"
	err := NewClient(srv.URL).UpdateOrCreatePersona(context.Background(), PersonaInput{
		CI:       "41234567",
		Nombre:   "Juan",
		Apellido: "Pérez",
		Telefono: &tel,
	})
	require.NoError(t, err)
	assert.Equal(t, "41234567", recibido.CI)
	require.NotNil(t, recibido.Telefono)
	assert.Equal(t, tel, *recibido.Telefono)
}

func TestUpdateOrCreatePersonaPropagaMensajeRemoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"La cédula no es válida"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UpdateOrCreatePersona(context.Background(), PersonaInput{CI: "0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "La cédula no es válida")
}

func TestGetCiudades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ciudades", r.URL.Path)
		_, _ = w.Write([]byte(`{"ciudades":[{"id":1,"nombre":"Montevideo"},{"id":2,"nombre":"Canelones"}]}`))
	}))
	defer srv.Close()

	ciudades, err := NewClient(srv.URL).GetCiudades(context.Background())
	require.NoError(t, err)
	require.Len(t, ciudades, 2)
	assert.Equal(t, "Montevideo", ciudades[0].Nombre)
}

func TestPunterosNilSafe(t *testing.T) {
	var p *Persona
	assert.Nil(t, p.NombrePtr())

	p = &Persona{Nombre: "Juan", Telefono: ""}
	require.NotNil(t, p.NombrePtr())
	assert.Equal(t, "Juan", *p.NombrePtr())
	assert.Nil(t, p.TelefonoPtr(), "campo vacío se expone como nil")
}
