package personas

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fuenteFake cuenta las llamadas por CI y devuelve lo configurado.
type fuenteFake struct {
	personas map[string]*Persona
	fallaEn  map[string]bool
	llamadas map[string]int
}

func nuevaFuenteFake() *fuenteFake {
	return &fuenteFake{
		personas: map[string]*Persona{},
		fallaEn:  map[string]bool{},
		llamadas: map[string]int{},
	}
}

func (f *fuenteFake) GetPersona(_ context.Context, ci string) (*Persona, error) {
	f.llamadas[ci]++
	if f.fallaEn[ci] {
		return nil, errors.New("registro caído")
	}
	return f.personas[ci], nil
}

type filaDocente struct {
	ci     string
	nombre *string
}

func TestEnriquecerResuelveCadaCIDistintoUnaVez(t *testing.T) {
	fuente := nuevaFuenteFake()
	fuente.personas["41234567"] = &Persona{CI: "41234567", Nombre: "Juan", Apellido: "Pérez"}
	fuente.personas["52345678"] = &Persona{CI: "52345678", Nombre: "Ana", Apellido: "Gómez"}

	r := NewResolver(fuente, NewCache(CacheTTL))

	filas := []*filaDocente{
		{ci: "41234567"},
		{ci: "52345678"},
		{ci: "41234567"}, // repetido
		{ci: ""},         // vacío: se saltea
	}
	Enriquecer(context.Background(), r, filas,
		func(f *filaDocente) string { return f.ci },
		func(f *filaDocente, p *Persona) {
			if p != nil {
				f.nombre = p.NombrePtr()
			}
		})

	assert.Equal(t, 1, fuente.llamadas["41234567"], "CI repetido se resuelve una sola vez")
	assert.Equal(t, 1, fuente.llamadas["52345678"])
	assert.Zero(t, fuente.llamadas[""])

	require.NotNil(t, filas[0].nombre)
	assert.Equal(t, "Juan", *filas[0].nombre)
	require.NotNil(t, filas[2].nombre)
	assert.Equal(t, "Juan", *filas[2].nombre)
	assert.Nil(t, filas[3].nombre)
}

func TestEnriquecerConCIQueNoResuelve(t *testing.T) {
	fuente := nuevaFuenteFake()
	fuente.personas["11111111"] = &Persona{CI: "11111111", Nombre: "Ana", Apellido: "Gómez"}
	fuente.fallaEn["22222222"] = true

	r := NewResolver(fuente, NewCache(CacheTTL))

	filas := []*filaDocente{{ci: "11111111"}, {ci: "22222222"}}
	Enriquecer(context.Background(), r, filas,
		func(f *filaDocente) string { return f.ci },
		func(f *filaDocente, p *Persona) { f.nombre = p.NombrePtr() })

	// la que resolvió trae nombre; la que falló queda con CI y campos nil
	require.NotNil(t, filas[0].nombre)
	assert.Equal(t, "Ana", *filas[0].nombre)
	assert.Nil(t, filas[1].nombre)
	assert.Equal(t, "22222222", filas[1].ci)
}

func TestResolverDegradaYCacheaLaFalla(t *testing.T) {
	fuente := nuevaFuenteFake()
	fuente.fallaEn["41234567"] = true

	r := NewResolver(fuente, NewCache(CacheTTL))

	assert.Nil(t, r.Persona(context.Background(), "41234567"))
	assert.Nil(t, r.Persona(context.Background(), "41234567"))
	assert.Equal(t, 1, fuente.llamadas["41234567"], "la falla queda cacheada como miss")
}

func TestResolverInvalidarFuerzaRelectura(t *testing.T) {
	fuente := nuevaFuenteFake()
	r := NewResolver(fuente, NewCache(CacheTTL))

	// primer lookup: persona inexistente, queda el negativo
	assert.Nil(t, r.Persona(context.Background(), "41234567"))

	// la persona aparece en el registro y alguien invalida
	fuente.personas["41234567"] = &Persona{CI: "41234567", Nombre: "Juan"}
	r.Invalidar("41234567")

	p := r.Persona(context.Background(), "41234567")
	require.NotNil(t, p)
	assert.Equal(t, "Juan", p.Nombre)
	assert.Equal(t, 2, fuente.llamadas["41234567"])
}

func TestResolverCIVacia(t *testing.T) {
	fuente := nuevaFuenteFake()
	r := NewResolver(fuente, NewCache(CacheTTL))

	assert.Nil(t, r.Persona(context.Background(), ""))
	assert.Empty(t, fuente.llamadas)
}
