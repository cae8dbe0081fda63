package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRuteoDelTerminoDeBusqueda(t *testing.T) {
	// término numérico: LIKE de CI en base, nunca matcher en memoria
	f := ClaseFiltros{Q: "41234567"}
	assert.True(t, f.BuscaCIEnBase())
	assert.False(t, f.FiltraNombreEnMemoria())

	f = ClaseFiltros{Q: "412"}
	assert.True(t, f.BuscaCIEnBase())
	assert.False(t, f.FiltraNombreEnMemoria())

	// término no numérico: solo en memoria, nunca LIKE de CI
	f = ClaseFiltros{Q: "perez"}
	assert.False(t, f.BuscaCIEnBase())
	assert.True(t, f.FiltraNombreEnMemoria())

	f = ClaseFiltros{Q: "412a"}
	assert.False(t, f.BuscaCIEnBase())
	assert.True(t, f.FiltraNombreEnMemoria())

	// sin término: ninguna de las dos etapas
	f = ClaseFiltros{Q: ""}
	assert.False(t, f.BuscaCIEnBase())
	assert.False(t, f.FiltraNombreEnMemoria())
}

func TestFechaEstrictamenteFutura(t *testing.T) {
	ahora := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	// el instante exacto "ahora" se rechaza
	req := ClaseRequest{FechaHora: ahora}
	assert.False(t, req.FechaEstrictamenteFutura(ahora))

	req.FechaHora = ahora.Add(-time.Minute)
	assert.False(t, req.FechaEstrictamenteFutura(ahora))

	req.FechaHora = ahora.Add(time.Nanosecond)
	assert.True(t, req.FechaEstrictamenteFutura(ahora))

	req.FechaHora = ahora.Add(48 * time.Hour)
	assert.True(t, req.FechaEstrictamenteFutura(ahora))
}
