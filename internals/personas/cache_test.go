package personas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGuardaYExpira(t *testing.T) {
	ahora := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(30 * time.Minute)
	c.ahora = func() time.Time { return ahora }

	p := &Persona{CI: "41234567", Nombre: "Juan", Apellido: "Pérez"}
	c.Set("41234567", p)

	got, hit := c.Get("41234567")
	require.True(t, hit)
	assert.Equal(t, "Juan", got.Nombre)

	// Dentro de la ventana sigue vigente
	ahora = ahora.Add(29 * time.Minute)
	_, hit = c.Get("41234567")
	assert.True(t, hit)

	// Pasada la ventana es miss
	ahora = ahora.Add(2 * time.Minute)
	_, hit = c.Get("41234567")
	assert.False(t, hit)
}

func TestCacheNegativo(t *testing.T) {
	c := NewCache(30 * time.Minute)
	c.Set("99999999", nil)

	got, hit := c.Get("99999999")
	require.True(t, hit, "un miss cacheado es hit: no hay que ir a la red")
	assert.Nil(t, got)
}

func TestCacheForget(t *testing.T) {
	c := NewCache(30 * time.Minute)
	c.Set("41234567", &Persona{CI: "41234567"})
	c.Forget("41234567")

	_, hit := c.Get("41234567")
	assert.False(t, hit)
}
