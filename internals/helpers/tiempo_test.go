package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInicioYFinDelDia(t *testing.T) {
	inicio, err := InicioDelDia("2025-08-15")
	require.NoError(t, err)
	assert.Equal(t, 0, inicio.Hour())
	assert.Equal(t, Zona, inicio.Location())

	fin, err := FinDelDia("2025-08-15")
	require.NoError(t, err)
	assert.True(t, fin.After(inicio))
	assert.True(t, fin.Before(inicio.AddDate(0, 0, 1)))
	assert.Equal(t, 23, fin.Hour())
}

func TestFechaInvalida(t *testing.T) {
	_, err := InicioDelDia("15/08/2025")
	assert.Error(t, err)

	_, err = FinDelDia("no-fecha")
	assert.Error(t, err)
}

func TestFinDelDiaCubreTodoElDia(t *testing.T) {
	fin, err := FinDelDia("2025-12-31")
	require.NoError(t, err)

	ultimo := time.Date(2025, 12, 31, 23, 59, 59, 0, Zona)
	assert.True(t, fin.After(ultimo) || fin.Equal(ultimo))
}
