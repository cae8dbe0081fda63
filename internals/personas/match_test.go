package personas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizar(t *testing.T) {
	casos := map[string]string{
		"  Ñoño  ":  "nono",
		"José MARÍA": "jose maria",
		"Gutiérrez": "gutierrez",
		"":          "",
	}
	for in, want := range casos {
		assert.Equal(t, want, Normalizar(in), "entrada %q", in)
	}
}

func TestEsNumerica(t *testing.T) {
	assert.True(t, EsNumerica("41234567"))
	assert.True(t, EsNumerica("412"))
	assert.False(t, EsNumerica(""))
	assert.False(t, EsNumerica("412a"))
	assert.False(t, EsNumerica("juan"))
}

func TestNombreCompletoOmiteVacios(t *testing.T) {
	nombre := "Juan"
	apellido := "Pérez"
	vacio := ""

	assert.Equal(t, "Juan Pérez", NombreCompleto(&nombre, nil, &apellido, &vacio))
	assert.Equal(t, "", NombreCompleto(nil, &vacio))
}

func TestCoincideNombreDosOrdenes(t *testing.T) {
	nombre := "Juan"
	segundo := "Carlos"
	apellido := "Pérez"

	// tipeado nombre-primero y apellido-primero
	assert.True(t, CoincideNombre("juan perez", &nombre, &segundo, &apellido, nil))
	assert.True(t, CoincideNombre("perez juan", &nombre, &segundo, &apellido, nil))
	// con acentos en cualquiera de los dos lados
	assert.True(t, CoincideNombre("pérez", &nombre, nil, &apellido, nil))
	// substring parcial
	assert.True(t, CoincideNombre("carl", &nombre, &segundo, &apellido, nil))
	// no matchea
	assert.False(t, CoincideNombre("gomez", &nombre, &segundo, &apellido, nil))
	// término vacío matchea todo
	assert.True(t, CoincideNombre("   ", &nombre, nil, &apellido, nil))
}

func TestCoincidePersonaNil(t *testing.T) {
	assert.False(t, CoincidePersona("juan", nil))
	assert.True(t, CoincidePersona("", nil))
}
