package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clase(id int64, fecha time.Time) ClaseModel {
	return ClaseModel{ID: id, FechaHora: fecha}
}

func TestEsFutura(t *testing.T) {
	ahora := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	c1 := clase(1, ahora.Add(time.Minute))
	assert.True(t, c1.EsFutura(ahora))
	c2 := clase(2, ahora.Add(-time.Minute))
	assert.False(t, c2.EsFutura(ahora))
	// el instante exacto cuenta como futuro
	c := clase(3, ahora)
	assert.True(t, c.EsFutura(ahora))
}

func TestOrdenarFuturasPrimero(t *testing.T) {
	ahora := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	clases := []ClaseModel{
		clase(1, ahora.Add(-48*time.Hour)),
		clase(2, ahora.Add(72*time.Hour)),
		clase(3, ahora.Add(-time.Hour)),
		clase(4, ahora.Add(time.Hour)),
	}
	OrdenarFuturasPrimero(clases, ahora)

	var ids []int64
	for _, c := range clases {
		ids = append(ids, c.ID)
	}
	// futuras en orden ascendente, después las pasadas también ascendente
	assert.Equal(t, []int64{4, 2, 1, 3}, ids)
}

func TestOrdenarFuturasPrimeroTodasPasadas(t *testing.T) {
	ahora := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	clases := []ClaseModel{
		clase(1, ahora.Add(-time.Hour)),
		clase(2, ahora.Add(-72*time.Hour)),
	}
	OrdenarFuturasPrimero(clases, ahora)

	assert.Equal(t, int64(2), clases[0].ID)
	assert.Equal(t, int64(1), clases[1].ID)
}
