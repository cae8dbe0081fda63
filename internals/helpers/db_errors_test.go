package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestEsViolacionUnicidadConPgx(t *testing.T) {
	// el driver postgres de GORM emite *pgconn.PgError
	dup := &pgconn.PgError{Code: "23505"}
	assert.True(t, EsViolacionUnicidad(dup))
	assert.True(t, EsViolacionUnicidad(fmt.Errorf("create: %w", dup)))

	assert.False(t, EsViolacionUnicidad(&pgconn.PgError{Code: "23503"}))
}

func TestEsViolacionUnicidadConPq(t *testing.T) {
	dup := &pq.Error{Code: "23505"}
	assert.True(t, EsViolacionUnicidad(dup))
	assert.True(t, EsViolacionUnicidad(fmt.Errorf("create: %w", dup)))

	assert.False(t, EsViolacionUnicidad(errors.New("otra cosa")))
	assert.False(t, EsViolacionUnicidad(nil))
}

func TestEsViolacionFK(t *testing.T) {
	assert.True(t, EsViolacionFK(&pgconn.PgError{Code: "23503"}))
	assert.True(t, EsViolacionFK(&pq.Error{Code: "23503"}))

	assert.False(t, EsViolacionFK(&pgconn.PgError{Code: "23505"}))
	assert.False(t, EsViolacionFK(nil))
}
