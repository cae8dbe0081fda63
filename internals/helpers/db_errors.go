package helper

import "errors"

// pgSQLErr cubre los errores de Postgres sin atarse a un driver: tanto
// lib/pq (*pq.Error) como pgx (*pgconn.PgError, el que emite el driver de
// GORM) exponen SQLState().
type pgSQLErr interface {
	SQLState() string
	Error() string
}

func codigoSQL(err error) string {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState()
	}
	return ""
}

// EsViolacionUnicidad detecta unique_violation (23505), para mapear altas
// duplicadas a un error de campo en vez de un 500 genérico.
func EsViolacionUnicidad(err error) bool {
	return codigoSQL(err) == "23505"
}

// EsViolacionFK detecta foreign_key_violation (23503): la fila referencia
// algo que ya no existe.
func EsViolacionFK(err error) bool {
	return codigoSQL(err) == "23503"
}
