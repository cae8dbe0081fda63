package helper

import "time"

// Zona horaria de la aplicación (la misma que usaba el calendario original).
var Zona = func() *time.Location {
	loc, err := time.LoadLocation("America/Montevideo")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// InicioDelDia parsea YYYY-MM-DD al comienzo del día en la zona local.
func InicioDelDia(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Zona)
}

// FinDelDia parsea YYYY-MM-DD al último instante del día en la zona local.
func FinDelDia(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, Zona)
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}
