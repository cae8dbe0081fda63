package service

import (
	"context"

	"gorm.io/gorm"

	"talleres_backend/internals/personas"
)

// OrganizadorItem es la entrada del selector de organizadores en las vistas
// de organizador (solo CI + nombre/apellido resueltos).
type OrganizadorItem struct {
	CI       string  `json:"ci"`
	Nombre   *string `json:"nombre"`
	Apellido *string `json:"apellido"`
}

// Catalogo lista los CIs de organizadores activos enriquecidos con persona
// (cache 30'). Un CI que no resuelve queda con nombre/apellido en null.
func Catalogo(ctx context.Context, db *gorm.DB, r *personas.Resolver) ([]OrganizadorItem, error) {
	var cis []string
	if err := db.WithContext(ctx).
		Table("organizadores").
		Where("activo = ?", true).
		Order("ci").
		Pluck("ci", &cis).Error; err != nil {
		return nil, err
	}

	items := make([]OrganizadorItem, 0, len(cis))
	for _, ci := range cis {
		p := r.Persona(ctx, ci)
		items = append(items, OrganizadorItem{
			CI:       ci,
			Nombre:   p.NombrePtr(),
			Apellido: p.ApellidoPtr(),
		})
	}
	return items, nil
}
