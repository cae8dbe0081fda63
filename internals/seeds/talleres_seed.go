package seeds

import (
	"time"

	"gorm.io/gorm"

	claseModel "talleres_backend/internals/features/clases/model"
	docenteModel "talleres_backend/internals/features/docentes/model"
	tallerModel "talleres_backend/internals/features/talleres/model"
)

func ptr[T any](v T) *T { return &v }

// SeedTalleres crea un par de talleres base. id_ciudad referencia el catálogo
// remoto de ciudades, así que solo sirve contra un registro de personas real.
func SeedTalleres(db *gorm.DB) error {
	talleres := []tallerModel.TallerModel{
		{
			Nombre:      "Taller de Carpintería",
			Descripcion: ptr("Carpintería básica para principiantes"),
			IDCiudad:    1,
			Calle:       ptr("18 de Julio"),
			Numero:      ptr("1234"),
			Activo:      true,
		},
		{
			Nombre:      "Taller de Huerta",
			Descripcion: ptr("Huerta orgánica comunitaria"),
			IDCiudad:    2,
			Calle:       ptr("Av. Italia"),
			Numero:      ptr("4521"),
			Activo:      true,
		},
	}
	for i := range talleres {
		if err := db.Where("nombre = ?", talleres[i].Nombre).
			FirstOrCreate(&talleres[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedDocentes crea docentes con CIs de prueba. Los nombres salen del
// registro de personas al enriquecer, acá solo existe la CI.
func SeedDocentes(db *gorm.DB) error {
	for _, ci := range []string{"41234567", "52345678"} {
		doc := docenteModel.DocenteModel{CI: ci, Activo: true}
		if err := db.Where("ci = ?", ci).FirstOrCreate(&doc).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedClases agenda una clase futura por taller sembrado.
func SeedClases(db *gorm.DB) error {
	var talleres []tallerModel.TallerModel
	if err := db.Limit(2).Order("id").Find(&talleres).Error; err != nil {
		return err
	}

	proxima := time.Now().AddDate(0, 0, 7).Truncate(time.Hour)
	for i, t := range talleres {
		clase := claseModel.ClaseModel{
			FechaHora:         proxima.Add(time.Duration(i) * 24 * time.Hour),
			AsistentesMaximos: ptr(20),
			CIDocente:         "41234567",
			TallerID:          t.ID,
		}
		if err := db.Where("taller_id = ? AND fecha_hora = ?", t.ID, clase.FechaHora).
			FirstOrCreate(&clase).Error; err != nil {
			return err
		}
	}
	return nil
}
