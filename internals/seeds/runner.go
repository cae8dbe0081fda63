package seeds

import (
	"log"

	"gorm.io/gorm"
)

// RunAllSeeds carga los datos de desarrollo. Todos los seeders son
// idempotentes (FirstOrCreate), se puede correr las veces que haga falta.
func RunAllSeeds(db *gorm.DB) {
	if err := SeedTalleres(db); err != nil {
		log.Println("[ERROR] Seed de talleres:", err)
	}
	if err := SeedDocentes(db); err != nil {
		log.Println("[ERROR] Seed de docentes:", err)
	}
	if err := SeedClases(db); err != nil {
		log.Println("[ERROR] Seed de clases:", err)
	}
	log.Println("[INFO] Seeds de desarrollo aplicados")
}
