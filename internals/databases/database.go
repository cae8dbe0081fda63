package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"talleres_backend/internals/configs"
	claseModel "talleres_backend/internals/features/clases/model"
	docenteModel "talleres_backend/internals/features/docentes/model"
	organizadorModel "talleres_backend/internals/features/organizadores/model"
	tallerModel "talleres_backend/internals/features/talleres/model"

	asistenteModel "talleres_backend/internals/features/asistentes/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] Conectando a PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=talleres&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // compatible con PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("[ERROR] No se pudo conectar a la base: %v", err)
	}
	DB = db
	log.Println("[INFO] DB conectada.")
}

// TunePool ajusta el pool de conexiones del *sql.DB subyacente.
func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] No se pudo obtener el pool: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// Migrate crea/actualiza las tablas locales. El esquema canónico vive acá;
// las referencias a personas (ci) y ciudades (id_ciudad) son externas, sin FK.
func Migrate() {
	if err := DB.AutoMigrate(
		&docenteModel.DocenteModel{},
		&asistenteModel.AsistenteModel{},
		&organizadorModel.OrganizadorModel{},
		&tallerModel.TallerModel{},
		&claseModel.ClaseModel{},
		&claseModel.ClaseAsistenteModel{},
		&organizadorModel.TallerOrganizadorModel{},
	); err != nil {
		log.Fatalf("[ERROR] AutoMigrate falló: %v", err)
	}
	log.Println("[INFO] Migraciones aplicadas.")
}
