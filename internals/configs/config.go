package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	URLRegistroPersonas string
	UsuariosAPIBase     string
	ProyectoClave       string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No se encontró .env, usando variables del sistema")
	}

	URLRegistroPersonas = GetEnv("URL_REGISTRO_PERSONAS")
	UsuariosAPIBase = GetEnv("USUARIOS_API_BASE_URL", "http://localhost:4010")
	ProyectoClave = GetEnv("USUARIOS_API_PROYECTO_CLAVE")

	if URLRegistroPersonas == "" {
		log.Println("[WARN] URL_REGISTRO_PERSONAS no está seteada; el enriquecimiento de personas degrada a campos vacíos")
	}
	if ProyectoClave == "" {
		log.Println("[WARN] USUARIOS_API_PROYECTO_CLAVE no está seteada; el chequeo de roles rechaza todo")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
