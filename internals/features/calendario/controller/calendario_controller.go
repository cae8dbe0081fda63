package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	claseModel "talleres_backend/internals/features/clases/model"
	docenteModel "talleres_backend/internals/features/docentes/model"
	helper "talleres_backend/internals/helpers"
	"talleres_backend/internals/personas"
)

// CalendarioController sirve los endpoints públicos del calendario de
// docentes. No requiere sesión: solo expone clases con datos mínimos.
type CalendarioController struct {
	DB       *gorm.DB
	Resolver *personas.Resolver
	Ahora    func() time.Time
}

func NewCalendarioController(db *gorm.DB, resolver *personas.Resolver) *CalendarioController {
	return &CalendarioController{DB: db, Resolver: resolver, Ahora: time.Now}
}

type docenteItem struct {
	CI     string `json:"ci"`
	Nombre string `json:"nombre"`
}

// Docentes responde GET /docente/api/docentes con el selector del calendario.
// Si el registro de personas no responde, el nombre cae a la propia CI.
func (ctl *CalendarioController) Docentes(c *fiber.Ctx) error {
	var cis []string
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&docenteModel.DocenteModel{}).
		Scopes(docenteModel.PorEstado("activos")).
		Order("ci").
		Pluck("ci", &cis).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron listar los docentes")
	}

	items := make([]docenteItem, 0, len(cis))
	for _, ci := range cis {
		nombre := ci
		if p := ctl.Resolver.Persona(c.UserContext(), ci); p != nil {
			if completo := personas.NombreCompleto(p.NombrePtr(), p.ApellidoPtr()); completo != "" {
				nombre = completo
			}
		}
		items = append(items, docenteItem{CI: ci, Nombre: nombre})
	}
	return c.JSON(items)
}

type claseCalendario struct {
	ID                int64     `json:"id"`
	FechaHora         time.Time `json:"fecha_hora"`
	AsistentesMaximos int       `json:"asistentes_maximos"`
	Taller            string    `json:"taller"`
	Direccion         string    `json:"direccion"`
}

// Clases responde GET /docente/api/:ci/clases.
// El rango sale de from/to (YYYY-MM-DD) o de mes (YYYY-MM, ±1 mes alrededor
// del ancla). Sin parámetros, el ancla es el mes actual.
func (ctl *CalendarioController) Clases(c *fiber.Ctx) error {
	ci := c.Params("ci")
	if len(ci) != 8 || !personas.EsNumerica(ci) {
		return helper.JsonFieldError(c, "ci", "La cédula debe tener 8 dígitos.")
	}

	desde, hasta, err := ctl.rango(c)
	if err != nil {
		return helper.JsonFieldError(c, "anchor", "Rango de fechas inválido.")
	}

	type fila struct {
		ID                int64
		FechaHora         time.Time
		AsistentesMaximos int
		TallerNombre      string
		Calle             string
		Numero            string
	}
	var filas []fila
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&claseModel.ClaseModel{}).
		Select("clases.id, clases.fecha_hora, COALESCE(clases.asistentes_maximos, 0) AS asistentes_maximos, talleres.nombre AS taller_nombre, COALESCE(talleres.calle, '') AS calle, COALESCE(talleres.numero, '') AS numero").
		Joins("JOIN talleres ON talleres.id = clases.taller_id").
		Where("clases.ci_docente = ?", ci).
		Where("clases.fecha_hora BETWEEN ? AND ?", desde, hasta).
		Order("clases.fecha_hora asc").
		Scan(&filas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron listar las clases")
	}

	items := make([]claseCalendario, 0, len(filas))
	for _, f := range filas {
		items = append(items, claseCalendario{
			ID:                f.ID,
			FechaHora:         f.FechaHora.In(helper.Zona),
			AsistentesMaximos: f.AsistentesMaximos,
			Taller:            f.TallerNombre,
			Direccion:         strings.TrimSpace(f.Calle + " " + f.Numero),
		})
	}
	return c.JSON(fiber.Map{
		"ci":     ci,
		"desde":  desde,
		"hasta":  hasta,
		"clases": items,
	})
}

// rango resuelve la ventana de fechas del calendario en la zona local.
func (ctl *CalendarioController) rango(c *fiber.Ctx) (time.Time, time.Time, error) {
	from := c.Query("from")
	to := c.Query("to")
	if from != "" && to != "" {
		desde, err := helper.InicioDelDia(from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		hasta, err := helper.FinDelDia(to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return desde, hasta, nil
	}

	ancla := ctl.Ahora().In(helper.Zona)
	if mes := c.Query("anchor", c.Query("mes")); mes != "" {
		t, err := time.ParseInLocation("2006-01", mes, helper.Zona)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		ancla = t
	}

	inicioMes := time.Date(ancla.Year(), ancla.Month(), 1, 0, 0, 0, 0, helper.Zona)
	desde := inicioMes.AddDate(0, -1, 0)
	hasta := inicioMes.AddDate(0, 2, 0).Add(-time.Nanosecond)
	return desde, hasta, nil
}
