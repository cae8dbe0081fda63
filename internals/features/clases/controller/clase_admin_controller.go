package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	claseDTO "talleres_backend/internals/features/clases/dto"
	claseModel "talleres_backend/internals/features/clases/model"
	docenteModel "talleres_backend/internals/features/docentes/model"
	tallerModel "talleres_backend/internals/features/talleres/model"
	helper "talleres_backend/internals/helpers"
	"talleres_backend/internals/personas"
)

var fallbackValidator = validator.New()

type ClaseController struct {
	DB        *gorm.DB
	Resolver  *personas.Resolver
	Validator *validator.Validate

	// Ahora inyectable para tests del corte futuro/pasado.
	Ahora func() time.Time
}

func NewClaseController(db *gorm.DB, resolver *personas.Resolver) *ClaseController {
	return &ClaseController{DB: db, Resolver: resolver, Validator: fallbackValidator, Ahora: time.Now}
}

/* ================= Listado admin ================= */

// List responde GET /admin/clases.
// Pipeline en dos etapas: primero los predicados estructurales en SQL (taller,
// rango de fechas, CI numérico), después enriquecimiento de docente y filtro
// por nombre en memoria. Orden final: futuras primero, fecha ascendente.
func (ctl *ClaseController) List(c *fiber.Ctx) error {
	f := claseDTO.ParseClaseFiltros(c)

	clases, err := ctl.consultarClases(c, f, "")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron listar las clases")
	}

	talleres, err := ctl.catalogoTalleres(c, "")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo armar el catálogo de talleres")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"clases":   clases,
		"talleres": talleres,
		"filtros":  f,
	})
}

// consultarClases es el cuerpo compartido por los listados admin y
// organizador; orgCI limita a clases de talleres vinculados a ese organizador.
func (ctl *ClaseController) consultarClases(c *fiber.Ctx, f claseDTO.ClaseFiltros, orgCI string) ([]claseModel.ClaseModel, error) {
	// ===== 1) etapa de storage =====
	q := ctl.DB.WithContext(c.UserContext()).
		Model(&claseModel.ClaseModel{}).
		Preload("Taller", func(db *gorm.DB) *gorm.DB { return db.Select("id", "nombre") }).
		Preload("Docente")

	if orgCI != "" {
		q = q.Where("taller_id IN (?)", ctl.DB.
			Table("talleres_organizadores").
			Select("taller_id").
			Where("ci_organizador = ?", orgCI))
	}
	if f.Taller != "" {
		q = q.Where("taller_id = ?", f.Taller)
	}
	if f.Desde != "" {
		if desde, err := helper.InicioDelDia(f.Desde); err == nil {
			q = q.Where("fecha_hora >= ?", desde)
		}
	}
	if f.Hasta != "" {
		if hasta, err := helper.FinDelDia(f.Hasta); err == nil {
			q = q.Where("fecha_hora <= ?", hasta)
		}
	}
	if f.BuscaCIEnBase() {
		q = q.Where("ci_docente LIKE ?", "%"+f.Q+"%")
	}

	var clases []claseModel.ClaseModel
	if err := q.Order("fecha_hora asc").Find(&clases).Error; err != nil {
		return nil, err
	}

	// ===== 2) enriquecimiento (1 lookup por CI distinto) =====
	refs := make([]*claseModel.ClaseModel, len(clases))
	for i := range clases {
		refs[i] = &clases[i]
	}
	personas.Enriquecer(c.UserContext(), ctl.Resolver, refs,
		func(cl *claseModel.ClaseModel) string { return cl.CIDocente },
		func(cl *claseModel.ClaseModel, p *personas.Persona) {
			if cl.Docente == nil {
				cl.Docente = &docenteModel.DocenteModel{CI: cl.CIDocente}
			}
			cl.Docente.Nombre = p.NombrePtr()
			cl.Docente.SegundoNombre = p.SegundoNombrePtr()
			cl.Docente.Apellido = p.ApellidoPtr()
			cl.Docente.SegundoApellido = p.SegundoApellidoPtr()
		})

	// ===== 3) filtro por nombre en memoria (solo término no numérico) =====
	if f.FiltraNombreEnMemoria() {
		filtradas := clases[:0]
		for _, cl := range clases {
			d := cl.Docente
			if d != nil && personas.CoincideNombre(f.Q, d.Nombre, d.SegundoNombre, d.Apellido, d.SegundoApellido) {
				filtradas = append(filtradas, cl)
			}
		}
		clases = filtradas
	}

	claseModel.OrdenarFuturasPrimero(clases, ctl.Ahora())
	return clases, nil
}

// catalogoTalleres lista talleres activos (id, nombre); con orgCI limita a los
// del organizador.
func (ctl *ClaseController) catalogoTalleres(c *fiber.Ctx, orgCI string) ([]tallerModel.TallerModel, error) {
	q := ctl.DB.WithContext(c.UserContext()).
		Model(&tallerModel.TallerModel{}).
		Select("id", "nombre").
		Scopes(tallerModel.PorEstado("activos")).
		Order("nombre")
	if orgCI != "" {
		q = q.Where("id IN (?)", ctl.DB.
			Table("talleres_organizadores").
			Select("taller_id").
			Where("ci_organizador = ?", orgCI))
	}
	var talleres []tallerModel.TallerModel
	err := q.Find(&talleres).Error
	return talleres, err
}

/* ================= Mutaciones ================= */

// Create responde POST /admin/clases. Solo fechas estrictamente futuras;
// docente y taller tienen que existir y estar activos.
func (ctl *ClaseController) Create(c *fiber.Ctx) error {
	req, fail := ctl.parseYValidar(c)
	if fail != nil {
		return fail(c)
	}

	clase := claseModel.ClaseModel{
		FechaHora:         req.FechaHora,
		AsistentesMaximos: &req.AsistentesMaximos,
		CIDocente:         req.CIDocente,
		TallerID:          req.TallerID,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&clase).Error; err != nil {
		if helper.EsViolacionFK(err) {
			return helper.JsonFieldError(c, "taller_id", "El taller o el docente ya no existen.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear la clase")
	}
	return helper.JsonCreated(c, "Clase creada correctamente.", clase)
}

// Update responde PUT /admin/clases/:id. Una clase que ya sucedió no se toca.
func (ctl *ClaseController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id inválido")
	}

	var clase claseModel.ClaseModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&clase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Clase no encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar la clase")
	}

	if !clase.EsFutura(ctl.Ahora()) {
		return helper.JsonFieldError(c, "fecha_hora", "No se puede editar una clase que ya sucedió.")
	}

	req, fail := ctl.parseYValidar(c)
	if fail != nil {
		return fail(c)
	}

	clase.FechaHora = req.FechaHora
	clase.AsistentesMaximos = &req.AsistentesMaximos
	clase.CIDocente = req.CIDocente
	clase.TallerID = req.TallerID

	if err := ctl.DB.WithContext(c.UserContext()).Save(&clase).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar la clase")
	}
	return helper.JsonOK(c, "Clase actualizada correctamente.", clase)
}

// Delete responde DELETE /admin/clases/:id. Borrado físico, solo para clases
// futuras; primero se desvinculan los asistentes (aunque la FK tenga cascade)
// para no dejar filas pivot colgadas.
func (ctl *ClaseController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id inválido")
	}

	var clase claseModel.ClaseModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&clase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Clase no encontrada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar la clase")
	}

	if !clase.EsFutura(ctl.Ahora()) {
		return helper.JsonFieldError(c, "id", "No se puede eliminar una clase que ya sucedió.")
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("clase_id = ?", clase.ID).Delete(&claseModel.ClaseAsistenteModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&clase).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar la clase")
	}
	return helper.JsonOK(c, "Clase eliminada.", nil)
}

/* ================= Helpers ================= */

// parseYValidar centraliza parseo + validación + reglas de negocio comunes a
// alta y edición. Devuelve el request o un responder de error ya armado.
func (ctl *ClaseController) parseYValidar(c *fiber.Ctx) (claseDTO.ClaseRequest, func(*fiber.Ctx) error) {
	var req claseDTO.ClaseRequest
	if err := c.BodyParser(&req); err != nil {
		msg := "Body inválido: " + err.Error()
		return req, func(c *fiber.Ctx) error { return helper.JsonError(c, fiber.StatusBadRequest, msg) }
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		vErr := err
		return req, func(c *fiber.Ctx) error { return helper.JsonValidationError(c, vErr) }
	}

	if !req.FechaEstrictamenteFutura(ctl.Ahora()) {
		return req, func(c *fiber.Ctx) error {
			return helper.JsonFieldError(c, "fecha_hora", "La fecha de la clase debe ser futura.")
		}
	}

	// Docente y taller: existencia + activo, validado acá y no por la base.
	var n int64
	err := ctl.DB.WithContext(c.UserContext()).
		Model(&docenteModel.DocenteModel{}).
		Where("ci = ? AND activo = ?", req.CIDocente, true).
		Count(&n).Error
	if err != nil {
		return req, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error al validar el docente")
		}
	}
	if n == 0 {
		return req, func(c *fiber.Ctx) error {
			return helper.JsonFieldError(c, "ci_docente", "El docente no existe o está inactivo.")
		}
	}

	err = ctl.DB.WithContext(c.UserContext()).
		Model(&tallerModel.TallerModel{}).
		Where("id = ? AND activo = ?", req.TallerID, true).
		Count(&n).Error
	if err != nil {
		return req, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error al validar el taller")
		}
	}
	if n == 0 {
		return req, func(c *fiber.Ctx) error {
			return helper.JsonFieldError(c, "taller_id", "El taller no existe o está inactivo.")
		}
	}

	return req, nil
}
