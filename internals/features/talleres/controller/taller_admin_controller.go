package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tallerDTO "talleres_backend/internals/features/talleres/dto"
	tallerModel "talleres_backend/internals/features/talleres/model"
	helper "talleres_backend/internals/helpers"
	"talleres_backend/internals/personas"
	"talleres_backend/internals/services/registropersonas"
)

var fallbackValidator = validator.New()

type TallerController struct {
	DB        *gorm.DB
	Registro  *registropersonas.Client
	Resolver  *personas.Resolver
	Validator *validator.Validate
}

func NewTallerController(db *gorm.DB, registro *registropersonas.Client, resolver *personas.Resolver) *TallerController {
	return &TallerController{DB: db, Registro: registro, Resolver: resolver, Validator: fallbackValidator}
}

/* ================= Listado admin ================= */

// List responde GET /admin/talleres.
// Filtros: nombre (nombre+descripcion), ciudad, estado (activos|inactivos|todos).
func (ctl *TallerController) List(c *fiber.Ctx) error {
	f := tallerDTO.ParseTallerFiltros(c)

	// ===== 1) etapa de storage: scope + predicados en SQL =====
	q := ctl.DB.WithContext(c.UserContext()).
		Model(&tallerModel.TallerModel{}).
		Scopes(tallerModel.PorEstado(f.Estado))

	if f.Ciudad != "" {
		q = q.Where("id_ciudad = ?", f.Ciudad)
	}
	if f.Nombre != "" {
		like := "%" + f.Nombre + "%"
		q = q.Where("nombre ILIKE ? OR descripcion ILIKE ?", like, like)
	}

	var talleres []tallerModel.TallerModel
	if err := q.Order("id_ciudad").Order("nombre").Find(&talleres).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron listar los talleres")
	}

	// ===== 2) catálogo de ciudades + nombre de ciudad por taller =====
	ciudades := ctl.ciudades(c)
	porID := make(map[int64]string, len(ciudades))
	for _, cd := range ciudades {
		porID[cd.ID] = cd.Nombre
	}
	for i := range talleres {
		if nombre, ok := porID[talleres[i].IDCiudad]; ok {
			n := nombre
			talleres[i].Ciudad = &n
		}
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"talleres": talleres,
		"ciudades": ciudades,
		"filtros":  f,
	})
}

/* ================= Mutaciones ================= */

// Create responde POST /admin/talleres.
func (ctl *TallerController) Create(c *fiber.Ctx) error {
	var req tallerDTO.TallerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido: "+err.Error())
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	taller := tallerModel.TallerModel{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		IDCiudad:    req.IDCiudad,
		Calle:       req.Calle,
		Numero:      req.Numero,
		Activo:      true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&taller).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el taller")
	}
	return helper.JsonCreated(c, "Taller creado exitosamente.", taller)
}

// Update responde PUT /admin/talleres/:id.
func (ctl *TallerController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id inválido")
	}

	var taller tallerModel.TallerModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&taller, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Taller no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar el taller")
	}

	var req tallerDTO.TallerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido: "+err.Error())
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	taller.Nombre = req.Nombre
	taller.Descripcion = req.Descripcion
	taller.IDCiudad = req.IDCiudad
	taller.Calle = req.Calle
	taller.Numero = req.Numero

	if err := ctl.DB.WithContext(c.UserContext()).Save(&taller).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el taller")
	}
	return helper.JsonOK(c, "Taller actualizado exitosamente.", taller)
}

// Delete responde DELETE /admin/talleres/:id → borrado lógico (activo=false).
func (ctl *TallerController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id inválido")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&tallerModel.TallerModel{}).
		Where("id = ?", id).
		Update("activo", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo desactivar el taller")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Taller no encontrado")
	}
	return helper.JsonOK(c, "Taller desactivado.", nil)
}

// Restore responde PATCH /admin/talleres/:id/restore. Tiene que ver la fila
// aunque esté inactiva, por eso no aplica el scope de activos.
func (ctl *TallerController) Restore(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Id inválido")
	}

	var taller tallerModel.TallerModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Scopes(tallerModel.PorEstado("todos")).
		First(&taller, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Taller no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar el taller")
	}

	taller.Activo = true
	if err := ctl.DB.WithContext(c.UserContext()).Save(&taller).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo restaurar el taller")
	}
	return helper.JsonOK(c, "Taller restaurado.", taller)
}

/* ================= Helpers ================= */

// ciudades trae el catálogo del Registro de Personas; si el servicio no
// responde seguimos con catálogo vacío (lectura degradada, nunca error).
func (ctl *TallerController) ciudades(c *fiber.Ctx) []registropersonas.Ciudad {
	ciudades, err := ctl.Registro.GetCiudades(c.UserContext())
	if err != nil {
		log.Printf("[WARN] catálogo de ciudades no disponible: %v", err)
		return []registropersonas.Ciudad{}
	}
	return ciudades
}
