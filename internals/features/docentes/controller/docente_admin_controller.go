package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	docenteDTO "talleres_backend/internals/features/docentes/dto"
	docenteModel "talleres_backend/internals/features/docentes/model"
	tallerModel "talleres_backend/internals/features/talleres/model"
	helper "talleres_backend/internals/helpers"
	"talleres_backend/internals/personas"
	"talleres_backend/internals/services/registropersonas"
)

var fallbackValidator = validator.New()

type DocenteController struct {
	DB        *gorm.DB
	Registro  *registropersonas.Client
	Resolver  *personas.Resolver
	Validator *validator.Validate
}

func NewDocenteController(db *gorm.DB, registro *registropersonas.Client, resolver *personas.Resolver) *DocenteController {
	return &DocenteController{DB: db, Registro: registro, Resolver: resolver, Validator: fallbackValidator}
}

/* ================= Listado ================= */

// List responde GET /admin/docentes.
// Filtros: busqueda (fragmento de CI, en base), nombre (match en memoria tras
// enriquecer), taller (EXISTS contra clases), estado.
func (ctl *DocenteController) List(c *fiber.Ctx) error {
	f := docenteDTO.ParseDocenteFiltros(c)

	// ===== 1) etapa de storage =====
	q := ctl.DB.WithContext(c.UserContext()).
		Model(&docenteModel.DocenteModel{}).
		Scopes(docenteModel.PorEstado(f.Estado)).
		Order("ci")

	if f.Busqueda != "" {
		q = q.Where("ci LIKE ?", "%"+f.Busqueda+"%")
	}
	if f.Taller != "" {
		q = q.Where("EXISTS (SELECT 1 FROM clases WHERE clases.ci_docente = docentes.ci AND clases.taller_id = ?)", f.Taller)
	}

	var docentes []docenteModel.DocenteModel
	if err := q.Find(&docentes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron listar los docentes")
	}

	// ===== 2) enriquecimiento =====
	refs := make([]*docenteModel.DocenteModel, len(docentes))
	for i := range docentes {
		refs[i] = &docentes[i]
	}
	personas.Enriquecer(c.UserContext(), ctl.Resolver, refs,
		func(d *docenteModel.DocenteModel) string { return d.CI },
		func(d *docenteModel.DocenteModel, p *personas.Persona) {
			d.Nombre = p.NombrePtr()
			d.SegundoNombre = p.SegundoNombrePtr()
			d.Apellido = p.ApellidoPtr()
			d.SegundoApellido = p.SegundoApellidoPtr()
			d.Telefono = p.TelefonoPtr()
		})

	// ===== 3) filtro por nombre en memoria =====
	if f.Nombre != "" {
		filtrados := docentes[:0]
		for _, d := range docentes {
			if personas.CoincideNombre(f.Nombre, d.Nombre, d.SegundoNombre, d.Apellido, d.SegundoApellido) {
				filtrados = append(filtrados, d)
			}
		}
		docentes = filtrados
	}

	// ===== 4) talleres en los que dictó cada docente (distinct) =====
	if err := ctl.adjuntarTalleresDicta(c, docentes); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron resolver los talleres por docente")
	}

	// ===== 5) catálogo: solo talleres con clases cargadas =====
	var talleres []tallerModel.TallerModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&tallerModel.TallerModel{}).
		Select("id", "nombre").
		Where("id IN (?)", ctl.DB.Table("clases").Distinct("taller_id")).
		Order("nombre").
		Find(&talleres).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo armar el catálogo de talleres")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"docentes": docentes,
		"talleres": talleres,
		"filtros":  f,
	})
}

func (ctl *DocenteController) adjuntarTalleresDicta(c *fiber.Ctx, docentes []docenteModel.DocenteModel) error {
	if len(docentes) == 0 {
		return nil
	}
	cis := make([]string, len(docentes))
	for i, d := range docentes {
		cis[i] = d.CI
	}

	type fila struct {
		CIDocente string `gorm:"column:ci_docente"`
		ID        int64  `gorm:"column:id"`
		Nombre    string `gorm:"column:nombre"`
	}
	var filas []fila
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("clases").
		Select("DISTINCT clases.ci_docente, talleres.id, talleres.nombre").
		Joins("JOIN talleres ON clases.taller_id = talleres.id").
		Where("clases.ci_docente IN ?", cis).
		Scan(&filas).Error; err != nil {
		return err
	}

	porCI := make(map[string][]docenteModel.TallerResumen)
	for _, f := range filas {
		porCI[f.CIDocente] = append(porCI[f.CIDocente], docenteModel.TallerResumen{ID: f.ID, Nombre: f.Nombre})
	}
	for i := range docentes {
		docentes[i].TalleresDicta = porCI[docentes[i].CI]
	}
	return nil
}

/* ================= Mutaciones ================= */

// Create responde POST /admin/docentes.
// Primero sincroniza la persona canónica en el Registro (una falla remota
// aborta el alta), después crea o reactiva la fila local y recién entonces
// invalida el cache para que la próxima lectura vea los datos frescos.
func (ctl *DocenteController) Create(c *fiber.Ctx) error {
	var req docenteDTO.DocenteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido: "+err.Error())
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// 1) Sync con Registro de Personas
	err := ctl.Registro.UpdateOrCreatePersona(c.UserContext(), registropersonas.PersonaInput{
		CI:              req.CI,
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		SegundoNombre:   req.SegundoNombre,
		SegundoApellido: req.SegundoApellido,
		Telefono:        req.Telefono,
	})
	if err != nil {
		log.Printf("[WARN] sync de persona %s falló: %v", req.CI, err)
		return helper.JsonFieldError(c, "ci", err.Error())
	}

	// 2) Crear o reactivar local
	var doc docenteModel.DocenteModel
	err = ctl.DB.WithContext(c.UserContext()).
		Scopes(docenteModel.PorEstado("todos")).
		Where("ci = ?", req.CI).
		First(&doc).Error
	switch {
	case err == nil:
		doc.Activo = true
		if err := ctl.DB.WithContext(c.UserContext()).Save(&doc).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo reactivar el docente")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		doc = docenteModel.DocenteModel{CI: req.CI, Activo: true}
		if err := ctl.DB.WithContext(c.UserContext()).Create(&doc).Error; err != nil {
			if helper.EsViolacionUnicidad(err) {
				return helper.JsonFieldError(c, "ci", "Ya existe un docente con esa cédula.")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el docente")
		}
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar el docente")
	}

	// 3) Invalidar cache de esa persona
	ctl.Resolver.Invalidar(req.CI)

	return helper.JsonCreated(c, "Docente sincronizado correctamente.", doc)
}

// Delete responde DELETE /admin/docentes/:ci → borrado lógico.
func (ctl *DocenteController) Delete(c *fiber.Ctx) error {
	ci := c.Params("ci")
	res := ctl.DB.WithContext(c.UserContext()).
		Model(&docenteModel.DocenteModel{}).
		Where("ci = ?", ci).
		Update("activo", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo desactivar el docente")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Docente no encontrado")
	}
	return helper.JsonOK(c, "Docente desactivado.", nil)
}

// Restore responde PATCH /admin/docentes/:ci/restore.
func (ctl *DocenteController) Restore(c *fiber.Ctx) error {
	ci := c.Params("ci")

	var doc docenteModel.DocenteModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Scopes(docenteModel.PorEstado("todos")).
		Where("ci = ?", ci).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Docente no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar el docente")
	}

	doc.Activo = true
	if err := ctl.DB.WithContext(c.UserContext()).Save(&doc).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo restaurar el docente")
	}
	return helper.JsonOK(c, "Docente restaurado.", doc)
}

/* ================= Endpoints auxiliares (modal) ================= */

// Persona responde GET /admin/docentes/persona/:ci — passthrough sin cache al
// Registro, con el status remoto propagado.
func (ctl *DocenteController) Persona(c *fiber.Ctx) error {
	ci := c.Params("ci")
	p, err := ctl.Registro.GetPersona(c.UserContext(), ci)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"persona": nil,
			"error":   "No se pudo contactar Registro de Personas",
		})
	}
	return c.JSON(fiber.Map{"persona": p})
}

// Existe responde GET /admin/docentes/existe/:ci — existencia local sin
// importar el estado.
func (ctl *DocenteController) Existe(c *fiber.Ctx) error {
	ci := c.Params("ci")
	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&docenteModel.DocenteModel{}).
		Where("ci = ?", ci).
		Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar el docente")
	}
	return c.JSON(fiber.Map{"existe": n > 0})
}

// Buscar responde GET /admin/docentes/buscar?q= — autocomplete sobre docentes
// activos: matchea CI o cualquiera de los dos órdenes del nombre, usando el
// cache (no se dispara una llamada por tecla gracias al TTL).
func (ctl *DocenteController) Buscar(c *fiber.Ctx) error {
	q := c.Query("q")
	if len([]rune(q)) < 2 {
		return c.JSON([]fiber.Map{})
	}
	needle := personas.Normalizar(q)

	var cis []string
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&docenteModel.DocenteModel{}).
		Scopes(docenteModel.PorEstado("activos")).
		Order("ci").
		Pluck("ci", &cis).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar docentes")
	}

	const maxResultados = 30
	found := make([]fiber.Map, 0, maxResultados)
	for _, ci := range cis {
		p := ctl.Resolver.Persona(c.UserContext(), ci)

		coincide := strings.Contains(personas.Normalizar(ci), needle) ||
			(p != nil && personas.CoincidePersona(q, p))
		if !coincide {
			continue
		}

		found = append(found, fiber.Map{
			"ci":       ci,
			"nombre":   p.NombrePtr(),
			"apellido": p.ApellidoPtr(),
		})
		if len(found) >= maxResultados {
			break
		}
	}
	return c.JSON(found)
}

// Top responde GET /admin/docentes/top?taller_id=&limit= — docentes ordenados
// por cantidad de clases dictadas en el taller.
func (ctl *DocenteController) Top(c *fiber.Ctx) error {
	tallerID, err := strconv.ParseInt(c.Query("taller_id"), 10, 64)
	if err != nil || tallerID <= 0 {
		return helper.JsonFieldError(c, "taller_id", "taller_id es requerido")
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&tallerModel.TallerModel{}).
		Scopes(tallerModel.PorEstado("todos")).
		Where("id = ?", tallerID).
		Count(&n).Error; err != nil || n == 0 {
		return helper.JsonFieldError(c, "taller_id", "El taller no existe.")
	}

	type fila struct {
		CIDocente   string `gorm:"column:ci_docente"`
		ClasesCount int    `gorm:"column:clases_count"`
	}
	var filas []fila
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("clases").
		Select("ci_docente, COUNT(*) as clases_count").
		Where("taller_id = ?", tallerID).
		Where("ci_docente IS NOT NULL AND ci_docente <> ''").
		Group("ci_docente").
		Order("clases_count DESC").
		Limit(limit).
		Scan(&filas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo armar el ranking")
	}

	result := make([]fiber.Map, 0, len(filas))
	for _, f := range filas {
		p := ctl.Resolver.Persona(c.UserContext(), f.CIDocente)
		completo := personas.NombreCompleto(p.NombrePtr(), p.ApellidoPtr())
		var nombre *string
		if completo != "" {
			nombre = &completo
		}
		result = append(result, fiber.Map{
			"ci":           f.CIDocente,
			"nombre":       nombre,
			"clases_count": f.ClasesCount,
		})
	}
	return c.JSON(result)
}
