package controller

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	docenteModel "talleres_backend/internals/features/docentes/model"
	organizadorDTO "talleres_backend/internals/features/organizadores/dto"
	organizadorModel "talleres_backend/internals/features/organizadores/model"
	tallerModel "talleres_backend/internals/features/talleres/model"
	helper "talleres_backend/internals/helpers"
	"talleres_backend/internals/middlewares"
	"talleres_backend/internals/personas"
	"talleres_backend/internals/services/usuariosapi"
)

var fallbackValidator = validator.New()

type OrganizadorController struct {
	DB        *gorm.DB
	Usuarios  *usuariosapi.Client
	Resolver  *personas.Resolver
	Validator *validator.Validate

	// Clave del proyecto en la API de usuarios al que pertenece esta app.
	ProyectoClave string
}

func NewOrganizadorController(db *gorm.DB, usuarios *usuariosapi.Client, resolver *personas.Resolver, proyectoClave string) *OrganizadorController {
	return &OrganizadorController{
		DB:            db,
		Usuarios:      usuarios,
		Resolver:      resolver,
		Validator:     fallbackValidator,
		ProyectoClave: proyectoClave,
	}
}

/* ================= Listado ================= */

// List responde GET /admin/organizadores.
// Filtros: taller (pivot), nombre (match en memoria tras enriquecer), estado.
func (ctl *OrganizadorController) List(c *fiber.Ctx) error {
	f := organizadorDTO.ParseOrganizadorFiltros(c)

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&organizadorModel.OrganizadorModel{}).
		Scopes(organizadorModel.PorEstado(f.Estado)).
		Preload("Talleres", func(db *gorm.DB) *gorm.DB { return db.Select("id", "nombre") }).
		Order("ci")

	if f.Taller != "" {
		q = q.Where("ci IN (?)", ctl.DB.
			Table("talleres_organizadores").
			Select("ci_organizador").
			Where("taller_id = ?", f.Taller))
	}

	var organizadores []organizadorModel.OrganizadorModel
	if err := q.Find(&organizadores).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron listar los organizadores")
	}

	refs := make([]*organizadorModel.OrganizadorModel, len(organizadores))
	for i := range organizadores {
		refs[i] = &organizadores[i]
	}
	personas.Enriquecer(c.UserContext(), ctl.Resolver, refs,
		func(o *organizadorModel.OrganizadorModel) string { return o.CI },
		func(o *organizadorModel.OrganizadorModel, p *personas.Persona) {
			o.Nombre = p.NombrePtr()
			o.SegundoNombre = p.SegundoNombrePtr()
			o.Apellido = p.ApellidoPtr()
			o.SegundoApellido = p.SegundoApellidoPtr()
			o.Telefono = p.TelefonoPtr()
		})

	if f.Nombre != "" {
		filtrados := organizadores[:0]
		for _, o := range organizadores {
			if personas.CoincideNombre(f.Nombre, o.Nombre, o.SegundoNombre, o.Apellido, o.SegundoApellido) {
				filtrados = append(filtrados, o)
			}
		}
		organizadores = filtrados
	}

	var talleres []tallerModel.TallerModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&tallerModel.TallerModel{}).
		Select("id", "nombre").
		Scopes(tallerModel.PorEstado("activos")).
		Order("nombre").
		Find(&talleres).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo armar el catálogo de talleres")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"organizadores": organizadores,
		"talleres":      talleres,
		"filtros":       f,
	})
}

/* ================= Alta ================= */

// Create responde POST /admin/organizadores.
// Dos modos: adjuntar un usuario remoto existente (user_id, PATCH no
// destructivo de la unión de roles/proyectos) o crear uno nuevo en la API.
// Las escrituras locales van en una transacción; cualquier falla remota
// aborta todo con un error general.
func (ctl *OrganizadorController) Create(c *fiber.Ctx) error {
	var req organizadorDTO.OrganizadorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido: "+err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := ctl.validarTalleres(c.UserContext(), req.Talleres); err != nil {
		return helper.JsonFieldError(c, "talleres", err.Error())
	}

	token := middlewares.TokenFrom(c)
	ctx := c.UserContext()

	// 1) Resolver proyecto y roles por clave
	projectID, roleIDs, err := ctl.resolverRoles(ctx, token, req.Roles)
	if err != nil {
		return helper.JsonFieldError(c, "roles", err.Error())
	}

	// 2) Crear o adjuntar en la API de usuarios
	var userID int64
	if req.UserID != nil {
		userID = *req.UserID
		actual, err := ctl.Usuarios.GetUser(ctx, token, userID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "No se pudo obtener el usuario remoto: "+err.Error())
		}
		if err := ctl.Usuarios.PatchUser(ctx, token, userID, map[string]any{
			"roles":     unionIDs(rolIDs(actual.Roles), roleIDs),
			"proyectos": unionIDs(proyectoIDs(actual.Proyectos), []int64{projectID}),
			"activo":    true,
		}); err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "No se pudo actualizar el usuario remoto: "+err.Error())
		}
	} else {
		nuevo, err := ctl.Usuarios.CreateUser(ctx, token, usuariosapi.CrearUsuario{
			Name:                 req.Name,
			Email:                req.Email,
			Password:             req.Password,
			PasswordConfirmation: req.PasswordConfirmation,
			Roles:                roleIDs,
			Proyectos:            []int64{projectID},
			Activo:               true,
		})
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "No se pudo crear el usuario remoto: "+err.Error())
		}
		if nuevo.ID <= 0 {
			return helper.JsonError(c, fiber.StatusBadGateway, "No se pudo crear el usuario remoto.")
		}
		userID = nuevo.ID
	}

	// 3) Crear/reactivar filas locales según los roles elegidos
	err = ctl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if contieneRol(req.Roles, "organizador") {
			if err := ctl.upsertOrganizador(tx, req.CI, userID); err != nil {
				return err
			}
			if req.Talleres != nil {
				if err := sincronizarTalleres(tx, req.CI, req.Talleres); err != nil {
					return err
				}
			}
		}
		if contieneRol(req.Roles, "docente") {
			if err := ctl.upsertDocente(tx, req.CI, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al crear/adjuntar el usuario y asignar roles.")
	}

	return helper.JsonCreated(c, "Usuario sincronizado y roles asignados correctamente.", fiber.Map{
		"ci":      req.CI,
		"user_id": userID,
	})
}

/* ================= Edición ================= */

// Update responde PUT /admin/organizadores/:ci.
// Si vienen roles, reemplaza los roles de ESTE proyecto por la selección
// (los de otros proyectos se conservan) y sincroniza las filas locales.
func (ctl *OrganizadorController) Update(c *fiber.Ctx) error {
	ci := c.Params("ci")

	var org organizadorModel.OrganizadorModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Scopes(organizadorModel.PorEstado("todos")).
		Where("ci = ?", ci).
		First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Organizador no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar el organizador")
	}

	var req organizadorDTO.OrganizadorUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido: "+err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.Talleres != nil {
		if err := ctl.validarTalleres(c.UserContext(), *req.Talleres); err != nil {
			return helper.JsonFieldError(c, "talleres", err.Error())
		}
	}

	token := middlewares.TokenFrom(c)
	ctx := c.UserContext()

	if org.UserID == nil {
		return helper.JsonError(c, fiber.StatusConflict, "El organizador no tiene usuario remoto asociado")
	}
	userID := *org.UserID

	// Sin cambios remotos pedidos: solo talleres
	if req.Usuario == nil && req.Roles == nil {
		if req.Talleres != nil {
			if err := sincronizarTalleres(ctl.DB.WithContext(ctx), ci, *req.Talleres); err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron sincronizar los talleres")
			}
		}
		return helper.JsonOK(c, "Organizador actualizado correctamente.", nil)
	}

	proyecto, err := ctl.Usuarios.GetProjectByClave(ctx, token, ctl.ProyectoClave)
	if err != nil || proyecto.ID <= 0 {
		return helper.JsonError(c, fiber.StatusBadGateway, "No se pudo resolver el proyecto destino.")
	}

	// IDs de los dos roles de este proyecto (0 si alguno no existe)
	rolesProyecto := map[string]int64{}
	for _, clave := range []string{"organizador", "docente"} {
		if r, err := ctl.Usuarios.GetRoleByClaveAndProyecto(ctx, token, clave, proyecto.ID); err == nil {
			rolesProyecto[clave] = r.ID
		}
	}

	actual, err := ctl.Usuarios.GetUser(ctx, token, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "No se pudo obtener el usuario remoto: "+err.Error())
	}

	patch := map[string]any{}
	var seleccion []string
	if req.Roles != nil {
		for _, r := range *req.Roles {
			seleccion = append(seleccion, strings.ToLower(r))
		}

		// Sacar los roles de este proyecto y volver a agregar los elegidos
		idsProyecto := make(map[int64]bool, len(rolesProyecto))
		for _, id := range rolesProyecto {
			if id > 0 {
				idsProyecto[id] = true
			}
		}
		var nuevos []int64
		for _, id := range rolIDs(actual.Roles) {
			if !idsProyecto[id] {
				nuevos = append(nuevos, id)
			}
		}
		for _, clave := range seleccion {
			if id := rolesProyecto[clave]; id > 0 {
				nuevos = append(nuevos, id)
			}
		}
		patch["roles"] = unionIDs(nuevos, nil)

		if len(seleccion) > 0 {
			patch["proyectos"] = unionIDs(proyectoIDs(actual.Proyectos), []int64{proyecto.ID})
		}
	}
	if req.Usuario != nil {
		u := req.Usuario
		if u.Name != nil {
			patch["name"] = *u.Name
		}
		if u.Email != nil {
			patch["email"] = *u.Email
		}
		if u.Password != nil {
			patch["password"] = *u.Password
			if u.PasswordConfirmation != nil {
				patch["password_confirmation"] = *u.PasswordConfirmation
			}
		}
	}

	if len(patch) > 0 {
		if err := ctl.Usuarios.PatchUser(ctx, token, userID, patch); err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Error al actualizar el usuario: "+err.Error())
		}
	}

	// Sincronización local según selección de roles
	if req.Roles != nil {
		err = ctl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if contieneRol(seleccion, "organizador") {
				if err := ctl.upsertOrganizador(tx, ci, userID); err != nil {
					return err
				}
				if req.Talleres != nil {
					if err := sincronizarTalleres(tx, ci, *req.Talleres); err != nil {
						return err
					}
				}
			} else {
				// Ya no es organizador: limpiar pivot y desactivar
				if err := sincronizarTalleres(tx, ci, nil); err != nil {
					return err
				}
				if err := tx.Model(&organizadorModel.OrganizadorModel{}).
					Where("ci = ?", ci).
					Update("activo", false).Error; err != nil {
					return err
				}
			}

			if contieneRol(seleccion, "docente") {
				return ctl.upsertDocente(tx, ci, userID)
			}
			return tx.Model(&docenteModel.DocenteModel{}).
				Where("ci = ?", ci).
				Update("activo", false).Error
		})
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error al actualizar el usuario")
		}
	} else if req.Talleres != nil {
		if err := sincronizarTalleres(ctl.DB.WithContext(ctx), ci, *req.Talleres); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron sincronizar los talleres")
		}
	}

	return helper.JsonOK(c, "Usuario actualizado correctamente.", nil)
}

/* ================= Baja / restauración ================= */

func (ctl *OrganizadorController) Delete(c *fiber.Ctx) error {
	ci := c.Params("ci")
	res := ctl.DB.WithContext(c.UserContext()).
		Model(&organizadorModel.OrganizadorModel{}).
		Where("ci = ?", ci).
		Update("activo", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo desactivar el organizador")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Organizador no encontrado")
	}
	return helper.JsonOK(c, "Organizador desactivado.", nil)
}

func (ctl *OrganizadorController) Restore(c *fiber.Ctx) error {
	ci := c.Params("ci")

	var org organizadorModel.OrganizadorModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Scopes(organizadorModel.PorEstado("todos")).
		Where("ci = ?", ci).
		First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Organizador no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar el organizador")
	}

	org.Activo = true
	if err := ctl.DB.WithContext(c.UserContext()).Save(&org).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo restaurar el organizador")
	}
	return helper.JsonOK(c, "Organizador restaurado.", org)
}

/* ================= Autocomplete de usuarios remotos ================= */

// BuscarUsuarios responde GET /admin/organizadores/buscar-usuarios?q=.
// Cualquier falla devuelve lista vacía con 200 para no romper el modal.
func (ctl *OrganizadorController) BuscarUsuarios(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 2 {
		return c.JSON([]fiber.Map{})
	}

	token := middlewares.TokenFrom(c)
	ctx := c.UserContext()

	proyecto, err := ctl.Usuarios.GetProjectByClave(ctx, token, ctl.ProyectoClave)
	if err != nil || proyecto.ID <= 0 {
		return c.JSON([]fiber.Map{})
	}

	params := url.Values{}
	params.Set("busqueda", q)
	params.Set("per_page", "8")
	usuarios, err := ctl.Usuarios.GetProjectUsers(ctx, token, proyecto.ID, params)
	if err != nil {
		return c.JSON([]fiber.Map{})
	}

	items := make([]fiber.Map, 0, len(usuarios))
	for _, u := range usuarios {
		if u.ID == 0 {
			continue
		}
		items = append(items, fiber.Map{"id": u.ID, "name": u.Name, "email": u.Email})
	}
	return c.JSON(items)
}

/* ================= Helpers ================= */

// resolverRoles traduce claves de rol a IDs dentro del proyecto configurado.
func (ctl *OrganizadorController) resolverRoles(ctx context.Context, token string, claves []string) (int64, []int64, error) {
	proyecto, err := ctl.Usuarios.GetProjectByClave(ctx, token, ctl.ProyectoClave)
	if err != nil || proyecto.ID <= 0 {
		return 0, nil, errors.New("No se pudo resolver el proyecto destino.")
	}

	vistos := map[string]bool{}
	var ids []int64
	for _, clave := range claves {
		clave = strings.ToLower(clave)
		if vistos[clave] {
			continue
		}
		vistos[clave] = true
		rol, err := ctl.Usuarios.GetRoleByClaveAndProyecto(ctx, token, clave, proyecto.ID)
		if err != nil || rol.ID <= 0 {
			return 0, nil, fmt.Errorf("Rol '%s' no encontrado en el proyecto.", clave)
		}
		ids = append(ids, rol.ID)
	}
	return proyecto.ID, ids, nil
}

// validarTalleres chequea que todos los IDs existan y estén activos.
func (ctl *OrganizadorController) validarTalleres(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	var n int64
	if err := ctl.DB.WithContext(ctx).
		Model(&tallerModel.TallerModel{}).
		Where("id IN ? AND activo = ?", ids, true).
		Count(&n).Error; err != nil {
		return errors.New("no se pudieron validar los talleres")
	}
	if n != int64(len(unicos(ids))) {
		return errors.New("algún taller no existe o está inactivo")
	}
	return nil
}

func (ctl *OrganizadorController) upsertOrganizador(tx *gorm.DB, ci string, userID int64) error {
	var org organizadorModel.OrganizadorModel
	err := tx.Scopes(organizadorModel.PorEstado("todos")).Where("ci = ?", ci).First(&org).Error
	switch {
	case err == nil:
		org.Activo = true
		org.UserID = &userID
		return tx.Save(&org).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(&organizadorModel.OrganizadorModel{CI: ci, UserID: &userID, Activo: true}).Error
	default:
		return err
	}
}

func (ctl *OrganizadorController) upsertDocente(tx *gorm.DB, ci string, userID int64) error {
	var doc docenteModel.DocenteModel
	err := tx.Scopes(docenteModel.PorEstado("todos")).Where("ci = ?", ci).First(&doc).Error
	switch {
	case err == nil:
		doc.Activo = true
		doc.UserID = &userID
		return tx.Save(&doc).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(&docenteModel.DocenteModel{CI: ci, UserID: &userID, Activo: true}).Error
	default:
		return err
	}
}

// sincronizarTalleres deja la pivot exactamente con los IDs dados.
func sincronizarTalleres(tx *gorm.DB, ci string, ids []int64) error {
	if err := tx.Where("ci_organizador = ?", ci).
		Delete(&organizadorModel.TallerOrganizadorModel{}).Error; err != nil {
		return err
	}
	for _, id := range unicos(ids) {
		if err := tx.Create(&organizadorModel.TallerOrganizadorModel{TallerID: id, CIOrganizador: ci}).Error; err != nil {
			return err
		}
	}
	return nil
}

func contieneRol(roles []string, clave string) bool {
	for _, r := range roles {
		if strings.EqualFold(r, clave) {
			return true
		}
	}
	return false
}

func rolIDs(roles []usuariosapi.Rol) []int64 {
	ids := make([]int64, 0, len(roles))
	for _, r := range roles {
		if r.ID > 0 {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func proyectoIDs(ps []usuariosapi.Proyecto) []int64 {
	ids := make([]int64, 0, len(ps))
	for _, p := range ps {
		if p.ID > 0 {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func unionIDs(a, b []int64) []int64 {
	vistos := map[int64]bool{}
	out := make([]int64, 0, len(a)+len(b))
	for _, id := range append(a, b...) {
		if id > 0 && !vistos[id] {
			vistos[id] = true
			out = append(out, id)
		}
	}
	return out
}

func unicos(ids []int64) []int64 {
	return unionIDs(ids, nil)
}
