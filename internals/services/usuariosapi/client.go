// Cliente HTTP del servicio de usuarios/roles (Bearer token). Maneja login,
// lookup de proyectos/roles por clave y altas/patches no destructivos de
// usuarios. Las fallas de escritura siempre se propagan con el mensaje remoto.
package usuariosapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Rol struct {
	ID     int64  `json:"id"`
	Clave  string `json:"clave"`
	Nombre string `json:"nombre"`
}

type Proyecto struct {
	ID     int64  `json:"id"`
	Clave  string `json:"clave"`
	Nombre string `json:"nombre"`
	Roles  []Rol  `json:"roles"`
}

type Usuario struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Telefono  string     `json:"telefono"`
	Activo    bool       `json:"activo"`
	Roles     []Rol      `json:"roles"`
	Proyectos []Proyecto `json:"proyectos"`
}

// RolesEnProyecto devuelve las claves de rol (minúsculas) del usuario dentro
// del proyecto con la clave dada, o nil si no pertenece al proyecto.
func (u *Usuario) RolesEnProyecto(clave string) []string {
	for _, p := range u.Proyectos {
		if p.Clave != clave {
			continue
		}
		claves := make([]string, 0, len(p.Roles))
		for _, r := range p.Roles {
			if r.Clave != "" {
				claves = append(claves, strings.ToLower(r.Clave))
			}
		}
		return claves
	}
	return nil
}

// APIError conserva el status y el mensaje del servicio remoto.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

/* ===================== auth ===================== */

// Login pide un token a POST /api/auth/token.
func (c *Client) Login(ctx context.Context, email, password, deviceName string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/token", "", map[string]any{
		"email":       email,
		"password":    password,
		"device_name": deviceName,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", &APIError{Status: http.StatusBadGateway, Message: "token inválido"}
	}
	return out.Token, nil
}

// Logout revoca el token actual. Best effort: el caller suele ignorar el error.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

// Me devuelve el usuario autenticado con proyectos[].roles[].
func (c *Client) Me(ctx context.Context, token string) (*Usuario, error) {
	var u Usuario
	if err := c.do(ctx, http.MethodGet, "/api/user", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

/* ===================== usuarios ===================== */

func (c *Client) GetUser(ctx context.Context, token string, id int64) (*Usuario, error) {
	var u Usuario
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/user/%d", id), token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type CrearUsuario struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Password             string  `json:"password"`
	PasswordConfirmation string  `json:"password_confirmation"`
	Roles                []int64 `json:"roles"`
	Proyectos            []int64 `json:"proyectos"`
	Activo               bool    `json:"activo"`
}

func (c *Client) CreateUser(ctx context.Context, token string, in CrearUsuario) (*Usuario, error) {
	var u Usuario
	if err := c.do(ctx, http.MethodPost, "/api/user", token, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// PatchUser hace el merge no destructivo: el payload trae la unión de roles y
// proyectos ya calculada por el caller.
func (c *Client) PatchUser(ctx context.Context, token string, id int64, patch map[string]any) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/user/%d", id), token, patch, nil)
}

/* ===================== proyectos / roles ===================== */

func (c *Client) GetProjectByClave(ctx context.Context, token, clave string) (*Proyecto, error) {
	var p Proyecto
	if err := c.do(ctx, http.MethodGet, "/api/project/clave/"+url.PathEscape(clave), token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetRoleByClaveAndProyecto(ctx context.Context, token, clave string, proyectoID int64) (*Rol, error) {
	var r Rol
	path := fmt.Sprintf("/api/role/clave/%s/proyecto/%d", url.PathEscape(clave), proyectoID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetProjectUsers lista usuarios del proyecto. params admite busqueda/per_page.
func (c *Client) GetProjectUsers(ctx context.Context, token string, proyectoID int64, params url.Values) ([]Usuario, error) {
	path := fmt.Sprintf("/api/project/%d/users", proyectoID)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	// La API puede devolver lista plana o paginada ({data:[...]}).
	var out struct {
		Data []Usuario `json:"data"`
	}
	raw := json.RawMessage{}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &out); err == nil && out.Data != nil {
		return out.Data, nil
	}
	var plain []Usuario
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}
	return nil, &APIError{Status: http.StatusBadGateway, Message: "respuesta de usuarios inválida"}
}

/* ===================== plumbing ===================== */

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var detalle struct {
			Message string          `json:"message"`
			Errors  json.RawMessage `json:"errors"`
		}
		_ = json.NewDecoder(res.Body).Decode(&detalle)
		msg := detalle.Message
		if len(detalle.Errors) > 0 {
			msg = string(detalle.Errors)
		}
		if msg == "" {
			msg = fmt.Sprintf("api usuarios: %s %s -> %d", method, path, res.StatusCode)
		}
		return &APIError{Status: res.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
