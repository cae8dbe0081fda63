// Cliente HTTP del Registro de Personas (servicio externo, dueño de los datos
// de personas y del catálogo de ciudades). Este sistema nunca es fuente de
// verdad de una persona: solo lee, sincroniza vía updateOrCreate y cachea.
package registropersonas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Persona es el registro remoto tal como lo devuelve la API.
type Persona struct {
	CI              string `json:"ci"`
	Nombre          string `json:"nombre"`
	SegundoNombre   string `json:"segundoNombre"`
	Apellido        string `json:"apellido"`
	SegundoApellido string `json:"segundoApellido"`
	Telefono        string `json:"telefono"`
}

// Punteros nil-safe: devuelven nil si la persona no resolvió o el campo vino
// vacío, para que las entidades enriquecidas muestren null y no "".
func (p *Persona) NombrePtr() *string          { return optStr(p, func(x *Persona) string { return x.Nombre }) }
func (p *Persona) SegundoNombrePtr() *string   { return optStr(p, func(x *Persona) string { return x.SegundoNombre }) }
func (p *Persona) ApellidoPtr() *string        { return optStr(p, func(x *Persona) string { return x.Apellido }) }
func (p *Persona) SegundoApellidoPtr() *string { return optStr(p, func(x *Persona) string { return x.SegundoApellido }) }
func (p *Persona) TelefonoPtr() *string        { return optStr(p, func(x *Persona) string { return x.Telefono }) }

func optStr(p *Persona, f func(*Persona) string) *string {
	if p == nil {
		return nil
	}
	if v := f(p); v != "" {
		return &v
	}
	return nil
}

type Ciudad struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

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

// GetPersona consulta GET /personas/{ci}. Devuelve (nil, nil) si el servicio
// respondió 200 con persona:null; error en cualquier otra falla.
func (c *Client) GetPersona(ctx context.Context, ci string) (*Persona, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/personas/"+ci, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("registro de personas: GET /personas/%s -> %d", ci, res.StatusCode)
	}

	var body struct {
		Persona *Persona `json:"persona"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("registro de personas: body inválido: %w", err)
	}
	return body.Persona, nil
}

// PersonaInput es el payload de POST /personas/updateOrCreate.
type PersonaInput struct {
	CI              string  `json:"ci"`
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	SegundoNombre   *string `json:"segundoNombre,omitempty"`
	SegundoApellido *string `json:"segundoApellido,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
}

// UpdateOrCreatePersona sincroniza la persona canónica en el registro.
// A diferencia de las lecturas, acá la falla SÍ se propaga al caller.
func (c *Client) UpdateOrCreatePersona(ctx context.Context, in PersonaInput) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/personas/updateOrCreate", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("registro de personas: %s", remoteMessage(res.Body, "error al crear/actualizar persona"))
	}
	return nil
}

// GetCiudades trae el catálogo completo de ciudades.
func (c *Client) GetCiudades(ctx context.Context) ([]Ciudad, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/ciudades", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("registro de personas: GET /ciudades -> %d", res.StatusCode)
	}

	var body struct {
		Ciudades []Ciudad `json:"ciudades"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Ciudades, nil
}

// remoteMessage intenta rescatar el "message" del body de error remoto.
func remoteMessage(r io.Reader, fallback string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return fallback
}
