package personas

import (
	"context"

	"talleres_backend/internals/services/registropersonas"
)

// Persona es el registro remoto del Registro de Personas.
type Persona = registropersonas.Persona

// Fuente es lo único que el pipeline necesita del cliente del registro.
type Fuente interface {
	GetPersona(ctx context.Context, ci string) (*Persona, error)
}

// Resolver resuelve CI → persona con cache read-through. Cualquier falla del
// servicio remoto (transporte, non-2xx, body inválido) se degrada a nil y se
// cachea como miss: las lecturas nunca fallan hacia el caller.
type Resolver struct {
	fuente Fuente
	cache  *Cache
}

func NewResolver(fuente Fuente, cache *Cache) *Resolver {
	if cache == nil {
		cache = NewCache(CacheTTL)
	}
	return &Resolver{fuente: fuente, cache: cache}
}

// Persona devuelve la persona para el CI, o nil si no existe o el registro no
// respondió. Un hit de cache (positivo o negativo) no toca la red.
func (r *Resolver) Persona(ctx context.Context, ci string) *Persona {
	if ci == "" {
		return nil
	}
	if p, ok := r.cache.Get(ci); ok {
		return p
	}
	p, err := r.fuente.GetPersona(ctx, ci)
	if err != nil {
		p = nil
	}
	r.cache.Set(ci, p)
	return p
}

// Invalidar evicta la entrada del CI tras un upsert local de esa persona.
func (r *Resolver) Invalidar(ci string) {
	r.cache.Forget(ci)
}
