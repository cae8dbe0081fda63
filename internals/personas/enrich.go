package personas

import "context"

// Enriquecer resuelve en bloque las personas de una colección de entidades.
// Junta el set de CIs distintos (salteando vacíos), resuelve cada uno UNA sola
// vez y aplica el resultado a cada entidad vía attach. Con N entidades que
// referencian K≤N CIs distintos se hacen a lo sumo K lookups. El orden de la
// colección no se toca; las entidades cuyo CI no resolvió reciben nil.
func Enriquecer[T any](ctx context.Context, r *Resolver, items []T, ci func(T) string, attach func(T, *Persona)) {
	porCI := make(map[string]*Persona)
	for _, it := range items {
		k := ci(it)
		if k == "" {
			continue
		}
		if _, visto := porCI[k]; !visto {
			porCI[k] = r.Persona(ctx, k)
		}
	}
	for _, it := range items {
		attach(it, porCI[ci(it)])
	}
}
