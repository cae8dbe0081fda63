// Package personas es el pipeline de enriquecimiento compartido por todos los
// listados: cache read-through de personas por CI, enriquecimiento en bloque y
// matching de nombre libre sobre los datos ya enriquecidos.
package personas

import (
	"sync"
	"time"
)

// TTL de cada entrada (positiva o negativa), igual que el cache original.
const CacheTTL = 1800 * time.Second

type entrada struct {
	persona *Persona
	expira  time.Time
}

// Cache es el cache de personas a nivel proceso. Guarda también los misses
// (persona nil) para no repetir llamadas fallidas dentro de la ventana de TTL.
// Requests concurrentes pueden pisarse en la misma clave; last-writer-wins
// alcanza porque todos escriben la misma lectura idempotente del registro.
type Cache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	entradas map[string]entrada
	ahora    func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = CacheTTL
	}
	return &Cache{
		ttl:      ttl,
		entradas: make(map[string]entrada),
		ahora:    time.Now,
	}
}

func claveCI(ci string) string { return "api_personas:persona:" + ci }

// Get devuelve (persona, true) si hay entrada vigente para el CI. Una entrada
// negativa vigente devuelve (nil, true): hit, no hay que ir a la red.
func (c *Cache) Get(ci string) (*Persona, bool) {
	c.mu.RLock()
	e, ok := c.entradas[claveCI(ci)]
	c.mu.RUnlock()
	if !ok || c.ahora().After(e.expira) {
		return nil, false
	}
	return e.persona, true
}

// Set guarda el resultado de una resolución, sea persona o miss (nil).
func (c *Cache) Set(ci string, p *Persona) {
	c.mu.Lock()
	c.entradas[claveCI(ci)] = entrada{persona: p, expira: c.ahora().Add(c.ttl)}
	c.mu.Unlock()
}

// Forget evicta la clave. Se llama cuando una mutación local upsertea los
// datos canónicos de la persona, para que la próxima lectura vea datos frescos
// y no un miss (o copia vieja) de hasta 30 minutos.
func (c *Cache) Forget(ci string) {
	c.mu.Lock()
	delete(c.entradas, claveCI(ci))
	c.mu.Unlock()
}
