// Package store implementa el almacén de entidades: fuente única de verdad
// para productos y configuración. Toda lectura y escritura pasa por aquí; el
// estado vive en memoria y cada mutación serializa el subconjunto persistido
// (productos, configuración, idioma) hacia el Persister configurado.
//
// El modelo es de un solo escritor lógico: todas las operaciones se
// serializan con un mutex, de modo que dos mutaciones nunca se intercalan y
// cada escritura persistida refleja todas las mutaciones previas.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/almacen-lite/internal/application/notification"
	"github.com/jhoicas/almacen-lite/internal/domain"
	"github.com/jhoicas/almacen-lite/internal/domain/entity"
	"github.com/jhoicas/almacen-lite/pkg/logger"
)

// Snapshot subconjunto del estado que se persiste en el blob local.
type Snapshot struct {
	Products []entity.Product
	Settings entity.Settings
	Language string
}

// Persister puerto de persistencia del blob (DIP). La escritura es de mejor
// esfuerzo: un fallo no revierte la mutación en memoria.
type Persister interface {
	Save(Snapshot) error
}

// Option opción de construcción del Store.
type Option func(*Store)

// WithClock reemplaza el reloj (para tests deterministas).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store almacén de productos y configuración.
type Store struct {
	mu       sync.Mutex
	products []entity.Product
	settings entity.Settings
	language string

	notifier  *notification.Log
	persister Persister
	log       *logger.Logger
	now       func() time.Time

	lastPersistErr error

	subs    map[int]chan entity.Settings
	nextSub int
}

// New construye el almacén a partir de un snapshot inicial (normalmente el
// resultado de cargar y fusionar el blob persistido). Se construye una sola
// vez al arranque y se inyecta en quien lo consuma.
func New(snap Snapshot, notifier *notification.Log, persister Persister, log *logger.Logger, opts ...Option) *Store {
	lang := snap.Language
	if lang == "" {
		lang = entity.DefaultLanguage
	}
	s := &Store{
		products:  append([]entity.Product(nil), snap.Products...),
		settings:  snap.Settings,
		language:  lang,
		notifier:  notifier,
		persister: persister,
		log:       log,
		now:       time.Now,
		subs:      make(map[int]chan entity.Settings),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings devuelve la configuración vigente.
func (s *Store) Settings() entity.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Language devuelve el idioma vigente.
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// UpdateSettings reemplaza la configuración completa, persiste y publica la
// nueva configuración a los suscriptores.
func (s *Store) UpdateSettings(cfg entity.Settings) {
	s.mu.Lock()
	s.settings = cfg
	if cfg.Language != "" {
		s.language = cfg.Language
	}
	s.persistLocked()
	s.mu.Unlock()

	s.broadcastSettings(cfg)
}

// ResetSettings restaura los valores por defecto, persiste y publica.
func (s *Store) ResetSettings() entity.Settings {
	def := entity.DefaultSettings()
	s.UpdateSettings(def)
	return def
}

// SubscribeSettings registra un suscriptor al cambio de configuración.
// Devuelve el canal de entrega y la función para cancelar la suscripción.
// La entrega es no bloqueante: si el suscriptor no consume, se descarta el
// valor (siempre puede re-leer con Settings()).
func (s *Store) SubscribeSettings() (<-chan entity.Settings, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan entity.Settings, 4)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Store) broadcastSettings(cfg entity.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- cfg:
		default:
		}
	}
}

// LastPersistErr devuelve el último fallo de persistencia (nil si la última
// escritura fue exitosa). Permite a la capa HTTP exponer el riesgo de pérdida
// de datos sin abortar mutaciones.
func (s *Store) LastPersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPersistErr
}

// persistLocked serializa el snapshot actual. Se llama con el mutex tomado al
// final de cada mutación, de modo que las escrituras salen en el mismo orden
// que las mutaciones.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	snap := Snapshot{
		Products: append([]entity.Product(nil), s.products...),
		Settings: s.settings,
		Language: s.language,
	}
	if err := s.persister.Save(snap); err != nil {
		s.lastPersistErr = fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		if s.log != nil {
			s.log.Error().Err(err).Msg("escritura del blob persistido")
		}
		return
	}
	s.lastPersistErr = nil
}
