// Package notification implementa el historial de notificaciones en memoria.
// Tiene ciclo de vida propio, independiente del almacén de productos: las
// entradas referencian productos solo por nombre, sin clave foránea ni
// borrado en cascada. El historial es efímero: no forma parte del blob
// persistido y un reinicio lo deja vacío.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

// Log historial de notificaciones append-only con estado leído/no-leído.
type Log struct {
	mu      sync.Mutex
	records []entity.NotificationRecord
	now     func() time.Time
}

// NewLog construye un historial vacío.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Add agrega un registro. Si no trae ID, timestamp o estado, se asignan aquí
// (ID fresco, timestamp actual, no leído). Devuelve el registro final.
func (l *Log) Add(rec entity.NotificationRecord) entity.NotificationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = l.now()
	}
	rec.Read = false
	l.records = append(l.records, rec)
	return rec
}

// MarkAsRead marca la notificación como leída. Devuelve false si no existe.
func (l *Log) MarkAsRead(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			l.records[i].Read = true
			return true
		}
	}
	return false
}

// Remove elimina la notificación. Devuelve false si no existe (no es error).
func (l *Log) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return true
		}
	}
	return false
}

// ClearAll vacía el historial incondicionalmente.
func (l *Log) ClearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}

// UnreadCount cantidad de notificaciones sin leer.
func (l *Log) UnreadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, r := range l.records {
		if !r.Read {
			n++
		}
	}
	return n
}

// List devuelve una copia del historial en orden de inserción.
func (l *Log) List() []entity.NotificationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]entity.NotificationRecord, len(l.records))
	copy(out, l.records)
	return out
}
