package notification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-lite/internal/application/notification"
	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

func TestAdd_AsignaIDTimestampYNoLeido(t *testing.T) {
	log := notification.NewLog()

	rec := log.Add(entity.NotificationRecord{
		Title:   "Producto agregado",
		Message: "Teclado agregado al inventario",
		Type:    entity.NotificationSuccess,
	})

	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Timestamp.IsZero())
	assert.False(t, rec.Read)
	assert.Equal(t, 1, log.UnreadCount())
}

func TestAdd_ConservaIDYTimestampSiVienen(t *testing.T) {
	log := notification.NewLog()
	ts := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	rec := log.Add(entity.NotificationRecord{ID: "n-1", Timestamp: ts, Type: entity.NotificationInfo})

	assert.Equal(t, "n-1", rec.ID)
	assert.Equal(t, ts, rec.Timestamp)
}

func TestMarkAsRead(t *testing.T) {
	log := notification.NewLog()
	rec := log.Add(entity.NotificationRecord{Title: "x", Type: entity.NotificationInfo})

	require.True(t, log.MarkAsRead(rec.ID))
	assert.Equal(t, 0, log.UnreadCount())

	// Solo Read cambia; el resto del registro queda intacto
	list := log.List()
	require.Len(t, list, 1)
	assert.Equal(t, rec.Title, list[0].Title)
	assert.Equal(t, rec.Timestamp, list[0].Timestamp)
	assert.True(t, list[0].Read)

	assert.False(t, log.MarkAsRead("no-existe"), "id inexistente es no-op")
}

func TestRemove(t *testing.T) {
	log := notification.NewLog()
	a := log.Add(entity.NotificationRecord{Title: "a", Type: entity.NotificationInfo})
	b := log.Add(entity.NotificationRecord{Title: "b", Type: entity.NotificationInfo})

	require.True(t, log.Remove(a.ID))
	assert.False(t, log.Remove(a.ID), "segundo remove es no-op")

	list := log.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestClearAll(t *testing.T) {
	log := notification.NewLog()
	log.Add(entity.NotificationRecord{Title: "a", Type: entity.NotificationInfo})
	log.Add(entity.NotificationRecord{Title: "b", Type: entity.NotificationWarning})

	log.ClearAll()

	assert.Empty(t, log.List())
	assert.Equal(t, 0, log.UnreadCount())
}

func TestList_DevuelveCopiaEnOrdenDeInsercion(t *testing.T) {
	log := notification.NewLog()
	log.Add(entity.NotificationRecord{Title: "primera", Type: entity.NotificationInfo})
	log.Add(entity.NotificationRecord{Title: "segunda", Type: entity.NotificationInfo})

	list := log.List()
	require.Len(t, list, 2)
	assert.Equal(t, "primera", list[0].Title)
	assert.Equal(t, "segunda", list[1].Title)

	// Mutar la copia no afecta al historial
	list[0].Title = "mutada"
	assert.Equal(t, "primera", log.List()[0].Title)
}
