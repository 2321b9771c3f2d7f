package settings_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-lite/internal/domain/entity"
	"github.com/jhoicas/almacen-lite/internal/domain/settings"
)

// Blob vacío → configuración por defecto completa.
func TestMergeWithDefaults_BlobVacio(t *testing.T) {
	out, err := settings.MergeWithDefaults(nil)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), out)

	out, err = settings.MergeWithDefaults([]byte("null"))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), out)
}

// Claves presentes en el blob ganan; las ausentes se rellenan con el default.
func TestMergeWithDefaults_ClavePresenteGana(t *testing.T) {
	blob := []byte(`{"currency":"USD","theme":"dark"}`)
	out, err := settings.MergeWithDefaults(blob)
	require.NoError(t, err)

	assert.Equal(t, "USD", out.Currency)
	assert.Equal(t, "dark", out.Theme)
	// Lo no persistido conserva el default
	assert.Equal(t, entity.DefaultLanguage, out.Language)
	assert.Equal(t, 10, out.Display.ItemsPerPage)
}

// El merge desciende en objetos anidados: dentro de notifications se conserva
// lo persistido y se rellena lo ausente.
func TestMergeWithDefaults_AnidadoParcial(t *testing.T) {
	blob := []byte(`{"notifications":{"sound":false,"email":true}}`)
	out, err := settings.MergeWithDefaults(blob)
	require.NoError(t, err)

	assert.False(t, out.Notifications.Sound, "persistido debe ganar")
	assert.True(t, out.Notifications.Email, "persistido debe ganar")
	assert.True(t, out.Notifications.LowStock, "ausente debe venir del default")
	assert.True(t, out.Notifications.Expiry, "ausente debe venir del default")
}

// Ida y vuelta: todo lo guardado sobrevive al merge tal cual.
func TestMergeWithDefaults_RoundTrip(t *testing.T) {
	s := entity.DefaultSettings()
	s.Currency = "EUR"
	s.Display.CompactMode = true
	s.Colors.Primary = "#000000"
	s.Backup.Interval = "weekly"

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	out, err := settings.MergeWithDefaults(raw)
	require.NoError(t, err)
	assert.Equal(t, s, out)
}

// Las claves desconocidas del blob no rompen el esquema tipado.
func TestMergeWithDefaults_ClavesDesconocidas(t *testing.T) {
	blob := []byte(`{"legacyField":42,"currency":"MXN"}`)
	out, err := settings.MergeWithDefaults(blob)
	require.NoError(t, err)
	assert.Equal(t, "MXN", out.Currency)
}

// Blob corrupto → defaults + error observable.
func TestMergeWithDefaults_BlobCorrupto(t *testing.T) {
	out, err := settings.MergeWithDefaults([]byte("{no es json"))
	assert.Error(t, err)
	assert.Equal(t, entity.DefaultSettings(), out)
}

func TestDeepMerge_NoMutaEntradas(t *testing.T) {
	base := map[string]any{"a": map[string]any{"x": 1, "y": 2}}
	overlay := map[string]any{"a": map[string]any{"y": 3}}

	out := settings.DeepMerge(base, overlay)

	assert.Equal(t, map[string]any{"x": 1, "y": 3}, out["a"])
	assert.Equal(t, 2, base["a"].(map[string]any)["y"], "base no debe mutarse")
}

// Un escalar persistido reemplaza a un objeto por defecto (gana lo persistido,
// aunque el tipo no coincida).
func TestDeepMerge_EscalarReemplazaObjeto(t *testing.T) {
	base := map[string]any{"a": map[string]any{"x": 1}}
	overlay := map[string]any{"a": "plano"}

	out := settings.DeepMerge(base, overlay)
	assert.Equal(t, "plano", out["a"])
}
