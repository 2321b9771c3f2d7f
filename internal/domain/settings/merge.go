// Package settings implementa la resolución de configuración al cargar el
// blob persistido: un merge recursivo entre los valores por defecto y lo que
// haya quedado guardado. Claves presentes en el blob ganan; claves ausentes
// (a cualquier nivel de anidado) se rellenan con el valor por defecto. Esto
// protege contra derivas de esquema entre versiones del blob.
package settings

import (
	"encoding/json"

	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

// MergeWithDefaults combina el JSON persistido con entity.DefaultSettings().
// Un blob vacío o nulo devuelve los valores por defecto. Un blob ilegible
// devuelve los valores por defecto junto con el error de parseo.
func MergeWithDefaults(persisted []byte) (entity.Settings, error) {
	def := entity.DefaultSettings()
	if len(persisted) == 0 || string(persisted) == "null" {
		return def, nil
	}

	var overlay map[string]any
	if err := json.Unmarshal(persisted, &overlay); err != nil {
		return def, err
	}

	base, err := toMap(def)
	if err != nil {
		return def, err
	}

	merged := DeepMerge(base, overlay)

	raw, err := json.Marshal(merged)
	if err != nil {
		return def, err
	}
	// El esquema tipado descarta claves desconocidas del blob.
	out := def
	if err := json.Unmarshal(raw, &out); err != nil {
		return def, err
	}
	return out, nil
}

// DeepMerge devuelve un mapa nuevo donde cada clave de overlay reemplaza a la
// de base; si ambos lados son objetos, el merge desciende recursivamente.
// Ni base ni overlay se mutan.
func DeepMerge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		ov, okOverlay := v.(map[string]any)
		bv, okBase := out[k].(map[string]any)
		if okOverlay && okBase {
			out[k] = DeepMerge(bv, ov)
			continue
		}
		out[k] = v
	}
	return out
}

func toMap(s entity.Settings) (map[string]any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
