// Package barcode genera la imagen PNG del código de barras de un producto
// (Code 128) para imprimir o mostrar en pantalla.
package barcode

import (
	"bytes"
	"image/png"

	bcode "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"

	"github.com/jhoicas/almacen-lite/internal/domain"
)

// PNG codifica el texto como Code 128 escalado al tamaño pedido.
func PNG(code string, width, height int) ([]byte, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	bc, err := code128.Encode(code)
	if err != nil {
		return nil, err
	}
	scaled, err := bcode.Scale(bc, width, height)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
