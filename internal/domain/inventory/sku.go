package inventory

import (
	"fmt"
	"strings"
)

// Longitudes del SKU generado: prefijo de categoría + secuencia con ceros a la izquierda.
const (
	skuPrefixLen   = 3
	skuSequenceLen = 8
)

// GenerateSKU construye un SKU a partir del código de categoría del producto y
// un número de secuencia: las primeras 3 letras de la categoría en mayúsculas
// seguidas de la secuencia con padding de ceros (ej. "ELE00000042").
func GenerateSKU(categoryCode string, sequence int) string {
	prefix := strings.ToUpper(strings.TrimSpace(categoryCode))
	prefix = strings.ReplaceAll(prefix, " ", "")
	if len(prefix) > skuPrefixLen {
		prefix = prefix[:skuPrefixLen]
	}
	if prefix == "" {
		prefix = "SKU"
	}
	return fmt.Sprintf("%s%0*d", prefix, skuSequenceLen, sequence)
}
