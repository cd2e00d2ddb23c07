package inventory

import "strings"

// Catálogo de motivos por defecto, indexado por clave de operación. Los
// placeholders (:quantity, :available, :id, :date, ...) se interpolan con
// Reason. Si el caller pasa un motivo explícito, el catálogo no se consulta.
var reasonCatalog = map[string]string{
	"stock.first":       "Registro inicial de stock",
	"stock.rollback":    "Rollback del movimiento ID :id (fecha :date)",
	"stock.moved":       "Stock trasladado a la bodega :warehouse",
	"checkout":          "Stock tomado por checkout de la transacción :id",
	"sold":              "Transacción :id marcada como vendida",
	"sold-amount":       "Venta directa de :quantity unidades (transacción :id)",
	"returned":          "Devolución total de la transacción :id",
	"returned-partial":  "Devolución parcial de :quantity unidades (transacción :id)",
	"reserved":          "Stock reservado por la transacción :id",
	"back-order":        "Pedido pendiente de stock (back-order) en la transacción :id",
	"back-order-filled": "Back-order de la transacción :id cubierto con stock",
	"ordered":           "Orden de compra registrada en la transacción :id",
	"received":          "Recepción total de la orden de la transacción :id",
	"received-partial":  "Recepción parcial de :quantity unidades (transacción :id)",
	"hold":              "Stock retenido por la transacción :id",
	"released":          "Liberación total del stock retenido (transacción :id)",
	"released-partial":  "Liberación parcial de :quantity unidades (transacción :id)",
	"removed":           "Stock removido por la transacción :id",
	"removed-partial":   "Remoción parcial de :quantity unidades (transacción :id)",
	"cancelled":         "Transacción :id cancelada",
}

// Reason resuelve el motivo por defecto para una clave e interpola los
// placeholders recibidos (":nombre" -> valor). Claves desconocidas devuelven
// la clave tal cual para que el movimiento nunca quede sin motivo.
func Reason(key string, placeholders map[string]string) string {
	msg, ok := reasonCatalog[key]
	if !ok {
		return key
	}
	return Interpolate(msg, placeholders)
}

// Interpolate reemplaza cada placeholder ":nombre" presente en el mensaje.
func Interpolate(msg string, placeholders map[string]string) string {
	for name, value := range placeholders {
		msg = strings.ReplaceAll(msg, ":"+name, value)
	}
	return msg
}
