// Package codigo asigna códigos legibles secuenciales (FIN-001, L-01, PRO-001...).
//
// La secuencia es best-effort, no libre de colisiones: la búsqueda del código
// más alto y la inserción no comparten transacción, así que dos creaciones
// concurrentes en el mismo alcance pueden calcular el mismo código y chocar
// contra el constraint único. El caller debe tratar domain.ErrDuplicado como
// condición reintentable (ver Reintentar).
package codigo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agrogest/AgroGest-api/internal/domain"
)

// Prefijos y anchos de numeración por entidad.
const (
	PrefijoFinca      = "FIN"
	PrefijoLote       = "L"
	PrefijoProducto   = "PRO"
	PrefijoTarea      = "TAR"
	PrefijoMaquinaria = "MAQ"

	AnchoEstandar = 3 // FIN-001, PRO-001, TAR-001, MAQ-001
	AnchoLote     = 2 // L-01
)

// MaxReintentos de creación tras colisión de código (ErrDuplicado).
const MaxReintentos = 3

// Siguiente calcula el próximo código a partir del más alto existente en el
// alcance. Con maxExistente vacío la secuencia arranca en 1. Si el sufijo del
// código existente no parsea como entero (dato malformado), también arranca
// en 1: el fallback solo afecta al próximo código, nunca a registros existentes.
func Siguiente(prefijo string, ancho int, maxExistente string) string {
	seq := 1
	if maxExistente != "" {
		if n, ok := sufijoNumerico(maxExistente); ok {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%0*d", prefijo, ancho, seq)
}

// sufijoNumerico extrae el entero posterior al último guion del código.
func sufijoNumerico(codigo string) (int, bool) {
	idx := strings.LastIndex(codigo, "-")
	if idx < 0 || idx == len(codigo)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(codigo[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Reintentar ejecuta fn hasta MaxReintentos veces mientras falle con
// ErrDuplicado (colisión de código entre creaciones concurrentes). fn debe
// recalcular el código en cada intento. Cualquier otro error corta de inmediato.
func Reintentar(fn func() error) error {
	var err error
	for i := 0; i < MaxReintentos; i++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrDuplicado) {
			return err
		}
	}
	return err
}
