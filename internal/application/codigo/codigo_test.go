package codigo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrogest/AgroGest-api/internal/application/codigo"
	"github.com/agrogest/AgroGest-api/internal/domain"
)

// Alcance vacío: la secuencia arranca en 1 con el ancho correspondiente.
func TestSiguiente_AlcanceVacio(t *testing.T) {
	assert.Equal(t, "PRO-001", codigo.Siguiente(codigo.PrefijoProducto, codigo.AnchoEstandar, ""))
	assert.Equal(t, "TAR-001", codigo.Siguiente(codigo.PrefijoTarea, codigo.AnchoEstandar, ""))
	assert.Equal(t, "FIN-001", codigo.Siguiente(codigo.PrefijoFinca, codigo.AnchoEstandar, ""))
}

// Finca sin lotes: el primer lote es L-01 (ancho 2).
func TestSiguiente_PrimerLote(t *testing.T) {
	assert.Equal(t, "L-01", codigo.Siguiente(codigo.PrefijoLote, codigo.AnchoLote, ""))
}

// Incremento normal sobre el código más alto del alcance.
func TestSiguiente_Incrementa(t *testing.T) {
	assert.Equal(t, "PRO-008", codigo.Siguiente(codigo.PrefijoProducto, codigo.AnchoEstandar, "PRO-007"))
	assert.Equal(t, "L-10", codigo.Siguiente(codigo.PrefijoLote, codigo.AnchoLote, "L-09"))
	assert.Equal(t, "TAR-100", codigo.Siguiente(codigo.PrefijoTarea, codigo.AnchoEstandar, "TAR-099"))
}

// El ancho no trunca: pasado 999 el número sigue creciendo.
func TestSiguiente_DesbordaAncho(t *testing.T) {
	assert.Equal(t, "PRO-1000", codigo.Siguiente(codigo.PrefijoProducto, codigo.AnchoEstandar, "PRO-999"))
}

// Sufijo malformado: política de fallback, la secuencia vuelve a 1 en vez de
// fallar la creación. Solo afecta al próximo código, no a los existentes.
func TestSiguiente_SufijoMalformado(t *testing.T) {
	assert.Equal(t, "PRO-001", codigo.Siguiente(codigo.PrefijoProducto, codigo.AnchoEstandar, "PRO-ABC"))
	assert.Equal(t, "PRO-001", codigo.Siguiente(codigo.PrefijoProducto, codigo.AnchoEstandar, "PRO-"))
	assert.Equal(t, "PRO-001", codigo.Siguiente(codigo.PrefijoProducto, codigo.AnchoEstandar, "SINGUION"))
}

// Reintentar: ErrDuplicado se reintenta hasta el tope; otros errores cortan.
func TestReintentar_ColisionReintenta(t *testing.T) {
	intentos := 0
	err := codigo.Reintentar(func() error {
		intentos++
		if intentos < 3 {
			return domain.ErrDuplicado
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, intentos)
}

func TestReintentar_AgotaReintentos(t *testing.T) {
	intentos := 0
	err := codigo.Reintentar(func() error {
		intentos++
		return domain.ErrDuplicado
	})
	assert.ErrorIs(t, err, domain.ErrDuplicado)
	assert.Equal(t, codigo.MaxReintentos, intentos)
}

func TestReintentar_OtroErrorNoReintenta(t *testing.T) {
	intentos := 0
	errBoom := errors.New("boom")
	err := codigo.Reintentar(func() error {
		intentos++
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, intentos)
}
