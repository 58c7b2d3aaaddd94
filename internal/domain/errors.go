package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNoEncontrado        = errors.New("recurso no encontrado")
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrEmailYaRegistrado   = errors.New("el email ya está registrado")
	ErrEntradaInvalida     = errors.New("entrada inválida")
	ErrDuplicado           = errors.New("recurso duplicado")
	ErrNoAutorizado        = errors.New("no autorizado")
	ErrAccesoDenegado      = errors.New("acceso denegado")
	ErrStockInsuficiente   = errors.New("stock insuficiente")
	ErrTareaFinalizada     = errors.New("la tarea ya fue ejecutada o cancelada")
	ErrLoteRequerido       = errors.New("una tarea a nivel de lote requiere un lote")
)
