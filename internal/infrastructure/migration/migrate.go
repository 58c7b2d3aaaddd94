// Package migration envuelve golang-migrate para aplicar el esquema de BD.
package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/agrogest/AgroGest-api/pkg/logger"
)

// Migrator aplica las migraciones SQL del directorio configurado.
type Migrator struct {
	m   *migrate.Migrate
	log *logger.Logger
}

// New crea un Migrator a partir del connection string y la ruta de migraciones.
func New(databaseURL, migrationsPath string, log *logger.Logger) (*Migrator, error) {
	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migration: creando instancia: %w", err)
	}
	return &Migrator{m: m, log: log}, nil
}

// Up aplica todas las migraciones pendientes.
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info().Msg("Sin migraciones pendientes")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: up: %w", err)
	}

	version, dirty, err := mg.m.Version()
	if err != nil {
		return fmt.Errorf("migration: obteniendo versión: %w", err)
	}
	mg.log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migraciones aplicadas")
	return nil
}

// Down revierte todas las migraciones.
func (mg *Migrator) Down() error {
	err := mg.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info().Msg("Sin migraciones que revertir")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: down: %w", err)
	}
	mg.log.Info().Msg("Migraciones revertidas")
	return nil
}

// Version devuelve la versión actual del esquema (0 si no hay migraciones aplicadas).
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: obteniendo versión: %w", err)
	}
	return version, dirty, nil
}

// Close libera los recursos de la instancia de migrate.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}
