// Comando de migraciones: agrogest-migrate [up|down|version]
package main

import (
	"fmt"
	"os"

	"github.com/agrogest/AgroGest-api/internal/infrastructure/migration"
	"github.com/agrogest/AgroGest-api/pkg/config"
	"github.com/agrogest/AgroGest-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate [up|down|version]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	migrator, err := migration.New(cfg.DB.ConnectionString(), cfg.App.MigrationsPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer migrator.Close()

	switch os.Args[1] {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("migrate up")
		}
	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal().Err(err).Msg("migrate down")
		}
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("migrate version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión del esquema")
	default:
		fmt.Fprintf(os.Stderr, "subcomando desconocido: %s\n", os.Args[1])
		os.Exit(2)
	}
}
