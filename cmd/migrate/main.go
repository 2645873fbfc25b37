// Comando de migraciones: aplica los archivos SQL de ./migrations con goose.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate status
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/medstock-api/pkg/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("aviso: .env no encontrado, usando solo variables de entorno: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cargar configuración: %v", err)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./migrations", "directorio con los archivos de migración")
	flag.Parse()

	db, err := sql.Open("postgres", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatalf("abrir conexión: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("cerrar conexión: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping a la BD: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}
	fmt.Printf("goose %s ok\n", command)
}
