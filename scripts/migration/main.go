package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"

	"dealscope-backend/config"
	"dealscope-backend/db"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}

	database, err := sql.Open("mysql", cfg.MySQL.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := database.Ping(); err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Migration completed.")
}
