// Seeds the roster tables with two demo squads so a match session can be
// exercised locally without a backend export.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/noompupp/paknam-match-tracker/internal/database"
	"github.com/noompupp/paknam-match-tracker/internal/roster"
)

func main() {
	log.Info("Starting roster seeder...")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}
	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := roster.New(db)

	teams := []roster.Team{
		{ID: "paknam-fc", Name: "Paknam FC"},
		{ID: "river-side", Name: "Riverside United"},
	}
	for _, t := range teams {
		if err := store.UpsertTeam(t); err != nil {
			log.Fatalf("Failed to seed team %s: %s", t.ID, err)
		}
	}

	players := []roster.Player{
		{ID: 1, TeamID: "paknam-fc", Name: "Anan", Number: 1, Role: "Regular"},
		{ID: 2, TeamID: "paknam-fc", Name: "Boon", Number: 4, Role: "S-Class"},
		{ID: 3, TeamID: "paknam-fc", Name: "Chai", Number: 7, Role: "Starter"},
		{ID: 4, TeamID: "paknam-fc", Name: "Decha", Number: 8, Role: "Regular"},
		{ID: 5, TeamID: "paknam-fc", Name: "Ekkachai", Number: 9, Role: "Regular"},
		{ID: 6, TeamID: "paknam-fc", Name: "Firat", Number: 10, Role: "S-Class"},
		{ID: 7, TeamID: "paknam-fc", Name: "Gan", Number: 11, Role: "Starter"},
		{ID: 8, TeamID: "paknam-fc", Name: "Hiran", Number: 14, Role: "Regular"},
		{ID: 9, TeamID: "paknam-fc", Name: "Itti", Number: 17, Role: "Regular"},
		{ID: 10, TeamID: "paknam-fc", Name: "Jao", Number: 21, Role: "Regular"},
		{ID: 11, TeamID: "river-side", Name: "Kla", Number: 2, Role: "Regular"},
		{ID: 12, TeamID: "river-side", Name: "Lek", Number: 3, Role: "S-Class"},
		{ID: 13, TeamID: "river-side", Name: "Mee", Number: 5, Role: "Starter"},
		{ID: 14, TeamID: "river-side", Name: "Nok", Number: 6, Role: "Regular"},
		{ID: 15, TeamID: "river-side", Name: "Oat", Number: 12, Role: "Regular"},
		{ID: 16, TeamID: "river-side", Name: "Pon", Number: 13, Role: "Regular"},
		{ID: 17, TeamID: "river-side", Name: "Somchai", Number: 15, Role: "Regular"},
		{ID: 18, TeamID: "river-side", Name: "Tawan", Number: 16, Role: "Regular"},
	}
	if err := store.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to seed roster players: %s", err)
	}

	log.Info("Seeding complete", "teams", len(teams), "players", len(players))
}
