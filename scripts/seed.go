//go:build ignore

// Seeds a demo member with a small folder tree and a few notes. Run with:
//
//	go run scripts/seed.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/chiawei/notebox/internal/auth"
	"github.com/chiawei/notebox/internal/database"
	"github.com/chiawei/notebox/internal/folders"
	"github.com/chiawei/notebox/internal/notes"
	"github.com/chiawei/notebox/pkg/config"
	"github.com/chiawei/notebox/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	authService := auth.NewService(db)
	folderService := folders.NewService(db)
	noteService := notes.NewService(db, folderService)

	ctx := context.Background()

	email := os.Getenv("SEED_EMAIL")
	if email == "" {
		email = "demo@notebox.local"
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "notebox-demo1"
	}

	result, err := authService.Register(ctx, auth.RegisterInput{
		Name:     "Demo Member",
		Email:    email,
		Password: password,
	})
	if err != nil {
		log.Fatalf("failed to register demo member: %v", err)
	}
	member := result.Member

	work, err := folderService.Create(ctx, member.ID, folders.CreateFolderInput{Name: "Work"})
	if err != nil {
		log.Fatalf("failed to create folder: %v", err)
	}
	projects, err := folderService.Create(ctx, member.ID, folders.CreateFolderInput{
		Name:     "Projects",
		ParentID: &work.ID,
	})
	if err != nil {
		log.Fatalf("failed to create folder: %v", err)
	}
	personal, err := folderService.Create(ctx, member.ID, folders.CreateFolderInput{Name: "Personal"})
	if err != nil {
		log.Fatalf("failed to create folder: %v", err)
	}

	seedNotes := []notes.CreateNoteInput{
		{Title: "Weekly sync", Content: "Agenda for Monday's sync.", FolderID: &work.ID},
		{Title: "Launch checklist", Content: "Things left before the launch.", FolderID: &projects.ID},
		{Title: "Reading list", Content: "Books for the next quarter.", FolderID: &personal.ID},
		{Title: "Scratchpad", Content: "Unsorted thoughts."},
	}
	for _, input := range seedNotes {
		if _, err := noteService.Create(ctx, member.ID, input); err != nil {
			log.Fatalf("failed to create note %q: %v", input.Title, err)
		}
	}

	fmt.Println("Seeded demo data:")
	fmt.Printf("  email:    %s\n", email)
	fmt.Printf("  password: %s\n", password)
	fmt.Printf("  token:    %s\n", result.Token)
}
