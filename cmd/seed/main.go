package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"quizbank/internal/config"
	"quizbank/internal/repository"
)

func main() {
	force := flag.Bool("force", false, "insert sample questions even when the table is not empty")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := repository.NewPool(ctx, cfg.DB.URL, repository.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := repository.NewQuestionRepo(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	if *force {
		for _, in := range repository.SampleQuestions {
			q, err := repo.Create(ctx, in)
			if err != nil {
				log.Fatalf("Failed to insert question: %v", err)
			}
			fmt.Printf("Inserted question %d: %s\n", q.ID, q.Question)
		}
		return
	}

	seeded, err := repo.SeedIfEmpty(ctx)
	if err != nil {
		log.Fatalf("Failed to seed questions: %v", err)
	}
	if !seeded {
		fmt.Println("Table already has questions, nothing to do (use -force to append)")
		return
	}
	fmt.Printf("Seeded %d sample questions\n", len(repository.SampleQuestions))
}
