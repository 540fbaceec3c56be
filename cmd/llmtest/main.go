package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/avila-law/intake-platform/internal/llm"
	"github.com/avila-law/intake-platform/pkg/logging"
)

// Quick manual check that the OpenAI credentials and model work.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := llm.NewClient(apiKey, model, logging.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: "You are the intake assistant for a law firm. Keep responses brief."},
		{Role: llm.RoleUser, Content: "Do you handle work visa cases?"},
	}

	start := time.Now()
	reply, err := client.GenerateCompletion(ctx, messages)
	elapsed := time.Since(start)
	if err != nil {
		log.Fatalf("completion failed: %v", err)
	}

	fmt.Printf("model: %s (%v)\n\n%s\n", model, elapsed.Round(time.Millisecond), reply)
}
