package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// Test MongoDB
	fmt.Println("Testing MongoDB connection...")
	mongoURI := os.Getenv("MONGO_URI")
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("MongoDB connection failed:", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(context.Background(), nil); err != nil {
		log.Fatal("MongoDB ping failed:", err)
	}
	fmt.Println("✅ MongoDB connected successfully!")

	httpClient := &http.Client{Timeout: 5 * time.Second}

	// Test User service
	fmt.Println("\nTesting User service...")
	userURL := os.Getenv("USER_SERVICE_URL")
	if userURL == "" {
		log.Fatal("USER_SERVICE_URL missing in .env")
	}
	if err := checkService(httpClient, userURL); err != nil {
		log.Fatal("User service unreachable:", err)
	}
	fmt.Println("✅ User service reachable!")

	// Test Catalog service
	fmt.Println("\nTesting Catalog service...")
	catalogURL := os.Getenv("CATALOG_SERVICE_URL")
	if catalogURL == "" {
		log.Fatal("CATALOG_SERVICE_URL missing in .env")
	}
	if err := checkService(httpClient, catalogURL); err != nil {
		log.Fatal("Catalog service unreachable:", err)
	}
	fmt.Println("✅ Catalog service reachable!")

	fmt.Println("\n🎉 All systems ready! You can start the API.")
	fmt.Printf("\nUpstreams:\n  Users:   %s\n  Catalog: %s\n", userURL, catalogURL)
}

func checkService(client *http.Client, baseURL string) error {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("health returned status %d", resp.StatusCode)
	}
	return nil
}
