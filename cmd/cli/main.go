package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
)

// Operator tool for the storefront. Talks to the same backend API the web
// frontend does.
//
//	cli check                             verify the backend is reachable
//	cli whoami -token <token>             show the account a token belongs to
//	cli seed-products -file products.json bulk-create catalog entries
func main() {
	if len(os.Args) < 2 {
		fmt.Println("expected 'check', 'whoami' or 'seed-products' subcommand")
		os.Exit(1)
	}

	backendURL := os.Getenv("BACKEND_BASE_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8000"
	}
	client := api.New(backendURL, 30*time.Second)

	switch os.Args[1] {
	case "check":
		check(client)
	case "whoami":
		whoamiCmd := flag.NewFlagSet("whoami", flag.ExitOnError)
		token := whoamiCmd.String("token", "", "Bearer token to inspect")
		whoamiCmd.Parse(os.Args[2:])
		if *token == "" {
			fmt.Println("token is required")
			whoamiCmd.PrintDefaults()
			os.Exit(1)
		}
		whoami(client, *token)
	case "seed-products":
		seedCmd := flag.NewFlagSet("seed-products", flag.ExitOnError)
		file := seedCmd.String("file", "", "JSON file with an array of products")
		email := seedCmd.String("email", "", "Admin email")
		password := seedCmd.String("password", "", "Admin password")
		seedCmd.Parse(os.Args[2:])
		if *file == "" || *email == "" || *password == "" {
			fmt.Println("file, email and password are required")
			seedCmd.PrintDefaults()
			os.Exit(1)
		}
		seedProducts(client, *file, *email, *password)
	default:
		fmt.Println("expected 'check', 'whoami' or 'seed-products' subcommand")
		os.Exit(1)
	}
}

func whoami(client *api.Client, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := client.WithToken(token).Me(ctx)
	if err != nil {
		log.Fatalf("Token lookup failed: %v", err)
	}
	role := "customer"
	if user.IsAdmin {
		role = "admin"
	}
	fmt.Printf("%s <%s> (%s)\n", user.FullName, user.Email, role)
}

func check(client *api.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categories, err := client.GetCategories(ctx)
	if err != nil {
		log.Fatalf("Backend check failed: %v", err)
	}
	fmt.Printf("Backend OK at %s (%d categories)\n", client.BaseURL(), len(categories))
}

func seedProducts(client *api.Client, file, email, password string) {
	data, err := os.ReadFile(file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", file, err)
	}

	var products []api.ProductInput
	if err := json.Unmarshal(data, &products); err != nil {
		log.Fatalf("Failed to parse %s: %v", file, err)
	}

	ctx := context.Background()
	token, err := client.Login(ctx, email, password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	if !token.User.IsAdmin {
		log.Fatalf("User %s is not an admin", email)
	}
	authed := client.WithToken(token.AccessToken)

	created := 0
	for _, input := range products {
		product, err := authed.CreateProduct(ctx, input)
		if err != nil {
			log.Printf("Failed to create %q: %v", input.Name, err)
			continue
		}
		fmt.Printf("Created %s (%s)\n", product.Name, product.ID)
		created++
	}
	fmt.Printf("Done: %d/%d products created.\n", created, len(products))
}
