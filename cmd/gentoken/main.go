package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gatherhub/api/pkg/jwt"
)

// gentoken mints a session token for a known user id. Useful for poking at
// protected endpoints without going through login.
func main() {
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "Signing secret (defaults to JWT_SECRET)")
	userID := flag.String("user", "", "User record id for the token (e.g. user:demo)")
	email := flag.String("email", "dev@gatherhub.dev", "Email for the token")
	name := flag.String("name", "Dev User", "Name for the token")
	issuer := flag.String("issuer", "api.gatherhub.dev", "Token issuer")
	expDays := flag.Int("exp", 7, "Token expiration in days")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		flag.Usage()
		os.Exit(1)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         *secret,
		Issuer:         *issuer,
		ExpirationDays: *expDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating token service: %v\n", err)
		os.Exit(1)
	}

	token, err := jwtService.Sign(jwt.Claims{
		UserID: *userID,
		Email:  *email,
		Name:   *name,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"token":      token,
			"token_type": "Bearer",
			"expires_in": *expDays * 24 * 60 * 60,
			"user_id":    *userID,
			"email":      *email,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	expTime := time.Now().Add(time.Duration(*expDays) * 24 * time.Hour)
	fmt.Println("Session Token Generated")
	fmt.Println("=======================")
	fmt.Printf("User ID:  %s\n", *userID)
	fmt.Printf("Email:    %s\n", *email)
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H 'Authorization: Bearer <token>' http://localhost:8080/v1/events")
}
