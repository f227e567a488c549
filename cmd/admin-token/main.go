package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/guild/api/pkg/jwt"
)

func main() {
	// Flags for customization
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key")
	email := flag.String("email", "admin@joinguild.app", "Admin email for the token")
	issuer := flag.String("issuer", "joinguild.app", "JWT issuer")
	expMins := flag.Int("exp", 60, "Token expiration in minutes")
	outputJSON := flag.Bool("json", false, "Output as JSON")
	hashPassword := flag.Bool("hash", false, "Read a password from stdin and print its bcrypt hash for ADMIN_PASSWORD_HASH")

	flag.Parse()

	if *hashPassword {
		if err := printHash(); err != nil {
			fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create JWT service with just the private key
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nMake sure you have generated keys with: make keys-generate\n")
		os.Exit(1)
	}

	addr := strings.ToLower(strings.TrimSpace(*email))
	token, err := jwtService.Sign(jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: addr},
		Email:            addr,
		Role:             jwt.RoleAdmin,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"email":        addr,
			"role":         jwt.RoleAdmin,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
	fmt.Println("Admin Token Generated")
	fmt.Println("=====================")
	fmt.Printf("Email:    %s\n", addr)
	fmt.Printf("Role:     %s\n", jwt.RoleAdmin)
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/api/admin/stats\n", token[:50]+"...")
}

func printHash() error {
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && password == "" {
		return fmt.Errorf("no password on stdin")
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return fmt.Errorf("empty password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Println(string(hash))
	return nil
}
