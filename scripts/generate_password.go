package main

import (
	"fmt"
	"log"
	"os"

	"github.com/your-org/collectibles-storefront/internal/pkg/auth"
)

// Prints an ADMIN_PASSWORD_HASH value for the admin panel account.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}

	password := os.Args[1]
	cost := 12

	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	if err := auth.VerifyPassword(password, hash); err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	fmt.Println("✅ Hash verified successfully!")
}
