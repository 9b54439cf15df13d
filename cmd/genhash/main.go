package main

import (
	"fmt"
	"log"
	"os"

	"ridetogether.backend/pkg/crypto"
)

// Small helper for seeding accounts by hand: prints the bcrypt hash for a
// password given as the first argument.

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: genhash <password>")
	}

	hash, err := crypto.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(hash)
}
