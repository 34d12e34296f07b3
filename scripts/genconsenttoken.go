package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generates guardian consent tokens for seeding local test data.
func main() {
	for i := 0; i < 3; i++ {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Token %d: %s\n", i+1, hex.EncodeToString(buf))
	}
}
