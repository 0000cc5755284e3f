// genhash prints bcrypt hashes for passwords given on the command line,
// for seeding users by hand:
//
//	go run scripts/genhash.go 'password1' 'password2'
package main

import (
	"fmt"
	"os"

	"job-tracker-backend/pkg/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: go run scripts/genhash.go <password>...")
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher()
	for _, pass := range os.Args[1:] {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Println(hash)
	}
}
