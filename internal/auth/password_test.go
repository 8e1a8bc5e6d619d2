package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if digest == "s3cret" {
		t.Fatal("digest equals plaintext")
	}
	if !VerifyPassword("s3cret", digest) {
		t.Error("VerifyPassword rejected correct password")
	}
	if VerifyPassword("wrong", digest) {
		t.Error("VerifyPassword accepted wrong password")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	digest, err := HashPassword("s3cret", 99)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}
