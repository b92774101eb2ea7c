package auth

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret!!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "s3cret!!" {
		t.Fatalf("hash equals plaintext")
	}

	if !CheckPassword("s3cret!!", hash) {
		t.Fatalf("correct password did not verify")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash verified")
	}
}

// Соль индивидуальна для каждого вызова
func TestHashPasswordSalted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-password1!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same-password1!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password are identical")
	}
}
