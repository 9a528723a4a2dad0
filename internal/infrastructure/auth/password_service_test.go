package auth

import (
	"strings"
	"testing"
	"unicode"
)

func TestHashAndVerify(t *testing.T) {
	// Low cost keeps the test fast; the rules are cost-independent.
	svc := NewPasswordService(4)

	password := "MyStr0ng!Pass"
	hash, err := svc.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == password {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !svc.Verify(hash, password) {
		t.Error("correct password should verify")
	}
	if svc.Verify(hash, "MyStr0ng!Pass2") {
		t.Error("wrong password should not verify")
	}
	if svc.Verify("", password) {
		t.Error("empty hash should not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	svc := NewPasswordService(4)
	h1, err := svc.Hash("MyStr0ng!Pass")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := svc.Hash("MyStr0ng!Pass")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestValidateStrength(t *testing.T) {
	svc := NewPasswordService(4)

	tests := []struct {
		name      string
		password  string
		valid     bool
		wantErrs  []string
	}{
		{
			name:     "strong password",
			password: "MyStr0ng!Pass",
			valid:    true,
		},
		{
			name:     "too short collects every missing class",
			password: "Ab1!",
			valid:    false,
			wantErrs: []string{"at least 8 characters"},
		},
		{
			name:     "too long",
			password: "Aa1!" + strings.Repeat("x", 130),
			valid:    false,
			wantErrs: []string{"at most 128 characters"},
		},
		{
			name:     "missing uppercase",
			password: "mystr0ng!pass",
			valid:    false,
			wantErrs: []string{"uppercase letter"},
		},
		{
			name:     "missing lowercase",
			password: "MYSTR0NG!PASS",
			valid:    false,
			wantErrs: []string{"lowercase letter"},
		},
		{
			name:     "missing number",
			password: "MyStrong!Pass",
			valid:    false,
			wantErrs: []string{"one number"},
		},
		{
			name:     "missing special character",
			password: "MyStr0ngPass",
			valid:    false,
			wantErrs: []string{"special character"},
		},
		{
			name:     "common password",
			password: "Password123",
			valid:    false,
			wantErrs: []string{"too common"},
		},
		{
			name:     "sequential pattern",
			password: "Abcdef1!xyz",
			valid:    false,
			wantErrs: []string{"sequential pattern"},
		},
		{
			name:     "multiple violations reported together",
			password: "short",
			valid:    false,
			wantErrs: []string{"at least 8 characters", "uppercase letter", "one number", "special character"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.ValidateStrength(tt.password)
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.valid, result.Errors)
			}
			joined := strings.Join(result.Errors, "; ")
			for _, want := range tt.wantErrs {
				if !strings.Contains(joined, want) {
					t.Errorf("errors %q missing %q", joined, want)
				}
			}
			if tt.valid && len(result.Errors) != 0 {
				t.Errorf("valid password should carry no errors, got %v", result.Errors)
			}
		})
	}
}

func TestGenerateRandom(t *testing.T) {
	svc := NewPasswordService(4)

	for _, length := range []int{8, 16, 32, 64} {
		pw, err := svc.GenerateRandom(length)
		if err != nil {
			t.Fatalf("GenerateRandom(%d): %v", length, err)
		}
		if len(pw) != length {
			t.Errorf("length = %d, want %d", len(pw), length)
		}
		if result := svc.ValidateStrength(pw); !result.Valid {
			t.Errorf("generated password %q failed strength check: %v", pw, result.Errors)
		}
	}
}

func TestGenerateRandomShortFallsBack(t *testing.T) {
	svc := NewPasswordService(4)
	pw, err := svc.GenerateRandom(4)
	if err != nil {
		t.Fatal(err)
	}
	if len(pw) != 16 {
		t.Errorf("below-minimum length should fall back to 16, got %d", len(pw))
	}
}

func TestGenerateRandomCoversAllClasses(t *testing.T) {
	svc := NewPasswordService(4)
	pw, err := svc.GenerateRandom(8)
	if err != nil {
		t.Fatal(err)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		t.Errorf("password %q missing a character class", pw)
	}
}
