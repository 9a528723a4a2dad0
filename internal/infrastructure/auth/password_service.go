package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhonDavid20/steady-vitality/domain"
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{}<>?"

	minPasswordLength = 8
	maxPasswordLength = 128
)

// commonPasswords is the deny-list checked during strength validation
var commonPasswords = []string{
	"password", "password1", "password123", "passw0rd",
	"12345678", "123456789", "1234567890",
	"qwerty123", "letmein", "welcome1", "admin123", "iloveyou",
}

// sequentialPatterns are rejected anywhere inside the password
var sequentialPatterns = []string{"123456", "abcdef", "qwerty"}

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service. A non-positive cost
// falls back to the production default.
func NewPasswordService(cost int) domain.PasswordService {
	if cost <= 0 {
		cost = 12
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidateStrength implements domain.PasswordService. Every violated rule is
// collected so the caller can show all of them at once.
func (p *PasswordServiceImpl) ValidateStrength(password string) domain.PasswordStrength {
	var errs []string

	if len(password) < minPasswordLength {
		errs = append(errs, fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}
	if len(password) > maxPasswordLength {
		errs = append(errs, fmt.Sprintf("password must be at most %d characters long", maxPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasUpper {
		errs = append(errs, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "password must contain at least one lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "password must contain at least one number")
	}
	if !hasSymbol {
		errs = append(errs, "password must contain at least one special character")
	}

	lowered := strings.ToLower(password)
	for _, common := range commonPasswords {
		if lowered == common {
			errs = append(errs, "password is too common")
			break
		}
	}
	for _, pattern := range sequentialPatterns {
		if strings.Contains(lowered, pattern) {
			errs = append(errs, "password contains a sequential pattern")
			break
		}
	}

	return domain.PasswordStrength{Valid: len(errs) == 0, Errors: errs}
}

// GenerateRandom implements domain.PasswordService. The result always holds
// at least one character from each class and has exactly the requested
// length; lengths below the strength minimum fall back to 16.
func (p *PasswordServiceImpl) GenerateRandom(length int) (string, error) {
	if length < minPasswordLength {
		length = 16
	}

	allChars := lowerChars + upperChars + digitChars + symbolChars
	chars := make([]byte, 0, length)

	for _, class := range []string{lowerChars, upperChars, digitChars, symbolChars} {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := randomChar(allChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Fisher-Yates shuffle so the guaranteed class characters are not
	// always in the leading positions
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := n.Int64()
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func randomChar(class string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(class))))
	if err != nil {
		return 0, err
	}
	return class[n.Int64()], nil
}
