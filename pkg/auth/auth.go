package auth

import (
	"errors"
	"log"
	"time"

	"github.com/arnavshah/help-scheduler-go/pkg/database"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var jwtAlgorithm = jwt.SigningMethodHS256

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Tokens issues and verifies editor tokens.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
}

// NewTokens returns a token issuer valid for 24 hours.
func NewTokens(secret string) *Tokens {
	return &Tokens{Secret: []byte(secret), TTL: 24 * time.Hour}
}

// CreateToken creates a new JWT token for an editor
func (t *Tokens) CreateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(t.Secret)
}

// VerifyToken verifies a JWT token
func (t *Tokens) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, ErrInvalidToken
		}
		return t.Secret, nil
	})

	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Login checks an editor's credentials and returns a fresh token.
func (t *Tokens) Login(db *gorm.DB, username, password string) (string, error) {
	var editor database.Editor
	if err := db.Where("username = ?", username).First(&editor).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if !CheckPasswordHash(password, editor.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return t.CreateToken(editor.Username)
}

// EnsureEditorExists creates the initial editor account when the table is
// empty.
func EnsureEditorExists(db *gorm.DB, username, password string) error {
	var count int64
	db.Model(&database.Editor{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	err = db.Create(&database.Editor{
		Username:     username,
		PasswordHash: hash,
	}).Error
	if err == nil {
		log.Printf("Default editor created: %s", username)
	}
	return err
}

// SetPassword creates the editor or replaces its password.
func SetPassword(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	var editor database.Editor
	err = db.Where("username = ?", username).First(&editor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&database.Editor{Username: username, PasswordHash: hash}).Error
	}
	if err != nil {
		return err
	}
	return db.Model(&editor).Update("password_hash", hash).Error
}
