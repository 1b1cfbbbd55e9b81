package helper

import (
	"errors"
	"hearthroot_shop/database"
	"hearthroot_shop/model"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GenerateAccessToken(claim model.TokenClaim) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"customerId": claim.CustomerId,
		"accountId":  claim.AccountId,
		"email":      claim.Email,
		"role":       claim.Role,
		"exp":        time.Now().Add(15 * time.Minute).Unix(),
	})
	return token.SignedString(JwtSecret)
}

func GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"customerId": claim.CustomerId,
		"accountId":  claim.AccountId,
		"email":      claim.Email,
		"role":       claim.Role,
		"exp":        time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return token.SignedString(JwtSecret)
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JwtSecret, nil
	})
}

// ClaimFromLocals reads the parsed JWT the auth middleware stored on the
// request. Returns nil when the request is anonymous.
func ClaimFromLocals(c *fiber.Ctx) *model.TokenClaim {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	claim := model.TokenClaim{}
	if v, ok := claims["customerId"].(float64); ok {
		claim.CustomerId = uint(v)
	}
	if v, ok := claims["accountId"].(float64); ok {
		claim.AccountId = uint(v)
	}
	if v, ok := claims["email"].(string); ok {
		claim.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		claim.Role = v
	}
	return &claim
}

// CustomerIdFromLocals returns the authenticated customer id or nil for guests.
func CustomerIdFromLocals(c *fiber.Ctx) *uint {
	claim := ClaimFromLocals(c)
	if claim == nil || claim.CustomerId == 0 {
		return nil
	}
	id := claim.CustomerId
	return &id
}

func GetCustomerByEmail(email string) (*model.Customer, error) {
	db := database.DB
	var customer model.Customer
	if err := db.Where(&model.Customer{Email: email}).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func GetAccountByUsername(username string) (*model.Account, error) {
	db := database.DB
	var account model.Account
	if err := db.Where(&model.Account{Username: username}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
