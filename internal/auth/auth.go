package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/web"
	"github.com/siahsang/blogapi/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	UserCtxKey web.ContextKey = "user_data"
)

const passwordCost = 10

var (
	NotAuthenticatesUser = xerrors.Message("Not authenticated user")
	ErrInvalidToken      = xerrors.Message("invalid token")
)

type Auth struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Auth {
	return &Auth{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func HashPassword(plainTextPassword string) ([]byte, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), passwordCost)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return hashedPassword, nil
}

func IsPasswordMatch(hashedPassword []byte, plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hashedPassword, []byte(plainTextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, xerrors.New(err)
	}

	return true, nil
}

func (auth *Auth) GenerateToken(userID string) (string, error) {
	now := auth.now()
	claim := UserClaim{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(auth.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	signedString, err := token.SignedString(auth.secret)
	if err != nil {
		return "", xerrors.New(err)
	}
	return signedString, nil
}

// Authenticate checks the signature and expiry of tokenString.
func (auth *Auth) Authenticate(tokenString string) (*UserClaim, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &UserClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.New("unexpected signing method")
		}
		return auth.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(auth.now))

	if err != nil {
		return nil, xerrors.Newf("invalid token: %w", err)
	}

	if !parsedToken.Valid {
		return nil, xerrors.New(ErrInvalidToken)
	}

	claim, ok := parsedToken.Claims.(*UserClaim)
	if !ok || claim.ID == "" {
		return nil, xerrors.New(ErrInvalidToken)
	}
	return claim, nil
}

func GetAuthenticatedUser(r *http.Request) (*models.User, error) {
	user, ok := web.GetValueFromContext[*models.User](r, UserCtxKey)
	if !ok {
		return nil, NotAuthenticatesUser
	}

	return user, nil
}

// SetAuthenticatedUser stores a copy of user without its password hash.
func SetAuthenticatedUser(r *http.Request, user *models.User) *http.Request {
	u := *user
	u.Password = nil
	return web.AddValueToContext(r, UserCtxKey, &u)
}

func IsUserAuthenticated(r *http.Request) bool {
	_, err := GetAuthenticatedUser(r)
	return err == nil
}
