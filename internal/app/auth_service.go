package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gopherpress/internal/model"
	"gopherpress/internal/pkg/jwtutil"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordsDontMatch = errors.New("passwords don't match")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredential  = errors.New("invalid username or password")
)

// UserRepo is the slice of the user store the auth flow needs.
type UserRepo interface {
	Create(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	GetByID(id string) (*model.User, error)
}

type AuthService struct {
	userRepo      UserRepo
	jwtSecret     string
	jwtExpiration time.Duration
	bcryptCost    int
}

type SignUpInput struct {
	Username       string
	Password       string
	RepeatPassword string
}

type SignInInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(userRepo UserRepo, jwtSecret string, jwtExpiration time.Duration, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		bcryptCost:    bcryptCost,
	}
}

// SignUp registers a new identity and immediately signs it in, so a
// successful registration always yields a usable token.
//
// The uniqueness check is lookup-then-insert and is not atomic; two
// concurrent registrations of the same username can both pass the
// lookup. The unique index on username keeps the second insert from
// persisting.
func (s *AuthService) SignUp(input SignUpInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}
	if input.Password != input.RepeatPassword {
		return nil, ErrPasswordsDontMatch
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.SignIn(SignInInput{Username: username, Password: input.Password})
}

// SignIn verifies the credentials and issues a stateless bearer token.
// An unknown username and a wrong password produce the same error, so
// the response never reveals which usernames exist.
func (s *AuthService) SignIn(input SignInInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
