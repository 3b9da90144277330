package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/habit-tracker/internal/repository"
	"github.com/iliyamo/habit-tracker/internal/utils"
	"github.com/iliyamo/habit-tracker/internal/validation"
)

const (
	msgUserCreated        = "User created"
	msgLoginOK            = "Login successful"
	msgInvalidCredentials = "Invalid email or password"
	msgIdentityTaken      = "Username or email already exists"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Users      *repository.UserRepo
	Tokens     *utils.TokenIssuer
	BcryptCost int
	Timeout    time.Duration
}

func NewAuthHandler(u *repository.UserRepo, tokens *utils.TokenIssuer, bcryptCost int, timeout time.Duration) *AuthHandler {
	return &AuthHandler{Users: u, Tokens: tokens, BcryptCost: bcryptCost, Timeout: timeout}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResp struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userPart `json:"user"`
}

// Register: validate, hash and create the user. No token is issued; the
// client logs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req validation.RegisterInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidBody)
	}
	req, err := validation.Register(req)
	if err != nil {
		return validationFailed(c, err)
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return internalError(c, "hash password", err)
	}

	ctx, cancel := dbContext(c, h.Timeout)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			return badRequest(c, msgIdentityTaken)
		}
		return internalError(c, "create user", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": msgUserCreated, "userId": uid})
}

// Login: verify credentials and return a fresh access token. Unknown email
// and wrong password get the same response after the same amount of
// bcrypt work.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidBody)
	}
	email := repository.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return badRequest(c, msgInvalidCredentials)
	}

	ctx, cancel := dbContext(c, h.Timeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.VerifyPasswordDummy(req.Password, h.BcryptCost)
			return badRequest(c, msgInvalidCredentials)
		}
		return internalError(c, "load user", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return badRequest(c, msgInvalidCredentials)
	}

	access, err := h.Tokens.Issue(u.ID, u.Username)
	if err != nil {
		return internalError(c, "issue token", err)
	}

	return c.JSON(http.StatusOK, loginResp{
		Message: msgLoginOK,
		Token:   access.Token,
		User:    userPart{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}
