package handler

import (
	"errors"
	"net/http"

	"acquisitions/internal/config"
	"acquisitions/internal/cookies"
	"acquisitions/internal/middleware"
	"acquisitions/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler interface {
	SignUp(c *gin.Context)
	SignIn(c *gin.Context)
	SignOut(c *gin.Context)
	Me(c *gin.Context)
	SignInProbe(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	cfg         *config.Config
	log         *zap.Logger
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config, log *zap.Logger) AuthHandler {
	return &authHandler{authService: authService, cfg: cfg, log: log}
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *authHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	user, tokenString, err := h.authService.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Conflict", "message": "Email already registered"})
			return
		}
		h.log.Error("Failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	cookies.Set(c, tokenString, h.cfg)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered",
		"user":    userResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	})
}

func (h *authHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	user, tokenString, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "Invalid email or password"})
			return
		}
		h.log.Error("Failed to sign in user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	cookies.Set(c, tokenString, h.cfg)

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"user":    userResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	})
}

// SignOut clears the credential cookie. It succeeds regardless of whether
// the caller was signed in.
func (h *authHandler) SignOut(c *gin.Context) {
	cookies.Clear(c, h.cfg)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// Me returns the identity attached by the authentication gate.
func (h *authHandler) Me(c *gin.Context) {
	claims, ok := middleware.Identity(c)
	if !ok {
		// The gate should have rejected already; keep the response a 401
		// rather than panicking on a broken chain.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
	})
}

// SignInProbe answers GET requests to the sign-in path so hitting the URL in
// a browser returns a friendly message instead of a 404.
func (h *authHandler) SignInProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Sign-in endpoint is up. Use POST /api/auth/sign-in with credentials to sign in.",
	})
}
