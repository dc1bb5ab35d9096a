package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/middleware"
	"github.com/xyz-asif/gohotels/internal/pkg/logger"
	"github.com/xyz-asif/gohotels/internal/pkg/response"
	"github.com/xyz-asif/gohotels/internal/pkg/token"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
)

type Handler struct {
	service      *Service
	issuer       *token.Issuer
	secureCookie bool
}

func NewHandler(service *Service, issuer *token.Issuer, secureCookie bool) *Handler {
	return &Handler{
		service:      service,
		issuer:       issuer,
		secureCookie: secureCookie,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and signs the user in with the auth_token cookie
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := ValidateRegister(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.BadRequest(c, "User already exists", "USER_EXISTS")
			return
		}
		response.FromError(c, err)
		return
	}

	if !h.signIn(c, user) {
		return
	}

	response.Message(c, "User registered successfully")
}

// Login godoc
// @Summary Login user
// @Description Authenticate with email and password; sets the auth_token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "User login credentials"
// @Success 200 {object} UserIDResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if !h.signIn(c, user) {
		return
	}

	response.Success(c, UserIDResponse{UserID: user.ID.Hex()})
}

// ValidateToken godoc
// @Summary Validate the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} UserIDResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/validate-token [get]
func (h *Handler) ValidateToken(c *gin.Context) {
	response.Success(c, UserIDResponse{UserID: middleware.UserID(c)})
}

// Logout godoc
// @Summary Logout
// @Description Expires the auth_token cookie
// @Tags auth
// @Success 200
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c, h.secureCookie)
	c.Status(http.StatusOK)
}

// Me godoc
// @Summary Get current user profile
// @Tags users
// @Produce json
// @Success 200 {object} User
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err, "User not found")
		return
	}

	response.Success(c, user)
}

func (h *Handler) signIn(c *gin.Context, user *User) bool {
	tok, _, err := h.issuer.Issue(user.ID.Hex())
	if err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("failed to issue token")
		response.InternalServerError(c, "Something went wrong", "INTERNAL_ERROR")
		return false
	}

	middleware.SetAuthCookie(c, tok, int(h.issuer.Expiry().Seconds()), h.secureCookie)
	return true
}
