package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/interview-coach/internal/controller"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new user
// @Description Creates the account and returns a JWT access/refresh pair.
// @Tags Users
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields or duplicate username/email"
// @Router /users/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	result, err := ctrl.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully.",
		Access:  result.Tokens.Access,
		Refresh: result.Tokens.Refresh,
	})
}

// Login godoc
// @Summary Log in
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Username and password"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string][]string "Field errors or non_field_errors"
// @Router /users/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	result, err := ctrl.authService.Login(c.Request.Context(), service.LoginCredentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:  "Login successful!",
		Username: result.User.Username,
		Access:   result.Tokens.Access,
		Refresh:  result.Tokens.Refresh,
	})
}

// Logout godoc
// @Summary Log out
// @Description Blacklists the given refresh token.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing, invalid or already revoked token"
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	if err := ctrl.authService.Logout(c.Request.Context(), req.Refresh); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out."})
}

// ObtainToken godoc
// @Summary Obtain a token pair
// @Tags Tokens
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Username and password"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /token [post]
func (ctrl *AuthController) ObtainToken(c *gin.Context) {
	var req dto.LoginRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	pair, err := ctrl.authService.ObtainPair(c.Request.Context(), service.LoginCredentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenPairResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// RefreshToken godoc
// @Summary Refresh the access token
// @Tags Tokens
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} dto.ErrorResponse
// @Router /token/refresh [post]
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if !controller.BindJSON(c, &req) {
		return
	}
	pair, err := ctrl.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenPairResponse{Access: pair.Access, Refresh: pair.Refresh})
}
