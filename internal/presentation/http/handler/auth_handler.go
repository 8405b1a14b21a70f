package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/dealerdesk/dealerdesk-api/internal/application/service"
	"github.com/dealerdesk/dealerdesk-api/internal/presentation/http/dto/request"
	"github.com/dealerdesk/dealerdesk-api/internal/presentation/http/dto/response"
	"github.com/dealerdesk/dealerdesk-api/pkg/oauth"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth-state"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	googleOAuth *oauth.GoogleOAuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, googleOAuth *oauth.GoogleOAuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		googleOAuth: googleOAuth,
	}
}

// Login handles user login. The returned access token doubles as the legacy
// auth-token for the invoice endpoints.
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// The cookie lets the browser follow PDF download links without any
	// client-side header plumbing.
	c.SetCookie("auth-token", output.AccessToken, 0, "/", "", false, true)

	response.OK(c, "Login successful", gin.H{
		"user":          output.User,
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Registration successful", gin.H{"user": user})
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie("auth-token", output.AccessToken, 0, "/", "", false, true)

	response.OK(c, "Token refreshed successfully", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Logout clears the download cookie; the bearer tokens are stateless and the
// client simply discards them.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("auth-token", "", -1, "/", "", false, true)
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile handles fetching the current user profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{"user": user})
}

// UpdateProfile handles updating the user profile, including the dealership
// letterhead printed on exported invoices.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		UserID:       *userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Photo:        req.Photo,
		StoreName:    req.StoreName,
		StoreAddress: req.StoreAddress,
		StorePhone:   req.StorePhone,
		StoreEmail:   req.StoreEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", gin.H{"user": user})
}

// ChangePassword handles password change
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		UserID:          *userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password changed successfully", nil)
}

// GoogleAuth redirects to the Google consent screen
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	if !h.googleOAuth.IsConfigured() {
		response.ErrorWithCode(c, http.StatusServiceUnavailable, "Google OAuth is not configured")
		return
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		response.ErrorWithCode(c, http.StatusInternalServerError, "Failed to start OAuth flow")
		return
	}
	state := hex.EncodeToString(stateBytes)

	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.GetAuthURL(state))
}

// GoogleCallback completes the Google sign-in flow and redirects back to the
// frontend with the token pair in the fragment-free query string.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.FrontendErrorURL()+"?error=invalid_state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.FrontendErrorURL()+"?error=missing_code")
		return
	}

	token, err := h.googleOAuth.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.FrontendErrorURL()+"?error=exchange_failed")
		return
	}

	userInfo, err := h.googleOAuth.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.FrontendErrorURL()+"?error=userinfo_failed")
		return
	}

	output, err := h.authService.LoginWithGoogle(c.Request.Context(), userInfo)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.FrontendErrorURL()+"?error=login_failed")
		return
	}

	c.SetCookie("auth-token", output.AccessToken, 0, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect,
		h.googleOAuth.FrontendSuccessURL()+
			"?access_token="+output.AccessToken+
			"&refresh_token="+output.RefreshToken)
}
