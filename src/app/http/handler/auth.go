package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jokeboard/src/app/http/form"
	"jokeboard/src/app/http/response"
	"jokeboard/src/app/middleware"
	"jokeboard/src/core/domain"
	"jokeboard/src/core/usecase"
	"jokeboard/src/infra/config"
)

// AuthHandler handles the login-or-register form and session endpoints.
type AuthHandler struct {
	authService *usecase.AuthService
	tokens      *usecase.SessionService
	redirects   *usecase.RedirectPolicy
	cookie      config.SessionConfig
}

func NewAuthHandler(
	authService *usecase.AuthService,
	tokens *usecase.SessionService,
	redirects *usecase.RedirectPolicy,
	cookie config.SessionConfig,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		redirects:   redirects,
		cookie:      cookie,
	}
}

// Submit handles the combined login/register form.
// POST /v1/auth
func (h *AuthHandler) Submit(c *gin.Context) {
	sub, err := form.ParseAuth(c.Request)
	if err != nil {
		response.FormError(c, form.ErrMalformed.Error(), nil)
		return
	}

	// The redirect target is validated regardless of the outcome; an
	// untrusted value falls back to the default and never blocks the flow.
	target := h.redirects.Safe(sub.RedirectTo)

	fieldErrors := map[string]string{}
	if msg := usecase.ValidateUsername(sub.Username); msg != "" {
		fieldErrors["username"] = msg
	}
	if msg := usecase.ValidatePassword(sub.Password); msg != "" {
		fieldErrors["password"] = msg
	}
	if len(fieldErrors) > 0 {
		response.FieldErrors(c, fieldErrors, sub.Echo())
		return
	}

	switch sub.LoginType {
	case "login":
		user, err := h.authService.Login(c.Request.Context(), sub.Username, sub.Password)
		if err != nil {
			if domain.IsInvalidCredentials(err) {
				response.FormError(c, "username/password combination is incorrect", sub.Echo())
				return
			}
			c.Error(err)
			response.FromDomainError(c, err, middleware.GetRequestID(c))
			return
		}
		h.establishSession(c, user.ID, target)

	case "register":
		user, err := h.authService.Register(c.Request.Context(), sub.Username, sub.Password)
		if err != nil {
			if domain.IsAlreadyExists(err) {
				response.FormError(c, fmt.Sprintf("user with username %s already exists", sub.Username), sub.Echo())
				return
			}
			c.Error(err)
			response.FromDomainError(c, err, middleware.GetRequestID(c))
			return
		}
		if user == nil {
			// Creation reported success but yielded no identity. Not expected
			// to happen; answered with a form error rather than a 500.
			response.FormError(c, "something went wrong trying to create a new user", sub.Echo())
			return
		}
		h.establishSession(c, user.ID, target)

	default:
		response.FormError(c, "login type invalid", sub.Echo())
	}
}

// Logout clears the session cookie.
// POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, "", -1, "/", "", h.cookie.CookieSecure, true)
	c.Redirect(http.StatusFound, "/")
}

// Me returns the authenticated user. Mounted behind RequireUser.
// GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, gin.H{
		"user": gin.H{
			"user_id":    user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt,
		},
	})
}

func (h *AuthHandler) establishSession(c *gin.Context, userID uuid.UUID, target string) {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		c.Error(err)
		response.InternalError(c, middleware.GetRequestID(c))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.CookieSecure, true)
	c.Redirect(http.StatusFound, target)
}
