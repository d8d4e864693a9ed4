package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"marketdash/internal/http/middleware"
	"marketdash/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	env := s.env()
	if env.AdminPasswordHash == "" || env.JWTSecret == "" {
		RespondError(c, http.StatusServiceUnavailable, "admin login is not configured", nil)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(req.Username)), []byte(env.AdminUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(env.AdminPasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "login_failed", "username="+req.Username)
		RespondError(c, http.StatusUnauthorized, "wrong username or password", nil)
		return
	}

	token, err := middleware.IssueAdminToken(env.JWTSecret, env.AdminUsername, s.now())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(middleware.TokenTTL.Seconds()),
		"user":       gin.H{"username": env.AdminUsername, "role": middleware.RoleAdmin},
	})
}
