package handler

import (
	"net/http"
	"strings"
	"time"

	"community/internal/auth"
	"community/internal/image"
	"community/internal/middleware"
	"community/internal/session"
	"community/internal/user"
	"community/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler - регистрация, вход/выход и операции над собственным аккаунтом
type AuthHandler struct {
	Users      user.UserStorage
	Sessions   session.SessionStorage
	Images     image.Storage
	SessionTTL time.Duration
}

func NewAuthHandler(users user.UserStorage, sessions session.SessionStorage, images image.Storage, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &AuthHandler{Users: users, Sessions: sessions, Images: images, SessionTTL: ttl}
}

func profileJSON(p *user.Profile) gin.H {
	return gin.H{
		"id":            p.ID,
		"email":         p.Email,
		"nickname":      p.Nickname,
		"profile_image": p.ImageURL,
		"created_at":    p.CreatedAt,
	}
}

// Register - multipart-форма: email, password, nickname и необязательный
// profile_image
func (h *AuthHandler) Register(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	nickname := strings.TrimSpace(c.PostForm("nickname"))

	if email == "" || password == "" || nickname == "" {
		util.Error(c, http.StatusBadRequest, "email, password and nickname are required")
		return
	}
	if len([]rune(nickname)) > 32 {
		util.Error(c, http.StatusBadRequest, "nickname must be at most 32 characters")
		return
	}

	imageURL := ""
	if file, header, err := c.Request.FormFile("profile_image"); err == nil {
		defer file.Close()
		imageURL, err = h.Images.Save(file, header.Filename)
		if err != nil {
			util.FromError(c, err)
			return
		}
	}

	p, err := h.Users.RegisterUser(c.Request.Context(), email, password, nickname, imageURL)
	if err != nil {
		util.FromError(c, err)
		return
	}

	util.Success(c, http.StatusCreated, gin.H{
		"message": "user registered",
		"user":    profileJSON(p),
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "email and password are required")
		return
	}

	p, err := h.Users.LoginUser(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		util.FromError(c, err)
		return
	}

	token, err := h.Sessions.Create(c.Request.Context(), p.ID, h.SessionTTL)
	if err != nil {
		util.FromError(c, err)
		return
	}

	// cookie для браузера; токен дублируем в теле для Bearer-клиентов
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.SessionTTL.Seconds()), "/", "", false, true)

	util.Success(c, http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
		"user":    profileJSON(p),
	})
}

// Logout идемпотентен: повторный вызов без сессии тоже отвечает 200
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Sessions.Delete(c.Request.Context(), middleware.ExtractToken(c)); err != nil {
		util.FromError(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	util.Success(c, http.StatusOK, gin.H{"message": "logout successful"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	p, err := h.Users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusOK, gin.H{"user": profileJSON(p)})
}

// CheckEmail - предв. проверка на занятость email при регистрации
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		util.Error(c, http.StatusBadRequest, "email is required")
		return
	}

	exists, err := h.Users.EmailExists(c.Request.Context(), email)
	if err != nil {
		util.FromError(c, err)
		return
	}
	if exists {
		util.Error(c, http.StatusConflict, "email already exists")
		return
	}
	util.Success(c, http.StatusOK, gin.H{"message": "email available"})
}

type nicknameReq struct {
	Nickname string `json:"nickname" binding:"required"`
}

// UpdateNickname - менять ник можно только себе
func (h *AuthHandler) UpdateNickname(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	targetID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	if targetID != userID {
		util.Error(c, http.StatusForbidden, "permission denied")
		return
	}

	var req nicknameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "nickname is required")
		return
	}
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" || len([]rune(nickname)) > 32 {
		util.Error(c, http.StatusBadRequest, "nickname must be 1-32 characters")
		return
	}

	if err := h.Users.UpdateNickname(c.Request.Context(), userID, nickname); err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusOK, gin.H{"message": "nickname updated"})
}

type passwordReq struct {
	Password string `json:"password" binding:"required"`
}

// ChangePassword перехеширует пароль; остальные сессии остаются активными
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req passwordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "password is required")
		return
	}

	if err := h.Users.ChangePassword(c.Request.Context(), userID, req.Password); err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}

// DeleteAccount - мягкое удаление аккаунта со снятием всех его сессий
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.Users.DeleteUser(c.Request.Context(), userID); err != nil {
		util.FromError(c, err)
		return
	}
	if err := h.Sessions.DeleteByUser(c.Request.Context(), userID); err != nil {
		util.FromError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	util.Success(c, http.StatusOK, gin.H{"message": "account deleted"})
}
