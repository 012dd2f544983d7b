package handlers

import (
	"fmt"
	"math/rand"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/moviematch/backend/internal/middleware"
	"github.com/moviematch/backend/internal/models"
	"github.com/moviematch/backend/internal/services"
	"github.com/moviematch/backend/internal/storage"
	"github.com/moviematch/backend/pkg/logger"
	"github.com/moviematch/backend/pkg/utils"
	"gorm.io/gorm"
)

const (
	maxFavoriteGenres  = 3
	maxSecondaryGenres = 2
)

type AuthHandler struct {
	DB      *gorm.DB
	Avatars *storage.AvatarStore
}

func NewAuthHandler(db *gorm.DB, avatars *storage.AvatarStore) *AuthHandler {
	return &AuthHandler{DB: db, Avatars: avatars}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid email")
	}
	if len(req.Password) < 6 {
		return utils.Error(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	}
	if req.FullName == "" {
		return utils.Error(c, fiber.StatusBadRequest, "fullName is required")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		ProfilePic:   randomAvatarURL(),
	}

	// The unique index on email is the only duplicate guard, so concurrent
	// signups for the same address cannot race past a pre-check.
	if err := h.DB.Create(&user).Error; err != nil {
		if services.IsDuplicateKey(err) {
			return utils.Error(c, fiber.StatusConflict, "email already registered")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating user")
	}

	logger.Info("user_signed_up", map[string]interface{}{
		"user_id": user.ID.String(),
		"email":   user.Email,
	})

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed generating token")
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == "" || req.Password == "" {
		return utils.Error(c, fiber.StatusBadRequest, "email and password are required")
	}

	var user models.User
	if err := h.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		logger.Warn("login_failed_user_not_found", map[string]interface{}{
			"email": req.Email,
			"ip":    c.IP(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		logger.Warn("login_failed_invalid_password", map[string]interface{}{
			"user_id": user.ID.String(),
			"ip":      c.IP(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	logger.Info("user_login", map[string]interface{}{
		"user_id": user.ID.String(),
		"ip":      c.IP(),
	})

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed generating token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"token": token, "user": user})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.Success(c, fiber.StatusOK, user)
}

type onboardingRequest struct {
	FullName        string   `json:"fullName"`
	Bio             string   `json:"bio"`
	Location        string   `json:"location"`
	ProfilePic      string   `json:"profilePic"`
	FavoriteGenres  []string `json:"favoriteGenres"`
	SecondaryGenres []string `json:"secondaryGenres"`
	FavoriteMovies  string   `json:"favoriteMovies"`
	MovieMood       string   `json:"movieMood"`
}

// Onboard completes the one-time profile step. Only onboarded users show up
// in recommendations.
func (h *AuthHandler) Onboard(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req onboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return utils.Error(c, fiber.StatusBadRequest, "fullName is required")
	}
	if len(req.FavoriteGenres) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "select at least one favorite genre")
	}
	if len(req.FavoriteGenres) > maxFavoriteGenres {
		return utils.Error(c, fiber.StatusBadRequest, fmt.Sprintf("at most %d favorite genres allowed", maxFavoriteGenres))
	}
	if len(req.SecondaryGenres) > maxSecondaryGenres {
		return utils.Error(c, fiber.StatusBadRequest, fmt.Sprintf("at most %d secondary genres allowed", maxSecondaryGenres))
	}

	var updated models.User
	if err := h.DB.First(&updated, "id = ?", user.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading profile")
	}

	updated.FullName = req.FullName
	updated.Bio = strings.TrimSpace(req.Bio)
	updated.Location = strings.TrimSpace(req.Location)
	updated.FavoriteGenres = req.FavoriteGenres
	updated.SecondaryGenres = req.SecondaryGenres
	updated.FavoriteMovies = strings.TrimSpace(req.FavoriteMovies)
	updated.MovieMood = strings.TrimSpace(req.MovieMood)
	updated.IsOnboarded = true
	if trimmed := strings.TrimSpace(req.ProfilePic); trimmed != "" {
		updated.ProfilePic = trimmed
	}

	if err := h.DB.Save(&updated).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed saving profile")
	}

	logger.InfoWithUser(user.ID.String(), "user_onboarded", map[string]interface{}{
		"favorite_genres": updated.FavoriteGenres,
	})

	return utils.Success(c, fiber.StatusOK, updated)
}

// UploadAvatar stores a new profile picture in the avatar bucket and points
// the profile at it.
func (h *AuthHandler) UploadAvatar(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if h.Avatars == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "avatar storage not configured")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "avatar file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "failed reading avatar file")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return utils.Error(c, fiber.StatusBadRequest, "avatar must be an image")
	}

	objectName := fmt.Sprintf("%s/avatar%s", user.ID, filepath.Ext(fileHeader.Filename))
	url, err := h.Avatars.Upload(c.Context(), objectName, src, fileHeader.Size, contentType)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed storing avatar")
	}

	if err := h.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("profile_pic", url).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating profile")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"profilePic": url})
}

func randomAvatarURL() string {
	idx := rand.Intn(100) + 1
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx)
}
