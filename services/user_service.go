package services

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kevinsgzcode/dashboard-bets-core/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates a user with a hashed password and a starting bankroll.
func (s *UserService) Register(c *fiber.Ctx) error {
	var body struct {
		Username    string  `json:"username"`
		Password    string  `json:"password"`
		InitialBank float64 `json:"initialBank"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if body.Username == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
	}

	bank := body.InitialBank
	if bank <= 0 {
		bank = models.DefaultInitialBank
	}

	var existing models.User
	if err := s.DB.Where("username = ?", body.Username).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username already taken"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("❌ [USERS] lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
	}

	user := models.User{
		ID:          uuid.NewString(),
		Username:    body.Username,
		Password:    string(hash),
		InitialBank: bank,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("❌ [USERS] create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Printf("✅ New user created: %s", user.Username)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          user.ID,
		"username":    user.Username,
		"initialBank": user.InitialBank,
	})
}

// Login verifies credentials and issues a session token.
func (s *UserService) Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	var user models.User
	if err := s.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	session := models.Session{Token: uuid.NewString(), UserID: user.ID}
	if err := s.DB.Create(&session).Error; err != nil {
		log.Printf("❌ [USERS] session create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Printf("🔑 Session issued for user %s", user.Username)
	return c.JSON(fiber.Map{"token": session.Token, "user_id": user.ID})
}

// ListUsers exposes the public subset of user fields.
func (s *UserService) ListUsers(c *fiber.Ctx) error {
	type userSummary struct {
		ID          string  `json:"id"`
		Username    string  `json:"username"`
		InitialBank float64 `json:"initialBank"`
	}

	var users []models.User
	if err := s.DB.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load users"})
	}

	res := make([]userSummary, len(users))
	for i, u := range users {
		res[i] = userSummary{ID: u.ID, Username: u.Username, InitialBank: u.InitialBank}
	}
	return c.JSON(res)
}
