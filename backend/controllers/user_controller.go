package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ieltscheck/backend/config"
	"ieltscheck/backend/middleware"
	"ieltscheck/backend/models"
	"ieltscheck/backend/utils"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

type UpdateUserInput struct {
	Username  string `json:"username" validate:"omitempty,min=3,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateUser is the administrative variant of registration.
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var existing models.User
	err := uc.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Username or email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         models.RoleUser,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not create user")
	}
	return utils.Created(c, user)
}

func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(users)
}

// Me returns the caller's own record.
func (uc *UserController) Me(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// MyStats returns aggregate test statistics for the caller.
func (uc *UserController) MyStats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return uc.statsResponse(c, user)
}

// GetUser returns one user. Non-admins may only fetch themselves.
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	user, err := uc.loadAuthorized(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// GetUserStats returns aggregate statistics for one user, self-or-admin.
func (uc *UserController) GetUserStats(c *fiber.Ctx) error {
	user, err := uc.loadAuthorized(c)
	if err != nil {
		return err
	}
	return uc.statsResponse(c, user)
}

// UpdateMe lets the caller modify their own profile.
func (uc *UserController) UpdateMe(c *fiber.Ctx) error {
	return uc.update(c, middleware.CurrentUser(c))
}

// UpdateUser modifies an arbitrary user, self-or-admin.
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	user, err := uc.loadAuthorized(c)
	if err != nil {
		return err
	}
	return uc.update(c, user)
}

// DeleteUser removes a user with their results and sessions, self-or-admin.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	user, err := uc.loadAuthorized(c)
	if err != nil {
		return err
	}

	if err := uc.DB.Select("Results", "Sessions").Delete(user).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// loadAuthorized fetches the path-parameter user and enforces the
// self-or-admin rule. The returned error is already a rendered response.
func (uc *UserController) loadAuthorized(c *fiber.Ctx) (*models.User, error) {
	caller := middleware.CurrentUser(c)
	id := c.Params("id")

	if caller.ID != id && !caller.Role.IsAdmin() {
		return nil, utils.Forbidden(c, "Insufficient permissions")
	}

	var user models.User
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "User not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}
	return &user, nil
}

func (uc *UserController) update(c *fiber.Ctx, user *models.User) error {
	var input UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	if input.Username != "" || input.Email != "" {
		var existing models.User
		err := uc.DB.Where("id <> ? AND (username = ? OR email = ?)", user.ID, input.Username, input.Email).
			First(&existing).Error
		if err == nil {
			return utils.Conflict(c, "Username or email already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Could not query database")
		}
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}
		user.PasswordHash = string(hashed)
	}

	if err := uc.DB.Save(user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}
	return c.JSON(user)
}

func (uc *UserController) statsResponse(c *fiber.Ctx, user *models.User) error {
	stats, err := testTypeStats(uc.DB, user.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(fiber.Map{
		"user":       user,
		"statistics": stats,
	})
}
