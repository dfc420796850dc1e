package handler

import (
	"go-production-tracker/internal/model"
	"go-production-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// GetUsers lists all users
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetUsers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(fiber.Map{"count": len(users), "users": users})
}

// GetUser fetches one user
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := h.service.GetUser(userID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

// UpdateRole changes a user's access level
// PUT /api/v1/users/:id/role
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	targetID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req struct {
		Role model.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	requester := currentUser(c)
	user, err := h.service.UpdateRole(targetID, req.Role, requester.ID)
	if err != nil {
		if err == service.ErrSelfDemotion {
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		}
		if err == service.ErrUserNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "User role updated", "user": user})
}

// UpdateTeam moves a user between teams
// PUT /api/v1/users/:id/team
func (h *UserHandler) UpdateTeam(c *fiber.Ctx) error {
	targetID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req struct {
		Team model.Team `json:"team"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.UpdateTeam(targetID, req.Team)
	if err != nil {
		if err == service.ErrUserNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "User team updated", "user": user})
}

// UpdateStatus activates or deactivates an account
// PUT /api/v1/users/:id/status
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	targetID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	requester := currentUser(c)
	user, err := h.service.UpdateStatus(targetID, req.IsActive, requester.ID)
	if err != nil {
		if err == service.ErrSelfDeactivation {
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		}
		if err == service.ErrUserNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "User status updated", "user": user})
}
