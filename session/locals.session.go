package session

import (
	"github.com/gofiber/fiber/v2"
)

// Add is a function that is used to add the authenticated user details to the request
func Add(c *fiber.Ctx, email, subject string) {
	c.Locals("email", email)
	c.Locals("subject", subject)
}

// GetEmail gets the authenticated email from the request
func GetEmail(c *fiber.Ctx) string {
	if v, ok := c.Locals("email").(string); ok {
		return v
	}
	return ""
}

// SaveSessionToken save the session token
func SaveSessionToken(c *fiber.Ctx, token string) {
	c.Locals("session_token", token)
}

// GetSessionToken get the session token
func GetSessionToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("session_token").(string); ok {
		return v
	}
	return ""
}
