package controllers

import "github.com/gofiber/fiber/v2"

// actorID pulls the authenticated user id out of the JWT claims set by the
// auth middleware. Unauthenticated internal calls fall back to 0.
func actorID(ctx *fiber.Ctx) int {
	if v, ok := ctx.Locals("userID").(float64); ok {
		return int(v)
	}
	return 0
}
