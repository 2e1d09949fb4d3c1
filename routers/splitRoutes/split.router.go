package splitRoutes

import (
	splitController "mediary/controllers/split"
	"mediary/middleware"
	splitValidator "mediary/validators/split"

	"github.com/gofiber/fiber/v2"
)

func SetupSplitRoutes(app *fiber.App) {
	splitGroup := app.Group("/split-config")

	splitGroup.Get("/active", middleware.JWTMiddleware, splitController.GetActiveSplitConfig)
	splitGroup.Get("/", middleware.JWTMiddleware, splitController.ListSplitConfigs)
	splitGroup.Post("/", splitValidator.SplitConfig(), middleware.JWTMiddleware, splitController.ActivateSplitConfig)
	splitGroup.Put("/:id", splitValidator.SplitConfig(), middleware.JWTMiddleware, splitController.UpdateSplitConfig)
}
