package main

import (
	"fiber-tms/config"
	"fiber-tms/controllers/idgen"
	"fiber-tms/database"
	"fiber-tms/routes"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()

	app := fiber.New()

	database.EnsureDatabaseExists(config.DBName)

	db, err := database.OpenDatabaseConnection(config.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupDashboardRoutes(app, db)
	routes.SetupCustomerRoutes(app, db)
	routes.SetupDriverRoutes(app, db)
	routes.SetupVehicleRoutes(app, db)
	routes.SetupJobOrderRoutes(app, db)
	routes.SetupManifestRoutes(app, db)
	routes.SetupDeliveryOrderRoutes(app, db)
	routes.SetupInvoiceRoutes(app, db)

	log.Printf("Listening on port %s", config.APP_PORT)
	if err := app.Listen(fmt.Sprintf(":%s", config.APP_PORT)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
