package main

import (
	"os"

	"github.com/Asep3580/kopkaka/config"
	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/routes"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env opsional; di production semua lewat ENV asli.
	_ = godotenv.Load()

	config.ConnectDB()
	config.LoadAccountNumbers()

	config.DB.AutoMigrate(
		&models.Member{},
		&models.Permission{},
		&models.RolePermission{},
		&models.AccountType{},
		&models.Account{},
		&models.Journal{},
		&models.JournalEntry{},
		&models.SavingType{},
		&models.Saving{},
		&models.LoanType{},
		&models.LoanTerm{},
		&models.Loan{},
		&models.LoanInstallment{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
	)

	config.SeedPermissions()
	config.SeedAccounting()

	// override secret dari ENV (Render)
	if s := os.Getenv("JWT_SECRET"); s != "" {
		utils.Secret = []byte(s)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "🚀 KOPKAKA API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	_ = r.Run(":" + port)
}
