package routes

import (
	"github.com/Asep3580/kopkaka/controllers"
	"github.com/Asep3580/kopkaka/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		// ================= PUBLIC =================
		api.POST("/register", controllers.Register)
		api.POST("/login", controllers.Login)

		// ================= ADMIN APP =================
		admin := api.Group("/admin", middlewares.AuthMiddleware())
		{
			admin.GET("/dashboard-stats", middlewares.Authorize("viewDashboard"), controllers.GetDashboardStats)

			members := admin.Group("/members", middlewares.Authorize("viewMembers", "viewApprovals"))
			{
				members.GET("/", controllers.GetAllMembers)
				members.GET("/:id", controllers.GetMemberByID)
				members.PUT("/:id/status", middlewares.Authorize("viewApprovals"), controllers.UpdateMemberStatus)
				members.PUT("/:id/role", middlewares.Authorize("manageUsers"), controllers.UpdateMemberRole)
				members.GET("/:id/savings", middlewares.Authorize("viewSavings"), controllers.GetSavingsByMember)
			}

			savings := admin.Group("/savings", middlewares.Authorize("viewSavings"))
			{
				savings.GET("/", controllers.GetSavings)
				savings.POST("/", middlewares.Authorize("approveSaving"), controllers.CreateSaving)
				savings.PUT("/:id", middlewares.Authorize("approveSaving"), controllers.UpdateSaving)
				savings.PUT("/:id/status", middlewares.Authorize("approveSaving"), controllers.UpdateSavingStatus)
				savings.DELETE("/:id", middlewares.Authorize("deleteData"), controllers.DeleteSaving)

				savings.POST("/bulk-upload", middlewares.Authorize("approveSaving"), controllers.UploadBulkSavings)
				savings.GET("/bulk-template", middlewares.Authorize("approveSaving"), controllers.ExportSavingsTemplate)
			}

			loans := admin.Group("/loans", middlewares.Authorize("viewLoans", "viewApprovals"))
			{
				loans.GET("/", controllers.GetLoans)
				loans.GET("/pending", controllers.GetPendingLoans)
				loans.GET("/:id", controllers.GetLoanDetails)
				loans.PUT("/:id/status", middlewares.Authorize("approveLoanAccounting", "approveLoanManager"), controllers.UpdateLoanStatus)
				loans.POST("/payment", middlewares.Authorize("viewLoans"), controllers.RecordLoanPayment)
				loans.DELETE("/:id", middlewares.Authorize("deleteData"), controllers.DeleteLoan)
			}

			accounting := admin.Group("/accounting", middlewares.Authorize("viewAccounting"))
			{
				accounting.GET("/accounts", controllers.GetAccounts)
				accounting.GET("/accounts/journalable", controllers.GetJournalableAccounts)
				accounting.POST("/accounts", controllers.CreateAccount)
				accounting.PUT("/accounts/:id", controllers.UpdateAccount)
				accounting.DELETE("/accounts/:id", middlewares.Authorize("deleteData"), controllers.DeleteAccount)
				accounting.GET("/accounts/export", controllers.ExportAccountsToExcel)
				accounting.POST("/accounts/import", controllers.ImportAccountsFromExcel)
				accounting.GET("/account-types", controllers.GetAccountTypes)

				accounting.GET("/journals", controllers.GetJournals)
				accounting.GET("/journals/:id", controllers.GetJournalByID)
				accounting.POST("/journals", controllers.CreateJournal)
				accounting.PUT("/journals/:id", controllers.UpdateJournal)
				accounting.DELETE("/journals/:id", middlewares.Authorize("deleteData"), controllers.DeleteJournal)
			}

			reports := admin.Group("/reports", middlewares.Authorize("viewReports"))
			{
				reports.GET("/general-ledger", controllers.GetGeneralLedger)
				reports.GET("/income-statement", controllers.GetIncomeStatement)
				reports.GET("/balance-sheet", controllers.GetBalanceSheet)
			}

			settings := admin.Group("/settings", middlewares.Authorize("viewSettings"))
			{
				settings.GET("/saving-types", controllers.GetSavingTypes)
				settings.POST("/saving-types", controllers.CreateSavingType)
				settings.PUT("/saving-types/:id", controllers.UpdateSavingType)
				settings.DELETE("/saving-types/:id", middlewares.Authorize("deleteData"), controllers.DeleteSavingType)
				settings.PUT("/saving-types/:id/account", controllers.MapSavingAccount)

				settings.GET("/loan-types", controllers.GetLoanTypes)
				settings.POST("/loan-types", controllers.CreateLoanType)
				settings.PUT("/loan-types/:id", controllers.UpdateLoanType)
				settings.DELETE("/loan-types/:id", middlewares.Authorize("deleteData"), controllers.DeleteLoanType)
				settings.PUT("/loan-types/:id/account", controllers.MapLoanAccount)

				settings.GET("/loan-terms", controllers.GetLoanTerms)
				settings.POST("/loan-terms", controllers.CreateLoanTerm)
				settings.DELETE("/loan-terms/:id", middlewares.Authorize("deleteData"), controllers.DeleteLoanTerm)
			}

			toko := admin.Group("/toko", middlewares.Authorize("viewToko"))
			{
				toko.GET("/products", controllers.GetProducts)
				toko.POST("/products", controllers.CreateProduct)
				toko.PUT("/products/:id", controllers.UpdateProduct)
				toko.DELETE("/products/:id", middlewares.Authorize("deleteData"), controllers.DeleteProduct)

				toko.GET("/sales", controllers.GetSales)
				toko.POST("/sales", controllers.CreateCashSale)
				toko.PUT("/sales/:id/status", controllers.UpdateSaleStatus)
			}
		}

		// ================= MEMBER APP =================
		member := api.Group("/member", middlewares.AuthMiddleware())
		{
			member.GET("/profile", controllers.GetMemberProfile)
			member.PUT("/profile/password", controllers.ChangePassword)

			member.GET("/savings", controllers.GetMySavings)
			member.POST("/savings", controllers.CreateSavingApplication)
			member.POST("/withdrawals", controllers.CreateWithdrawalApplication)
			member.GET("/savings/voluntary-balance", controllers.GetVoluntaryBalance)

			member.GET("/loans", controllers.GetMyLoans)
			member.GET("/loans/active", controllers.GetActiveLoanForPayment)
			member.GET("/loans/:id", controllers.GetMyLoanDetails)
			member.POST("/loans", controllers.CreateLoanApplication)
			member.GET("/loan-types", controllers.GetLoanTypes)
			member.GET("/loan-terms", controllers.GetLoanTerms)
			member.GET("/saving-types", controllers.GetSavingTypes)

			member.GET("/products", controllers.GetProducts)
			member.GET("/orders", controllers.GetMyOrders)
			member.POST("/orders", controllers.CreateOrder)
		}
	}
}
