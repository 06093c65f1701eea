package main

import (
	"log"
	"os"

	"sitesketch-service/internal/database"
	"sitesketch-service/internal/handlers"
	"sitesketch-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	walletService := services.NewWalletService(db)
	stageService := services.NewPaymentStageService(db)
	partPaymentService := services.NewPartPaymentService(db, walletService, stageService, asynqClient)
	progressService := services.NewProgressService(db)
	projectService := services.NewProjectService(db)
	materialService := services.NewMaterialService(db)
	reconciliationService := services.NewReconciliationService(db, stageService)

	// Handlers
	walletHandler := handlers.NewWalletHandler(walletService)
	paymentHandler := handlers.NewPaymentHandler(stageService, partPaymentService)
	projectHandler := handlers.NewProjectHandler(projectService, progressService)
	materialHandler := handlers.NewMaterialHandler(materialService)

	// Initialize Gin
	r := gin.Default()

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to SiteSketch service",
		})
	})

	// Project Routes
	r.POST("/projects", projectHandler.CreateProject)
	r.GET("/projects", projectHandler.ListProjects)
	r.GET("/projects/:id", projectHandler.GetProject)
	r.PATCH("/projects/:id", projectHandler.UpdateProject)
	r.POST("/projects/:id/stages", projectHandler.CreateProjectStage)
	r.GET("/projects/:id/stages", projectHandler.ListProjectStages)
	r.POST("/projects/:id/site-updates", projectHandler.CreateSiteUpdate)
	r.GET("/projects/:id/site-updates", projectHandler.ListSiteUpdates)

	// Task / Subtask Routes
	r.POST("/tasks", projectHandler.CreateTask)
	r.PATCH("/tasks/:id/status", projectHandler.UpdateTaskStatus)
	r.DELETE("/tasks/:id", projectHandler.DeleteTask)
	r.GET("/stages/:id/tasks", projectHandler.ListTasks)
	r.POST("/subtasks", projectHandler.CreateSubTask)
	r.PATCH("/subtasks/:id/status", projectHandler.UpdateSubTaskStatus)
	r.DELETE("/subtasks/:id", projectHandler.DeleteSubTask)
	r.GET("/tasks/:id/subtasks", projectHandler.ListSubTasks)

	// Wallet Routes
	r.GET("/wallets/:projectId", walletHandler.GetWallet)
	r.GET("/wallets/:projectId/transactions", walletHandler.ListTransactions)

	// Payment Stage Routes
	r.POST("/payment-stages", paymentHandler.CreatePaymentStage)
	r.GET("/payment-stages", paymentHandler.ListPaymentStages)
	r.GET("/payment-stages/:id", paymentHandler.GetPaymentStage)
	r.PATCH("/payment-stages/:id", paymentHandler.UpdatePaymentStage)
	r.DELETE("/payment-stages/:id", paymentHandler.DeletePaymentStage)

	// Part Payment Routes
	r.POST("/part-payments", paymentHandler.CreatePartPayment)
	r.GET("/part-payments", paymentHandler.ListPartPayments)
	r.PATCH("/part-payments/:id", paymentHandler.UpdatePartPayment)
	r.DELETE("/part-payments/:id", paymentHandler.DeletePartPayment)
	r.POST("/part-payments/:id/acknowledge", paymentHandler.AcknowledgePartPayment)

	// Material Routes
	r.POST("/material-categories", materialHandler.SaveCategory)
	r.GET("/material-categories", materialHandler.ListCategories)
	r.POST("/materials", materialHandler.SaveMaterial)
	r.GET("/materials", materialHandler.ListMaterials)
	r.DELETE("/materials/:id", materialHandler.DeleteMaterial)

	// Start Cron Schedulers
	stageService.StartScheduler()
	reconciliationService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
