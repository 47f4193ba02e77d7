package main

import (
	"log"
	"os"

	_ "oms-backend/api/swagger" // swagger docs
	"oms-backend/internal/database"
	"oms-backend/internal/handler"
	"oms-backend/internal/middleware"
	"oms-backend/internal/repository"
	"oms-backend/internal/service"
	"oms-backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Order & Workforce Management API
// @version         1.0
// @description     Order fulfillment workflow, attendance, proof-of-execution compliance and HR APIs.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub for the live ops feed
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	proofRepo := repository.NewProofRepository(db)
	timeOffRepo := repository.NewTimeOffRepository(db)
	auditRepo := repository.NewStatusAuditRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	userService := service.NewUserService(userRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, txManager)
	orderService := service.NewOrderService(orderRepo, userRepo, txManager, wsHub)
	proofService := service.NewProofService(proofRepo, orderRepo, attendanceRepo, txManager, wsHub)
	timeOffService := service.NewTimeOffService(timeOffRepo, userRepo, txManager)
	overrideService := service.NewOverrideService(userRepo, attendanceRepo, auditRepo, txManager, wsHub)
	visitService := service.NewVisitService(visitRepo)
	analyticsService := service.NewAnalyticsService(db, attendanceRepo, timeOffRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	orderHandler := handler.NewOrderHandler(orderService)
	proofHandler := handler.NewProofHandler(proofService)
	timeOffHandler := handler.NewTimeOffHandler(timeOffService)
	overrideHandler := handler.NewOverrideHandler(overrideService)
	visitHandler := handler.NewVisitHandler(visitService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	attendanceHandler.RegisterRoutes(router.Group(""))
	orderHandler.RegisterRoutes(router.Group(""))
	proofHandler.RegisterRoutes(router.Group(""))
	timeOffHandler.RegisterRoutes(router.Group(""))
	overrideHandler.RegisterRoutes(router.Group(""))
	visitHandler.RegisterRoutes(router.Group(""))
	analyticsHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
