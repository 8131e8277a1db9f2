package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"epost-backend/internal/config"
	"epost-backend/internal/controller"
	"epost-backend/internal/middleware"
	"epost-backend/internal/qrcode"
	"epost-backend/internal/rabbit"
	"epost-backend/internal/repository"
	"epost-backend/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Conexión a MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDBName)

	// Repositorios y servicios
	userRepo := repository.NewMongoUserRepository(db)
	parcelRepo := repository.NewMongoParcelRepository(db)
	trackingRepo := repository.NewMongoTrackingRepository(db)
	containerRepo := repository.NewMongoContainerRepository(db)

	codes := qrcode.New()

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.RolePrefixes, cfg.BranchCodes, cfg.HomeBranch)
	parcelService := service.NewParcelService(parcelRepo, trackingRepo, codes, cfg.QRParcelDir)
	containerService := service.NewContainerService(containerRepo, parcelRepo, codes, cfg.QRContainerDir)

	// Handlers
	authCtrl := controller.NewAuthController(authService)
	parcelCtrl := controller.NewParcelController(parcelService)
	containerCtrl := controller.NewContainerController(containerService)

	// Router
	r := gin.Default()

	// Imágenes QR generadas
	r.Static("/qrcodes/parcels", cfg.QRParcelDir)
	r.Static("/qrcodes/containers", cfg.QRContainerDir)

	// Rutas públicas
	auth := r.Group("/api/auth")
	auth.POST("/register/customer", authCtrl.RegisterCustomer)
	auth.POST("/signup/staff", authCtrl.SignupStaff)
	auth.POST("/login", authCtrl.Login)
	auth.POST("/logout", authCtrl.Logout)
	auth.GET("/count", authCtrl.Count)
	auth.GET("/latest", authCtrl.LatestStaffID)
	auth.POST("/add-tracking", middleware.AuthMiddleware(authService), authCtrl.AddTracking)

	parcels := r.Group("/api/parcels")
	parcels.GET("/track/:trackingId", parcelCtrl.Track) // tracking público
	parcels.GET("/count", parcelCtrl.Count)
	parcels.GET("/inTransitCount", parcelCtrl.InTransitCount)

	// Rutas protegidas (requieren token; el rol lo chequea el service)
	authed := parcels.Group("/")
	authed.Use(middleware.AuthMiddleware(authService))
	authed.POST("/create", parcelCtrl.Create)
	authed.GET("/getParcels", parcelCtrl.GetParcels)
	authed.PUT("/update/:trackingId", parcelCtrl.Update)
	authed.DELETE("/delete/:trackingId", parcelCtrl.Delete)

	containers := r.Group("/api/containers")
	containers.Use(middleware.AuthMiddleware(authService))
	containers.POST("", containerCtrl.Create)
	containers.PUT("/update/:containerId", containerCtrl.Update)
	containers.GET("/track/:containerId", containerCtrl.Track)

	// Conexión a RabbitMQ (opcional: sin broker el server funciona igual)
	if cfg.RabbitURL != "" {
		conn, err := amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			log.Println("❌ Error conectando a RabbitMQ:", err)
		} else {
			ch, err := conn.Channel()
			if err != nil {
				log.Println("❌ Error creando canal en RabbitMQ:", err)
			} else {
				rabbit.SetupConsumers(ch, containerService)
			}
		}
	}

	// Ejecutar servidor
	log.Printf("Postal System API ejecutándose en puerto %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
