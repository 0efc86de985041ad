package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"checkout-service/clients"
	"checkout-service/common/logger"
	"checkout-service/config"
	"checkout-service/controllers"
	"checkout-service/database"
	"checkout-service/kafka"
	"checkout-service/models"
	"checkout-service/repository"
	"checkout-service/routes"
	"checkout-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CheckoutService] Failed to load config: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	db, err := database.ConnectPostgres(cfg, logger.Log, &models.PaymentAttempt{})
	if err != nil {
		log.Fatalf("[CheckoutService] Failed to connect to Postgres: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("[CheckoutService] Failed to connect to Redis: %v", err)
	}

	intentRepo := database.NewIntentRepository(redisClient, cfg.IntentTTL)
	paymentRepo := repository.NewGormPaymentRepo(db)

	cartClient := clients.NewCartClient(cfg.CartServiceURL, 5*time.Second)
	orderClient := clients.NewOrderClient(cfg.OrderServiceURL, 10*time.Second)
	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.FrontendURL, cfg.Currency)

	var events services.EventPublisher
	var producer *kafka.Producer
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		defer producer.Close()
		events = producer
	}

	checkoutSvc := services.NewCheckoutService(
		cartClient, orderClient, stripeSvc, intentRepo, paymentRepo, events,
		cfg.Currency, cfg.IntentTTL, logger.Log,
	)
	reconcileSvc := services.NewReconcileService(
		intentRepo, orderClient, paymentRepo, events,
		cfg.IntentTTL, logger.Log,
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	cc := controllers.NewCheckoutController(checkoutSvc)
	pc := controllers.NewPaymentController(reconcileSvc, checkoutSvc)
	routes.RegisterRoutes(r, cc, pc, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("[CheckoutService] Running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[CheckoutService] Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[CheckoutService] Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[CheckoutService] Shutdown error: %v", err)
	}
	log.Println("[CheckoutService] Server shutdown complete.")
}
