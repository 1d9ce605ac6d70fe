package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/obrasync/estoque-api/internal/application/auth"
	appdelivery "github.com/obrasync/estoque-api/internal/application/delivery"
	appinv "github.com/obrasync/estoque-api/internal/application/inventory"
	"github.com/obrasync/estoque-api/internal/application/usecase"
	"github.com/obrasync/estoque-api/internal/infrastructure/notification"
	"github.com/obrasync/estoque-api/internal/infrastructure/postgres"
	"github.com/obrasync/estoque-api/internal/infrastructure/redisstore"
	httpRouter "github.com/obrasync/estoque-api/internal/interfaces/http"
	"github.com/obrasync/estoque-api/pkg/config"
	"github.com/obrasync/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificador de estoque baixo: desligado sem RESEND_API_KEY.
	var notifier appinv.Notifier
	if cfg.Mail.ResendAPIKey != "" {
		notifier = notification.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.From, cfg.Mail.Recipients)
	} else {
		log.Warn().Msg("RESEND_API_KEY ausente, alertas de estoque baixo desativados")
	}

	// Cooldown via Redis: opcional; sem ele todo cruzamento de limite alerta.
	var cooldown appinv.CooldownStore
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("redis indisponível, seguindo sem cooldown de alertas")
		} else {
			defer client.Close()
			cooldown = redisstore.NewAlertCooldown(client, time.Duration(cfg.Redis.CooldownMinutes)*time.Minute)
		}
	}

	alerter := appinv.NewAlerter(notifier, cooldown, log)

	productUC := usecase.NewProductUseCase(productRepo)
	movementUC := appinv.NewMovementUseCase(txRunner, movementRepo, alerter)
	deliveryUC := appdelivery.NewUseCase(txRunner, deliveryRepo, alerter)
	authUC := auth.NewUseCase(cfg.Auth, cfg.JWT)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		MovementUC: movementUC,
		DeliveryUC: deliveryUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação finalizada")
}
