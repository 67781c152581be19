package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mrvekratl/BE124/internal/application/account"
	"github.com/mrvekratl/BE124/internal/application/auth"
	"github.com/mrvekratl/BE124/internal/application/cart"
	"github.com/mrvekratl/BE124/internal/application/checkout"
	"github.com/mrvekratl/BE124/internal/application/usecase"
	domaincart "github.com/mrvekratl/BE124/internal/domain/cart"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	infrakafka "github.com/mrvekratl/BE124/internal/infrastructure/kafka"
	"github.com/mrvekratl/BE124/internal/infrastructure/memory"
	infrapdf "github.com/mrvekratl/BE124/internal/infrastructure/pdf"
	"github.com/mrvekratl/BE124/internal/infrastructure/postgres"
	infraredis "github.com/mrvekratl/BE124/internal/infrastructure/redis"
	"github.com/mrvekratl/BE124/internal/infrastructure/storage"
	httpRouter "github.com/mrvekratl/BE124/internal/interfaces/http"
	"github.com/mrvekratl/BE124/pkg/config"
	"github.com/mrvekratl/BE124/pkg/logger"
)

// txRunner lo implementan postgres.TxRunner y memory.TxRunner.
type txRunner interface {
	checkout.TxRunner
	account.TxRunner
	usecase.CatalogTxRunner
}

// stores agrupa los repositorios del driver elegido.
type stores struct {
	tx             txRunner
	users          repository.UserRepository
	roles          repository.RoleRepository
	categories     repository.CategoryRepository
	discounts      repository.DiscountRepository
	products       repository.ProductRepository
	images         repository.ProductImageRepository
	comments       repository.CommentRepository
	contacts       repository.ContactRepository
	cart           repository.CartRepository
	orders         repository.OrderRepository
	sellerRequests repository.SellerRequestRepository
	close          func()
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*stores, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		tx:             postgres.NewTxRunner(pool),
		users:          postgres.NewUserRepository(pool),
		roles:          postgres.NewRoleRepository(pool),
		categories:     postgres.NewCategoryRepository(pool),
		discounts:      postgres.NewDiscountRepository(pool),
		products:       postgres.NewProductRepository(pool),
		images:         postgres.NewProductImageRepository(pool),
		comments:       postgres.NewCommentRepository(pool),
		contacts:       postgres.NewContactRepository(pool),
		cart:           postgres.NewCartRepository(pool),
		orders:         postgres.NewOrderRepository(pool),
		sellerRequests: postgres.NewSellerRequestRepository(pool),
		close:          pool.Close,
	}, nil
}

func openMemory() *stores {
	s := memory.New()
	return &stores{
		tx:             memory.NewTxRunner(s),
		users:          memory.NewUserRepository(s),
		roles:          memory.NewRoleRepository(s),
		categories:     memory.NewCategoryRepository(s),
		discounts:      memory.NewDiscountRepository(s),
		products:       memory.NewProductRepository(s),
		images:         memory.NewProductImageRepository(s),
		comments:       memory.NewCommentRepository(s),
		contacts:       memory.NewContactRepository(s),
		cart:           memory.NewCartRepository(s),
		orders:         memory.NewOrderRepository(s),
		sellerRequests: memory.NewSellerRequestRepository(s),
		close:          func() {},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	var st *stores
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		st = openMemory()
	} else {
		st, err = openPostgres(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
	}
	defer st.close()

	var checkoutOpts []checkout.Option
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer client.Close()
		checkoutOpts = append(checkoutOpts, checkout.WithIdempotency(infraredis.NewIdempotencyStore(client)))
	}
	if cfg.Kafka.Enabled() {
		writer := infrakafka.NewWriter(cfg.Kafka)
		defer func() {
			if err := writer.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor Kafka")
			}
		}()
		checkoutOpts = append(checkoutOpts, checkout.WithPublisher(infrakafka.NewOrderPublisher(writer)))
	}

	policy, err := domaincart.ParsePolicy(cfg.Cart.QuantityPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de cantidades del carrito")
	}
	images, err := storage.NewLocalStorage(cfg.Storage.UploadsDir, cfg.Storage.UploadsBaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Storage.UploadsDir).Msg("directorio de imágenes")
	}

	checkoutUC := checkout.NewUseCase(st.tx, st.orders, log.Component("checkout"), checkoutOpts...)
	receiptUC := checkout.NewReceiptUseCase(checkoutUC, infrapdf.NewReceiptGenerator(cfg.App.Name))
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(st.tx, st.products, st.images, st.categories, st.discounts,
		st.comments, images, log.Component("products"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if cfg.HTTP.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.HTTP.RateLimitMax,
			Expiration: time.Minute,
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BE124 Store API",
	}))

	app.Static(cfg.Storage.UploadsBaseURL, cfg.Storage.UploadsDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProfileUC:  account.NewProfileUseCase(st.users),
		SellerUC:   account.NewSellerUseCase(st.tx, st.users, st.roles, st.sellerRequests, log.Component("accounts")),
		CartUC:     cart.NewUseCase(st.cart, st.products, policy),
		CheckoutUC: checkoutUC,
		ReceiptUC:  receiptUC,
		ProductUC:  productUC,
		CategoryUC: usecase.NewCategoryUseCase(st.categories),
		CommentUC:  usecase.NewCommentUseCase(st.comments, st.products),
		ContactUC:  usecase.NewContactUseCase(st.contacts),
		UserUC:     usecase.NewUserUseCase(st.users),
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
