package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"pass-platform/config"
	"pass-platform/handlers"
	"pass-platform/internal/services/ecrm"
	"pass-platform/internal/services/provider"
	"pass-platform/internal/status"
	_ "pass-platform/migrations"
	"pass-platform/models"
	"pass-platform/monitoring"
	"pass-platform/passkit"
	"pass-platform/security"
	"pass-platform/services"
	"pass-platform/utils"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)
	publisher := services.NewPubNubPublisher(pn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var monitor *monitoring.Monitor
	if cfg.EnableMetrics {
		monitor = monitoring.NewMonitor(redisClient)
		go serveMetrics(cfg.MetricsPort)
	}

	// Register payment gateways
	registry := provider.NewRegistry(provider.NewFactory())
	if cfg.VPOSConfig.ClientID != "" {
		if err := registry.Register(ctx, models.ProviderVPOS, &cfg.VPOSConfig); err != nil {
			return err
		}
	}
	if cfg.MyAmeriaConfig.MerchantID != "" {
		if err := registry.Register(ctx, models.ProviderMyAmeria, &cfg.MyAmeriaConfig); err != nil {
			return err
		}
	}

	// Initialize services
	paymentService := services.NewPaymentService(redisClient, publisher, registry, monitor, cfg)
	cardService := services.NewCardService(app, redisClient, publisher, monitor, cfg.PassBaseURL)
	ticketService := services.NewTicketService(app, redisClient, publisher, cfg.PassBaseURL)

	// MyAmeria pushes confirmations instead of waiting to be polled.
	if gw, err := registry.Get(models.ProviderMyAmeria); err == nil {
		confirmations := make(chan *status.Confirmation, 1)
		gw.SetConfirmationChannel(confirmations)
		go paymentService.HandleConfirmations(ctx, confirmations, models.ProviderMyAmeria)
	}

	ecrmClient := ecrm.NewClient(ctx, &cfg.ECRMConfig)

	// Initialize handlers
	venueHandler := handlers.NewVenueHandler(app)
	personHandler := handlers.NewPersonHandler(app)
	eventHandler := handlers.NewEventHandler(app)
	cardHandler := handlers.NewCardHandler(cardService)
	paymentHandler := handlers.NewPaymentHandler(app, paymentService, ticketService)
	ticketHandler := handlers.NewTicketHandler(app, ticketService)
	ecrmHandler := handlers.NewECRMHandler(ecrmClient, monitor, cfg.DefaultCRN)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Wallet pass web service on its own port
	limiter := security.NewRateLimiter(redisClient)
	passServer := passkit.NewServer(cardService, limiter, cfg.PassServicePort)
	go func() {
		if err := passServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("pass service stopped: %v", err)
		}
	}()

	// Setup graceful shutdown
	go handleShutdown(cancel, func(ctx context.Context) {
		registry.Close(ctx)
		passServer.Shutdown(ctx)
	})

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		resyncPendingPayments(app, redisClient)

		// Venue endpoints
		e.Router.POST("/api/v1/venues", venueHandler.CreateVenue)
		e.Router.GET("/api/v1/venues", venueHandler.ListVenues)
		e.Router.GET("/api/v1/venues/{venueId}", venueHandler.GetVenue)
		e.Router.PATCH("/api/v1/venues/{venueId}", venueHandler.UpdateVenue)
		e.Router.DELETE("/api/v1/venues/{venueId}", venueHandler.DeleteVenue)

		// Person endpoints
		e.Router.POST("/api/v1/persons", personHandler.CreatePerson)
		e.Router.GET("/api/v1/persons/{personId}", personHandler.GetPerson)
		e.Router.PATCH("/api/v1/persons/{personId}", personHandler.UpdatePerson)

		// Event endpoints
		e.Router.POST("/api/v1/events", eventHandler.CreateEvent)
		e.Router.GET("/api/v1/events", eventHandler.ListEvents)
		e.Router.GET("/api/v1/events/{eventId}", eventHandler.GetEvent)
		e.Router.PATCH("/api/v1/events/{eventId}", eventHandler.UpdateEvent)

		// Membership card endpoints
		e.Router.POST("/api/v1/cards", cardHandler.IssueCard)
		e.Router.GET("/api/v1/cards/{cardId}", cardHandler.GetCard)
		e.Router.POST("/api/v1/cards/{cardId}/touch", cardHandler.TouchCard)

		// Payment endpoints
		e.Router.POST("/api/v1/payments", paymentHandler.CreatePayment)
		e.Router.GET("/api/v1/payments/{orderId}", paymentHandler.GetPayment)
		e.Router.POST("/api/v1/payments/{orderId}/init", paymentHandler.InitiatePayment)
		e.Router.POST("/api/v1/payments/confirm", paymentHandler.ConfirmPayment)
		e.Router.POST("/api/v1/payments/{orderId}/refund", paymentHandler.RefundPayment)

		// Ticket endpoints
		e.Router.POST("/api/v1/tickets", ticketHandler.IssueTicket)
		e.Router.GET("/api/v1/tickets/{ticketId}", ticketHandler.GetTicket)
		e.Router.POST("/api/v1/tickets/send-link", ticketHandler.SendLink)
		e.Router.GET("/api/v1/tickets/token/{token}", ticketHandler.ValidateToken)
		e.Router.POST("/api/v1/tickets/{ticketId}/attend", ticketHandler.MarkAttendance)
		e.Router.POST("/api/v1/chat/send", ticketHandler.SendChatMessage)

		// Fiscal endpoints
		e.Router.POST("/api/v1/ecrm/print", ecrmHandler.PrintReceipt)
		e.Router.POST("/api/v1/ecrm/check-connection", ecrmHandler.CheckConnection)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		setupRecordHooks(app, publisher, monitor)

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// resyncPendingPayments restores Redis order state for payments the
// database last saw as PENDING, so in-flight checkouts survive a
// restart. The order sequence is bumped past the highest persisted
// order id to keep new ids collision free.
func resyncPendingPayments(app *pocketbase.PocketBase, redisClient *redis.Client) {
	ctx := context.Background()

	var rows []dbx.NullStringMap
	if err := app.DB().NewQuery(
		"SELECT order_id, person_id, event_id, amount, provider, ticket_holders, upstream_payment_id, status FROM payments WHERE status = 'PENDING'",
	).All(&rows); err != nil {
		log.Printf("Error fetching pending payments: %v", err)
		return
	}

	if restored := restorePendingOrders(ctx, redisClient, rows); restored > 0 {
		log.Printf("Restored %d pending payments to Redis", restored)
	}

	var maxRow []dbx.NullStringMap
	if err := app.DB().NewQuery("SELECT MAX(order_id) AS max_order FROM payments").All(&maxRow); err == nil && len(maxRow) > 0 {
		if maxOrder, err := strconv.ParseInt(maxRow[0]["max_order"].String, 10, 64); err == nil {
			bumpOrderSeq(ctx, redisClient, maxOrder)
		}
	}
}

// restorePendingOrders writes the order hashes and upstream indexes for
// persisted PENDING payments that are missing from Redis.
func restorePendingOrders(ctx context.Context, redisClient *redis.Client, rows []dbx.NullStringMap) int {
	restored := 0
	for _, row := range rows {
		orderID := row["order_id"].String
		orderKey := fmt.Sprintf("payment:order:%s", orderID)

		exists, _ := redisClient.Exists(ctx, orderKey).Result()
		if exists > 0 {
			continue
		}

		var holders []string
		if raw := row["ticket_holders"].String; raw != "" {
			holders = strings.Split(raw, ",")
		}
		holdersJSON, _ := json.Marshal(holders)

		fields := map[string]any{
			"order_id":            orderID,
			"person_id":           row["person_id"].String,
			"event_id":            row["event_id"].String,
			"amount":              row["amount"].String,
			"provider":            row["provider"].String,
			"ticket_holders":      string(holdersJSON),
			"upstream_payment_id": row["upstream_payment_id"].String,
			"status":              row["status"].String,
		}
		for k, v := range fields {
			redisClient.HSet(ctx, orderKey, k, v)
		}
		if upstream := row["upstream_payment_id"].String; upstream != "" {
			redisClient.Set(ctx, "payment:upstream:"+upstream, orderID, 0)
		}
		restored++
	}
	return restored
}

// bumpOrderSeq moves the order sequence past the highest persisted
// order id. The comparison is numeric: "9" is below 10.
func bumpOrderSeq(ctx context.Context, redisClient *redis.Client, maxOrder int64) {
	current, _ := redisClient.Get(ctx, "payment:order_seq").Int64()
	if current < maxOrder {
		redisClient.Set(ctx, "payment:order_seq", maxOrder, 0)
	}
}

func setupRecordHooks(app *pocketbase.PocketBase, publisher services.Publisher, monitor *monitoring.Monitor) {
	// Card edits made through the admin dashboard bypass CardService, so
	// broadcast the pass update from the record hook instead.
	app.OnRecordUpdateRequest("member_cards").BindFunc(func(e *core.RecordRequestEvent) error {
		if publisher != nil {
			publisher.Publish("pass-updates", map[string]any{
				"serial_number": e.Record.GetString("serial_number"),
			})
		}
		if monitor != nil {
			monitor.TrackPassUpdate()
		}
		return e.Next()
	})

	// A person leaving member status keeps their card record; flag it so
	// operators know the pass should be revoked.
	app.OnRecordUpdateRequest("persons").BindFunc(func(e *core.RecordRequestEvent) error {
		if e.Record.GetString("status") != string(models.PersonMember) {
			if _, err := app.FindFirstRecordByData("member_cards", "person_id", e.Record.Id); err == nil {
				slog.Warn("person with an issued card left member status",
					"personID", e.Record.Id,
					"status", e.Record.GetString("status"),
				)
			}
		}
		return e.Next()
	})
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("metrics server stopped: %v", err)
	}
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc, cleanup func(ctx context.Context)) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cleanup(context.Background())
	cancel()
}
