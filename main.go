package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsgo_config "github.com/aws/aws-sdk-go-v2/config" // Alias để tránh trùng tên
	"github.com/aws/aws-sdk-go-v2/service/iotdataplane"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/sfwannn/AssingentOOAD/internal/api"
	"github.com/sfwannn/AssingentOOAD/internal/api/handler"
	"github.com/sfwannn/AssingentOOAD/internal/api/middleware"
	"github.com/sfwannn/AssingentOOAD/internal/billing"
	"github.com/sfwannn/AssingentOOAD/internal/config"
	"github.com/sfwannn/AssingentOOAD/internal/facility"
	"github.com/sfwannn/AssingentOOAD/internal/iot"
	"github.com/sfwannn/AssingentOOAD/internal/repository/postgresql"
	"github.com/sfwannn/AssingentOOAD/internal/service"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Cấu hình đã được tải.")

	// 2. Setup Database Connection
	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("Không thể kết nối database: %v", err)
	}
	defer db.Close()
	log.Println("Đã kết nối database thành công!")

	if err := postgresql.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("Không thể tạo schema database: %v", err)
	}

	// 3. Khởi tạo AWS SDK Config
	awsSDKCfg, err := awsgo_config.LoadDefaultConfig(context.TODO(), awsgo_config.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("Không thể tải AWS SDK config: %v", err)
	}
	log.Println("Đã tải AWS SDK config thành công cho region:", cfg.AWSRegion)

	// 4. Khởi tạo AWS Clients
	sqsClient := sqs.NewFromConfig(awsSDKCfg)
	iotDataPlaneClient := iotdataplane.NewFromConfig(awsSDKCfg, func(o *iotdataplane.Options) {
		if cfg.IoTMQTTEndpoint != "" {
			endpointWithSchema := cfg.IoTMQTTEndpoint
			if !strings.HasPrefix(endpointWithSchema, "https://") && !strings.HasPrefix(endpointWithSchema, "http://") {
				endpointWithSchema = "https://" + endpointWithSchema
			}
			o.BaseEndpoint = aws.String(endpointWithSchema)
		}
	})
	log.Println("Đã khởi tạo SQS client và IoT Data Plane client.")

	rekognitionClient := rekognition.NewFromConfig(awsSDKCfg)
	lprService := service.NewLPRService(rekognitionClient)

	// 5. Initialize Repositories
	userRepo := postgresql.NewPgUserRepository(db)
	sessionRepo := postgresql.NewPgSessionRepository(db)
	paymentRepo := postgresql.NewPgPaymentRepository(db)
	fineRepo := postgresql.NewPgUnpaidFineRepository(db)
	schemeRepo := postgresql.NewPgFineSchemeHistoryRepository(db)
	registryRepo := postgresql.NewPgPlateRegistryRepository(db)

	// 6. Dựng danh mục bãi và ledger
	catalog, err := facility.NewFacility(cfg.FacilityName, facility.DefaultLayout())
	if err != nil {
		log.Fatalf("Không thể dựng danh mục bãi đỗ: %v", err)
	}
	ledger := facility.NewLedger(catalog)
	timeline := billing.NewTimeline()
	engine := billing.NewEngine(timeline, cfg.FineCardDiscount)
	log.Printf("Đã dựng danh mục bãi '%s' với %d chỗ đỗ.", catalog.Name, catalog.TotalSpots())

	// init websocket manager
	webSocketManager := handler.NewWebSocketManager()
	go webSocketManager.Start()
	log.Println("WebSocket Manager đã được khởi động.")

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	parkingService := service.NewParkingService(catalog, ledger, engine, timeline,
		sessionRepo, paymentRepo, fineRepo, schemeRepo, registryRepo)
	parkingService.SetNotifier(webSocketManager)
	gateService := service.NewGateService(iotDataPlaneClient, cfg)
	gateService.SetNotifier(webSocketManager)

	// 8. Khôi phục trạng thái: phiên mở và lịch sử biểu phạt
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
	if err := parkingService.Restore(restoreCtx); err != nil {
		cancelRestore()
		log.Fatalf("Không thể khôi phục trạng thái từ database: %v", err)
	}
	cancelRestore()

	// 9. Initialize Auth Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// 10. Khởi tạo và Chạy SQS Consumer
	var wg sync.WaitGroup
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())

	if cfg.SQSEventQueueURL == "" {
		log.Println("CẢNH BÁO: SQS_EVENT_QUEUE_URL chưa được cấu hình. SQS Consumer sẽ không chạy.")
	} else {
		sqsConsumer := iot.NewSQSConsumer(sqsClient, cfg, gateService)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sqsConsumer.Start(consumerCtx)
			log.Println("SQS Consumer đã dừng.")
		}()
	}

	// 11. Setup HTTP Router
	router := api.SetupRouter(authService, parkingService, gateService, lprService, authMiddleware, webSocketManager)

	// 12. Start HTTP Server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server đang chạy trên port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Lỗi ListenAndServe(): %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Đang tắt server...")

	cancelConsumer()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server buộc phải tắt: %v", err)
	}

	if cfg.SQSEventQueueURL != "" {
		log.Println("Đang chờ SQS consumer dừng (tối đa 5 giây)...")
		c := make(chan struct{})
		go func() {
			defer close(c)
			wg.Wait()
		}()
		select {
		case <-c:
			log.Println("SQS consumer đã dừng hoàn toàn.")
		case <-time.After(5 * time.Second):
			log.Println("SQS consumer không dừng trong thời gian chờ.")
		}
	}

	log.Println("Server đã tắt.")
}
