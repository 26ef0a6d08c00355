package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"dealscope-backend/ai"
	"dealscope-backend/auth"
	"dealscope-backend/config"
	"dealscope-backend/controller"
	"dealscope-backend/dao"
	"dealscope-backend/db"
	"dealscope-backend/pkg/openai"
	"dealscope-backend/usecase"
)

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal("read config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("init logger:", err)
	}
	defer logger.Sync()

	// 1. DB Connection
	database, err := sql.Open("mysql", cfg.MySQL.DSN())
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Ping(); err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	if err := db.Migrate(database); err != nil {
		logger.Fatal("migrate schema", zap.Error(err))
	}
	logger.Info("connected to database", zap.String("database", cfg.MySQL.Database))

	// 2. Dependency Injection
	sessions := auth.NewManager(cfg.Auth.Secret)

	generator := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, logger)
	provider := ai.NewProvider(generator, logger)

	userRepo := dao.NewUserRepository(database)
	garageRepo := dao.NewGarageRepository(database)
	historyRepo := dao.NewHistoryRepository(database)

	analysisUsecase := usecase.NewAnalysisUsecase(provider, historyRepo)
	userUsecase := usecase.NewUserUsecase(userRepo)
	garageUsecase := usecase.NewGarageUsecase(garageRepo)

	aiController := controller.NewAIController(analysisUsecase, sessions)
	userController := controller.NewUserController(userUsecase, sessions)
	garageController := controller.NewGarageController(garageUsecase, analysisUsecase, sessions)

	// 3. Routing
	http.HandleFunc("/ai/parse", aiController.HandleParse)
	http.HandleFunc("/ai/compare", aiController.HandleCompare)
	http.HandleFunc("/ai/score", aiController.HandleScore)
	http.HandleFunc("/ai/risk", aiController.HandleRisk)
	http.HandleFunc("/ai/negotiate", aiController.HandleNegotiate)
	http.HandleFunc("/ai/qa", aiController.HandleQa)
	http.HandleFunc("/ai/analyze", aiController.HandleAnalyze)

	http.HandleFunc("/auth/register", userController.Register)
	http.HandleFunc("/auth/login", userController.Login)
	http.HandleFunc("/auth/logout", userController.Logout)
	http.HandleFunc("/auth/me", userController.Me)

	http.HandleFunc("/user/garage", garageController.HandleGarage)
	http.HandleFunc("/user/history", garageController.HandleHistory)

	// 4. Start Server
	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := http.ListenAndServe(":"+cfg.Server.Port, nil); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
