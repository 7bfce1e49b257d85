package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "loanvault/internal/adapter/http"
	idemp "loanvault/internal/adapter/middleware"
	"loanvault/internal/adapter/repository/mysql"
	"loanvault/internal/config"
	"loanvault/internal/infrastructure/cache"
	"loanvault/internal/infrastructure/db"
	"loanvault/internal/oracle"
	"loanvault/internal/usecase/account"
	"loanvault/internal/usecase/loan"
	"loanvault/internal/usecase/protocol"
	"loanvault/internal/usecase/registry"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	uow := mysql.NewGormUoW(gdb)
	users := mysql.NewUserRepository(gdb)
	vaults := mysql.NewVaultRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)

	var validator *oracle.Validator
	if cfg.OracleEnabled {
		validator = oracle.NewValidator(oracle.NewRedisFeedReader(rdb))
	} else {
		log.Println("oracle disabled: loan origination will not be price-gated")
	}

	configUC := protocol.NewUsecase(uow)
	registryUC := registry.NewUsecase(vaults, uow)
	accountUC := account.NewUsecase(users, uow)
	loanUC := loan.NewUsecase(loans, uow, validator)

	h := httpadp.NewHandler()
	configH := httpadp.NewConfigHandler(configUC)
	vaultH := httpadp.NewVaultHandler(registryUC)
	userH := httpadp.NewUserHandler(accountUC)
	loanH := httpadp.NewLoanHandler(loanUC)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(idemp.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	e.Validator = httpadp.NewValidator()

	// routes
	e.GET("/health", h.Health)
	e.POST("/config", configH.InitializeConfig)
	e.POST("/vaults", vaultH.RegisterToken)
	e.GET("/vaults/:vault_id", vaultH.GetVault)
	e.POST("/users", userH.InitUser)
	e.GET("/users/:wallet", userH.GetUser)
	e.POST("/deposits", userH.Deposit)
	e.POST("/loans", loanH.InitializeLoan)
	e.GET("/loans/:loan_id", loanH.GetLoan)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
