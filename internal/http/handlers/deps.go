package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/assistant"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/config"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/repos"
	"github.com/Rohit-Pratap-Singh-Tech/SuperMarket-Deploy/internal/services"
)

type Deps struct {
	CategoryHandler    *CategoryHandler
	ProductHandler     *ProductHandler
	SaleHandler        *SaleHandler
	TransactionHandler *TransactionHandler
	ReportHandler      *ReportHandler
	UserHandler        *UserHandler
	AssistantHandler   *AssistantHandler

	Auth *services.AuthService
}

// NewDeps wires repos, services, and handlers. The assistant model is
// optional; nil leaves the assistant endpoint answering 503.
func NewDeps(db *sqlx.DB, cfg config.Config, model assistant.Model) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(prodRepo, saleRepo)
	ledgerSvc := services.NewLedgerService(saleRepo)
	reportSvc := services.NewReportService(saleRepo)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)

	var assist *assistant.Assistant
	if model != nil {
		assist = assistant.New(model, assistant.DefaultRegistry(reportSvc, catalogSvc, ledgerSvc))
	}

	return &Deps{
		CategoryHandler:    &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:     &ProductHandler{Catalog: catalogSvc},
		SaleHandler:        &SaleHandler{Ledger: ledgerSvc},
		TransactionHandler: &TransactionHandler{Checkout: checkoutSvc, Ledger: ledgerSvc},
		ReportHandler:      &ReportHandler{Reports: reportSvc},
		UserHandler:        &UserHandler{Auth: authSvc},
		AssistantHandler:   &AssistantHandler{Assist: assist},
		Auth:               authSvc,
	}
}
