package handlers

import (
	"shopnest/internal/repos"
	"shopnest/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	RewardHandler  *RewardHandler
	AlertHandler   *AlertHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	rewardRepo := repos.NewRewardRepo(db)
	alertRepo := repos.NewAlertRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(orderRepo)
	rewardSvc := services.NewRewardService(rewardRepo)
	alertSvc := services.NewAlertService(alertRepo, prodRepo)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc},
		RewardHandler:  &RewardHandler{Rewards: rewardSvc},
		AlertHandler:   &AlertHandler{Alerts: alertSvc},
		AdminHandler:   &AdminHandler{Order: orderSvc},
	}
}
