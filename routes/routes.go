package routes

import (
	"eatmove/configs"
	"eatmove/controllers"
	"eatmove/middlewares"
	"eatmove/pkg/cache"
	"eatmove/pkg/events"
	"eatmove/repository"
	"eatmove/services"
	"eatmove/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, store *cache.Cache, pub events.Publisher, hub *ws.TrackHub) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	memberRepo := repository.NewMemberRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	courierRepo := repository.NewCourierRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	viewRepo := repository.NewRecentViewRepository(db)

	// Services
	authSvc := services.NewAuthService(db, memberRepo, restRepo, courierRepo, cfg.JWTSecret, cfg.JWTTTL)
	restSvc := services.NewRestaurantService(db, restRepo, viewRepo, store)
	menuSvc := services.NewMenuService(db, menuRepo)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, restRepo, pub)
	orderSvc.Notify = hub
	courierSvc := services.NewCourierService(db, courierRepo, orderRepo, orderSvc)
	ratingSvc := services.NewRatingService(db, ratingRepo, orderRepo, restRepo, store, pub)
	viewSvc := services.NewRecentViewService(db, viewRepo, restRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restSvc, menuSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	courierCtrl := controllers.NewCourierController(courierSvc)
	ratingCtrl := controllers.NewRatingController(ratingSvc)
	viewCtrl := controllers.NewRecentViewController(viewSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(cfg.JWTSecret, services.RoleMember))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Public catalog; a logged-in member browsing a restaurant gets it
	// recorded in their history, so detail carries the optional auth.
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", middlewares.OptionalAuth(cfg.JWTSecret), restCtrl.Detail)
	r.GET("/restaurants/:id/menu", restCtrl.Menu)
	r.GET("/restaurants/:id/quote", restCtrl.Quote)
	r.GET("/ratings", ratingCtrl.ListForRestaurant)
	r.GET("/couriers/available", courierCtrl.Available)

	// Member
	m := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, services.RoleMember))
	{
		m.GET("/cart", cartCtrl.Get)
		m.POST("/cart/items", cartCtrl.Add)
		m.PATCH("/cart/items", cartCtrl.UpdateItem)
		m.DELETE("/cart/items", cartCtrl.RemoveItem)
		m.DELETE("/cart", cartCtrl.Clear)

		m.POST("/orders", orderCtrl.Create)
		m.GET("/orders", orderCtrl.List)
		m.GET("/orders/:id", orderCtrl.Detail)
		m.POST("/orders/:id/cancel", orderCtrl.Cancel)
		m.GET("/orders/:id/qr", orderCtrl.PaymentQR)

		m.POST("/ratings", ratingCtrl.Submit)

		m.GET("/recent-views", viewCtrl.List)
		m.POST("/recent-views/:id", viewCtrl.Record)
		m.DELETE("/recent-views/:id", viewCtrl.Delete)
		m.DELETE("/recent-views", viewCtrl.Clear)
	}

	// Partner Restaurant
	p := r.Group("/partner", middlewares.AuthMiddleware(cfg.JWTSecret, services.RoleRestaurant))
	{
		p.GET("/restaurant", restCtrl.MyProfile)
		p.PATCH("/restaurant", restCtrl.UpdateProfile)

		p.GET("/menu", menuCtrl.List)
		p.POST("/menu", menuCtrl.Create)
		p.PATCH("/menu/:id", menuCtrl.Update)
		p.DELETE("/menu/:id", menuCtrl.Delete)

		p.GET("/orders", orderCtrl.ListForRestaurant)
		p.GET("/orders/:id", orderCtrl.DetailForRestaurant)
		p.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)
		p.POST("/orders/:id/accept", orderCtrl.Accept)
		p.POST("/orders/:id/preparing", orderCtrl.StartPreparing)
		p.POST("/orders/:id/ready", orderCtrl.MarkReady)
		p.POST("/orders/:id/cancel", orderCtrl.CancelByRestaurant)
	}

	// Courier
	d := r.Group("/courier", middlewares.AuthMiddleware(cfg.JWTSecret, services.RoleCourier))
	{
		d.GET("/orders/claimable", courierCtrl.Claimable)
		d.POST("/orders/:id/claim", courierCtrl.Claim)
		d.POST("/orders/:id/complete", courierCtrl.Complete)
		d.GET("/status", courierCtrl.Status)
		d.PATCH("/status", courierCtrl.SetStatus)
	}

	// Live order tracking
	r.GET("/ws/orders/:id", middlewares.AuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
