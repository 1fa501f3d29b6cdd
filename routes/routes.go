package routes

import (
	"emporia/admin"
	"emporia/analytics"
	"emporia/auth"
	"emporia/cart"
	"emporia/catalog"
	"emporia/checkout"
	"emporia/middleware"
	"emporia/orders"
	"emporia/profile"
	"emporia/ratelim"
	"emporia/uploads"

	"github.com/julienschmidt/httprouter"
)

// RoutesWrapper registers every route area on the router.
func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddCatalogRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter)
	AddCheckoutRoutes(router, rateLimiter)
	AddProfileRoutes(router, rateLimiter)
	AddOrderRoutes(router, rateLimiter)
	AddAdminRoutes(router, rateLimiter)
	AddUploadRoutes(router, rateLimiter)
	AddAnalyticsRoutes(router, rateLimiter)
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.WithSession(auth.Logout))
}

func AddCatalogRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/categories", catalog.GetCategories)
	router.GET("/api/categories/:categoryid", catalog.GetCategory)
	router.GET("/api/categories/:categoryid/products", catalog.GetProductsByCategory)
	router.GET("/api/products", catalog.GetAllProducts)
	router.GET("/api/products/search", rateLimiter.Limit(catalog.SearchProducts))
	router.GET("/api/products/id/:productid", catalog.GetProduct)
	router.GET("/api/products/id/:productid/images", catalog.GetProductImages)
}

func AddCartRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.WithSession(cart.GetCart))
	router.POST("/api/cart/add", middleware.WithSession(cart.AddToCart))
	router.POST("/api/cart/increment", middleware.WithSession(cart.IncrementInCart))
	router.POST("/api/cart/decrement", middleware.WithSession(cart.DecrementInCart))
	router.POST("/api/cart/remove", middleware.WithSession(cart.RemoveFromCart))
	router.POST("/api/cart/clear", middleware.WithSession(cart.EmptyCart))
}

func AddCheckoutRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/checkout/place-order", rateLimiter.Limit(middleware.WithSession(checkout.PlaceOrder)))
}

func AddProfileRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/user/my-info", middleware.Protected(profile.MyInfo))
	router.POST("/api/address/save", middleware.Protected(profile.SaveAddress))
}

func AddOrderRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/orders/filter", middleware.AdminOnly(orders.FilterOrders))
	router.PUT("/api/orders/update-item-status/:itemid", middleware.AdminOnly(orders.UpdateOrderItemStatus))
	router.GET("/api/orders/receipt/:itemid", middleware.Protected(orders.PrintReceipt))
}

func AddAdminRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/admin/categories", middleware.AdminOnly(admin.CreateCategory))
	router.PUT("/api/admin/categories/:categoryid", middleware.AdminOnly(admin.UpdateCategory))
	router.DELETE("/api/admin/categories/:categoryid", middleware.AdminOnly(admin.DeleteCategory))

	router.POST("/api/admin/products", middleware.AdminOnly(admin.CreateProduct))
	router.PUT("/api/admin/products/update", middleware.AdminOnly(admin.UpdateProduct))
	router.DELETE("/api/admin/products/:productid", middleware.AdminOnly(admin.DeleteProduct))
	router.POST("/api/admin/products/:productid/images", middleware.AdminOnly(admin.AddProductImages))
	router.DELETE("/api/admin/products/:productid/images/:imageid", middleware.AdminOnly(admin.DeleteProductImage))

	router.POST("/api/admin/register-admin", rateLimiter.Limit(middleware.RootOnly(admin.RegisterAdmin)))
}

func AddUploadRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/uploads/image", rateLimiter.Limit(middleware.AdminOnly(uploads.UploadImage)))
}

func AddAnalyticsRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/analytics/revenue-trends", middleware.AdminOnly(analytics.RevenueTrends))
}
