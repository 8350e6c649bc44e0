package api

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册全部 HTTP 路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	h.registerFileRoutes(r)
	r.NoRoute(h.RouteNotFound)

	apiGroup := r.Group("/api")

	apiGroup.POST("/auth/login", h.Login)
	apiGroup.POST("/users", h.Register)

	// 匿名可读，登录后附带 is_favorited / is_subscribed 等标记
	public := apiGroup.Group("")
	public.Use(h.OptionalAuth())
	{
		public.GET("/users", h.ListUsers)
		public.GET("/users/:id", h.GetUser)
		public.GET("/recipes", h.ListRecipes)
		public.GET("/recipes/:id", h.GetRecipe)
		public.GET("/tags", h.ListTags)
		public.GET("/tags/:id", h.GetTag)
		public.GET("/ingredients", h.ListIngredients)
		public.GET("/ingredients/:id", h.GetIngredient)
	}

	protected := apiGroup.Group("")
	protected.Use(h.AuthMiddleware())
	{
		protected.GET("/users/me", h.Me)
		protected.GET("/users/subscriptions", h.ListSubscriptions)
		protected.POST("/users/:id/subscribe", h.Subscribe)
		protected.DELETE("/users/:id/subscribe", h.Unsubscribe)

		protected.GET("/recipes/download_shopping_cart", h.DownloadShoppingCart)
		protected.POST("/recipes", h.CreateRecipe)
		protected.PATCH("/recipes/:id", h.UpdateRecipe)
		protected.DELETE("/recipes/:id", h.DeleteRecipe)
		protected.POST("/recipes/:id/favorite", h.AddFavorite)
		protected.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
		protected.POST("/recipes/:id/shopping_cart", h.AddToShoppingCart)
		protected.DELETE("/recipes/:id/shopping_cart", h.RemoveFromShoppingCart)
	}

	admin := apiGroup.Group("")
	admin.Use(h.AuthMiddleware(), h.RequireAdmin())
	{
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.POST("/tags", h.CreateTag)
		admin.PATCH("/tags/:id", h.UpdateTag)
		admin.DELETE("/tags/:id", h.DeleteTag)
		admin.POST("/ingredients", h.CreateIngredient)
		admin.POST("/ingredients/import", h.ImportIngredients)
	}
}
