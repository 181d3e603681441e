package main

import (
	"os"

	"porchlite-server/pkg/logger"
	"porchlite-server/routes"
	"porchlite-server/storage"
	"porchlite-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	storage.InitializeDB()
	storage.InitializeRedis()

	for _, required := range []string{"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET"} {
		if os.Getenv(required) == "" {
			logger.Log.Panicf("%s environment variable is required", required)
		}
	}

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, utils.RefreshTokenFromBody)
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
	}

	me := app.Party("/api/me", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		me.Get("/", routes.GetMe)
		me.Patch("/", routes.UpdateMe)
		me.Get("/notifications", routes.ListNotifications)
		me.Post("/notifications/{id:uint}/read", routes.MarkNotificationRead)
	}

	users := app.Party("/api/users", accessTokenVerifierMiddleware)
	{
		users.Get("/search", utils.UserIDFromTokenMiddleware, routes.SearchUsers)

		// Privileged user-management proxies.
		admin := users.Party("", utils.RequireRole(utils.RoleAdmin))
		{
			admin.Post("/update", routes.AdminUpdateUser)
			admin.Post("/delete", routes.AdminDeleteUser)
			admin.Get("/", routes.AdminListUsers)
		}
	}

	properties := app.Party("/api/properties", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		properties.Get("/", routes.ListMyProperties)
		properties.Get("/{id:uint}", routes.GetProperty)

		ownerOnly := properties.Party("", utils.RequireRole(utils.RoleOwner))
		{
			ownerOnly.Post("/", routes.CreateProperty)
			ownerOnly.Put("/{id:uint}", routes.UpdateProperty)
			ownerOnly.Post("/{id:uint}/members", routes.AddMember)
			ownerOnly.Delete("/{id:uint}/members/{userID:uint}", routes.RemoveMember)
		}
	}

	reservations := app.Party("/api/reservations", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		reservations.Post("/", routes.CreateReservation)
		reservations.Get("/", routes.ListReservations)
		reservations.Get("/{id:uint}", routes.GetReservation)
		reservations.Put("/{id:uint}", routes.UpdateReservation)
		reservations.Delete("/{id:uint}", routes.DeleteReservation)
		reservations.Post("/{id:uint}/cancel", routes.CancelReservation)
		reservations.Post("/{id:uint}/approve", routes.ApproveReservation)
		reservations.Post("/{id:uint}/reject", routes.RejectReservation)
		reservations.Post("/{id:uint}/invitations", routes.SendInvitations)
		reservations.Post("/{id:uint}/companions", routes.AddCompanion)
		reservations.Delete("/{id:uint}/companions/{companionID:uint}", routes.RemoveCompanion)
	}

	tasks := app.Party("/api/tasks", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		tasks.Post("/", routes.CreateTask)
		tasks.Get("/", routes.ListTasks)
		tasks.Put("/{id:uint}", routes.UpdateTask)
		tasks.Post("/{id:uint}/claim", routes.ClaimTask)
		tasks.Post("/{id:uint}/complete", routes.CompleteTask)
		tasks.Delete("/{id:uint}", routes.DeleteTask)
	}

	inventory := app.Party("/api/inventory", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		inventory.Get("/", routes.ListInventory)
		inventory.Get("/restock", routes.ListRestockNeeded)
		inventory.Get("/staples", routes.ListAvailableStaples)
		inventory.Post("/", routes.CreateInventoryItem)
		inventory.Put("/{id:uint}", routes.UpdateInventoryItem)
		inventory.Delete("/{id:uint}", routes.DeleteInventoryItem)
		inventory.Post("/staples", routes.CreateCustomStaple)
		inventory.Delete("/staples/{id:uint}", routes.DeleteCustomStaple)
	}

	guestbook := app.Party("/api/guestbook", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		guestbook.Get("/", routes.ListPublicGuestBook)
		guestbook.Post("/", routes.CreateGuestBookEntry)
		guestbook.Post("/{id:uint}/photos", routes.AddGuestBookPhoto)
		guestbook.Delete("/{id:uint}", routes.DeleteGuestBookEntry)

		moderation := guestbook.Party("", utils.RequireRole(utils.RoleManager))
		{
			moderation.Get("/all", routes.ListAllGuestBook)
			moderation.Post("/{id:uint}/approve", routes.ApproveGuestBookEntry)
		}
	}

	recommendations := app.Party("/api/recommendations", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		recommendations.Get("/", routes.ListRecommendations)
		recommendations.Post("/", routes.CreateRecommendation)
		recommendations.Put("/{id:uint}", routes.UpdateRecommendation)
		recommendations.Delete("/{id:uint}", routes.DeleteRecommendation)
	}

	walkthrough := app.Party("/api/walkthrough", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		walkthrough.Get("/", routes.ListWalkthrough)

		editors := walkthrough.Party("", utils.RequireRole(utils.RoleManager))
		{
			editors.Post("/sections", routes.CreateWalkthroughSection)
			editors.Put("/sections/{id:uint}", routes.UpdateWalkthroughSection)
			editors.Delete("/sections/{id:uint}", routes.DeleteWalkthroughSection)
			editors.Post("/sections/{id:uint}/steps", routes.CreateWalkthroughStep)
			editors.Put("/sections/{id:uint}/steps/{stepID:uint}", routes.UpdateWalkthroughStep)
			editors.Delete("/sections/{id:uint}/steps/{stepID:uint}", routes.DeleteWalkthroughStep)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	logger.Log.WithField("port", port).Info("PorchLite server starting")
	app.Listen(":" + port)
}
