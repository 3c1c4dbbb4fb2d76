package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/log_out", authMiddleware.ThenFunc(app.userHandler.LogOut))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Put("/user/:id", authMiddleware.ThenFunc(app.userHandler.UpdateProfile))

	// Listings
	mux.Post("/listing", authMiddleware.ThenFunc(app.listingHandler.CreateListing))
	mux.Get("/listing/search", standardMiddleware.ThenFunc(app.listingHandler.SearchListings))
	mux.Post("/listing/filtered", standardMiddleware.ThenFunc(app.listingHandler.SearchListingsPost))
	mux.Get("/listing/user/:user_id", authMiddleware.ThenFunc(app.listingHandler.GetListingsBySellerID))
	mux.Get("/listing/:id", standardMiddleware.ThenFunc(app.listingHandler.GetListingByID))
	mux.Put("/listing/:id", authMiddleware.ThenFunc(app.listingHandler.UpdateListing))
	mux.Del("/listing/:id", authMiddleware.ThenFunc(app.listingHandler.DeleteListing))

	// Moderation
	mux.Get("/moderation/queue", adminAuthMiddleware.ThenFunc(app.moderationHandler.GetQueue))
	mux.Put("/moderation/:id/approve", adminAuthMiddleware.ThenFunc(app.moderationHandler.ApproveListing))
	mux.Put("/moderation/:id/reject", adminAuthMiddleware.ThenFunc(app.moderationHandler.RejectListing))

	// Reviews
	mux.Post("/review", authMiddleware.ThenFunc(app.reviewHandler.SubmitReview))
	mux.Get("/review/seller/:seller_id", standardMiddleware.ThenFunc(app.reviewHandler.GetReviewsBySellerID))

	// Health
	mux.Get("/health", standardMiddleware.ThenFunc(app.healthCheck))

	return mux
}
