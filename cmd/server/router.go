package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cardloop/cardloop-api/internal/api"
	apiMiddleware "github.com/cardloop/cardloop-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and
// middleware registered.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.hasher, app.logger)
	deckHandler := api.NewDeckHandler(app.deckStore, app.logger)
	cardHandler := api.NewFlashcardHandler(app.flashcardStore, app.deckStore, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	deckCreateLimit := apiMiddleware.NewRateLimitMiddleware(app.deckCreateLimits, "deck_creation", app.logger)
	cardCreateLimit := apiMiddleware.NewRateLimitMiddleware(app.cardCreateLimits, "flashcard_creation", app.logger)
	generateLimit := apiMiddleware.NewRateLimitMiddleware(app.generateLimits, "generation", app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Review endpoints
			r.Post("/reviews", reviewHandler.SubmitReview)
			r.Get("/reviews/queue", reviewHandler.GetReviewQueue)

			// Deck endpoints
			r.With(deckCreateLimit.Limit).Post("/decks", deckHandler.CreateDeck)
			r.Get("/decks", deckHandler.ListDecks)
			r.Get("/decks/{id}", deckHandler.GetDeck)
			r.Put("/decks/{id}", deckHandler.UpdateDeck)
			r.Delete("/decks/{id}", deckHandler.DeleteDeck)

			// Flashcard endpoints
			r.With(cardCreateLimit.Limit).Post("/decks/{id}/cards", cardHandler.CreateFlashcard)
			r.Get("/decks/{id}/cards", cardHandler.ListFlashcards)
			r.Put("/cards/{id}", cardHandler.UpdateFlashcard)
			r.Delete("/cards/{id}", cardHandler.DeleteFlashcard)
			r.Post("/cards/{id}/postpone", reviewHandler.PostponeCard)

			// Card generation, only when a generator is configured
			if app.generator != nil {
				generateHandler := api.NewGenerateHandler(
					app.db, app.generator, app.deckStore, app.flashcardStore, app.logger,
				)
				r.With(generateLimit.Limit).Post("/generate", generateHandler.GenerateCards)
			}
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
