package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/razorpay/razorpay-go"

	"github.com/casahub/backend/internal/config"
	"github.com/casahub/backend/internal/handlers"
	appMiddleware "github.com/casahub/backend/internal/middleware"
	"github.com/casahub/backend/internal/services"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := services.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}

	firebaseAuth, err := services.NewFirebaseAuth(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	if err != nil {
		log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
	}
	pushService, err := services.NewPushService(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	if err != nil {
		log.Printf("Warning: failed to initialize Firebase messaging client: %v", err)
		pushService = &services.PushService{}
	}

	razorpayClient := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	smsSender := services.NewSMSSender(cfg.SMSEndpoint, cfg.SMSAPIKey)

	// Services
	userService := services.NewUserService(db)
	visibilityService := services.NewVisibilityService(db)
	moderationService := services.NewModerationService(db)
	authService := services.NewAuthService(db, userService, smsSender, firebaseAuth, cfg.JWTSecret, cfg.JWTExpiration, cfg.OTPExpiration)
	projectService := services.NewProjectService(db, userService)
	postService := services.NewPostService(db, userService)
	productService := services.NewProductService(db, userService)
	searchService := services.NewSearchService(db, visibilityService, productService, userService)
	orderService := services.NewOrderService(db, razorpayClient, cfg.RazorpayKeySecret, productService, userService)
	subscriptionService := services.NewSubscriptionService(db, razorpayClient, cfg.RazorpayKeySecret, userService)
	instantService := services.NewInstantServiceService(db, userService, pushService)
	enquiryService := services.NewEnquiryService(db)
	invoiceService := services.NewInvoiceService("CasaHub Marketplace", "")

	// Handlers
	h := apiHandlers{
		auth:            handlers.NewAuthHandler(authService),
		users:           handlers.NewUserHandler(userService, visibilityService, moderationService),
		projects:        handlers.NewProjectHandler(projectService, visibilityService, moderationService),
		posts:           handlers.NewPostHandler(postService, visibilityService, moderationService),
		products:        handlers.NewProductHandler(productService),
		search:          handlers.NewSearchHandler(searchService),
		orders:          handlers.NewOrderHandler(orderService, invoiceService),
		subscriptions:   handlers.NewSubscriptionHandler(subscriptionService),
		instantServices: handlers.NewInstantServiceHandler(instantService),
		enquiries:       handlers.NewEnquiryHandler(enquiryService, userService),
	}

	r := newRouter(cfg.JWTSecret, userService, h)

	log.Printf("CasaHub API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

type apiHandlers struct {
	auth            *handlers.AuthHandler
	users           *handlers.UserHandler
	projects        *handlers.ProjectHandler
	posts           *handlers.PostHandler
	products        *handlers.ProductHandler
	search          *handlers.SearchHandler
	orders          *handlers.OrderHandler
	subscriptions   *handlers.SubscriptionHandler
	instantServices *handlers.InstantServiceHandler
	enquiries       *handlers.EnquiryHandler
}

func newRouter(jwtSecret string, userService *services.UserService, h apiHandlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Post("/otp/request", h.auth.RequestOTP)
			r.Post("/otp/verify", h.auth.VerifyOTP)
			r.Post("/otp/verify-firebase", h.auth.VerifyFirebaseOTP)
		})

		// Public listing routes. Tokens are optional: logged-in viewers get
		// their block list applied, guests see everything not violated.
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.OptionalJWTAuth(jwtSecret))

			r.Get("/search", h.search.Search)

			r.Get("/projects", h.projects.ListProjects)
			r.Post("/projects/filter", h.projects.FilterProjects)
			r.Post("/projects/by-ids", h.projects.ListProjectsByIDs)
			r.Get("/projects/{projectId}", h.projects.GetProject)

			r.Get("/posts", h.posts.ListPosts)
			r.Get("/posts/{postId}", h.posts.GetPost)

			r.Get("/products", h.products.ListProducts)
			r.Get("/products/{productId}", h.products.GetProduct)
			r.Get("/categories", h.products.ListCategories)
			r.Get("/brands", h.products.ListBrands)

			r.Get("/users", h.users.ListUsers)
			r.Get("/users/{userId}", h.users.GetUser)

			r.Get("/subscriptions/plans", h.subscriptions.ListPlans)
			r.Get("/instant-services/categories", h.instantServices.ListCategories)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(jwtSecret))

			// Profile
			r.Get("/me", h.users.GetMe)
			r.Put("/me", h.users.UpdateProfile)
			r.Delete("/me", h.users.DeleteAccount)
			r.Post("/me/addresses", h.users.AddAddress)
			r.Delete("/me/addresses/{addressId}", h.users.RemoveAddress)
			r.Post("/me/complete-registration", h.subscriptions.CompleteRegistration)
			r.Post("/me/block", h.users.BlockUser)
			r.Post("/me/unblock", h.users.UnblockUser)

			// Flagging
			r.Post("/users/{userId}/flag", h.users.FlagUser)
			r.Post("/projects/{projectId}/flag", h.projects.FlagProject)
			r.Post("/posts/{postId}/flag", h.posts.FlagPost)

			// Projects
			r.Post("/projects", h.projects.CreateProject)
			r.Get("/my/projects", h.projects.ListMyProjects)
			r.Delete("/projects/{projectId}", h.projects.DeleteProject)

			// Posts
			r.Post("/posts", h.posts.CreatePost)
			r.Get("/my/posts", h.posts.ListMyPosts)
			r.Delete("/posts/{postId}", h.posts.DeletePost)

			// Products
			r.Post("/products", h.products.CreateProduct)
			r.Get("/my/products", h.products.ListMyProducts)
			r.Delete("/products/{productId}", h.products.DeleteProduct)

			// Orders
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.orders.CreateOrder)
				r.Post("/verify-payment", h.orders.VerifyPayment)
				r.Get("/", h.orders.ListMyOrders)
				r.Get("/seller", h.orders.ListSellerOrders)
				r.Get("/seller/counts", h.orders.GetOrderCounts)
				r.Get("/{orderId}", h.orders.GetOrder)
				r.Put("/{orderId}", h.orders.UpdateOrder)
				r.Delete("/{orderId}", h.orders.DeleteOrder)
				r.Get("/{orderId}/invoice", h.orders.DownloadInvoice)
			})

			// Subscriptions
			r.Post("/subscriptions/order", h.subscriptions.CreateOrder)
			r.Post("/subscriptions/verify", h.subscriptions.VerifyPayment)

			// Instant services
			r.Post("/instant-services/book", h.instantServices.BookService)
			r.Get("/my/instant-services", h.instantServices.ListMyBookings)

			// Enquiries
			r.Post("/enquiries", h.enquiries.CreateEnquiry)
			r.Get("/enquiries/open", h.enquiries.ListOpenEnquiries)
			r.Get("/my/enquiries", h.enquiries.ListMyEnquiries)

			// Admin moderation queue
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.AdminOnly(userService))
				r.Get("/admin/flagged-posts", h.posts.ListFlaggedPosts)
				r.Post("/admin/flagged-posts", h.posts.HandleFlaggedPost)
				r.Post("/admin/users/{userId}/clear-flags", h.users.ClearUserFlags)
				r.Post("/admin/projects/{projectId}/clear-flags", h.projects.ClearProjectFlags)
			})
		})
	})

	return r
}
