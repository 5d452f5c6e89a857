package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/camstock-api/internal/application/analytics"
	"github.com/jhoicas/camstock-api/internal/application/auth"
	"github.com/jhoicas/camstock-api/internal/application/inventory"
	"github.com/jhoicas/camstock-api/internal/application/usecase"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CategoryUC    *usecase.CategoryUseCase
	SubCategoryUC *usecase.SubCategoryUseCase
	ProductUC     *usecase.ProductUseCase
	FileUC        *usecase.FileUseCase
	ExcelImport   *inventory.ExcelImportUseCase
	OutProduct    *inventory.OutProductUseCase
	Damage        *inventory.DamageUseCase
	ReadyCamera   *inventory.ReadyCameraUseCase
	Delivery      *inventory.DeliveryUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	ServiceName   string
	DB            Pinger
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.ServiceName, deps.DB)
	app.Get("/", health.Root)
	app.Get("/health", health.Health)

	api := app.Group("/api")
	authed := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdmin)

	// Usuarios (register y login públicos)
	authHandler := NewAuthHandler(deps.AuthUC)
	users := api.Group("/user")
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Get("/me", authed, authHandler.Me)

	// Categorías
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/category", authed)
	categories.Post("/create", admin, categoryHandler.Create)
	categories.Post("/get", categoryHandler.List)
	categories.Get("/get", categoryHandler.List)
	categories.Put("/update", admin, categoryHandler.Update)
	categories.Delete("/delete", admin, categoryHandler.Delete)

	// Repuestos
	subHandler := NewSubCategoryHandler(deps.SubCategoryUC)
	subs := api.Group("/subcategory", authed)
	subs.Post("/create", subHandler.Create)
	subs.Post("/get", subHandler.List)
	subs.Put("/update", subHandler.Update)
	subs.Delete("/delete", subHandler.Delete)

	// Entradas de stock e importación Excel
	productHandler := NewProductHandler(deps.ProductUC)
	uploadHandler := NewUploadHandler(deps.ExcelImport)
	products := api.Group("/product", authed)
	products.Post("/create", productHandler.Create)
	products.Post("/get", productHandler.List)
	products.Post("/get-product-by-category", productHandler.ListByCategory)
	// La SPA usa la ruta con la errata; se mantiene junto a la corregida.
	products.Post("/get-pruduct-by-category-and-subcategory", productHandler.ListByCategoryAndSubCategory)
	products.Post("/get-product-by-category-and-subcategory", productHandler.ListByCategoryAndSubCategory)
	products.Post("/get-product-details", productHandler.Details)
	products.Put("/update-product-details", admin, productHandler.Update)
	products.Delete("/delete-product", admin, productHandler.Delete)
	products.Post("/search-product", productHandler.Search)
	products.Post("/upload-excel", admin, uploadHandler.UploadExcel)
	products.Get("/get-upload-details", uploadHandler.Pending)
	products.Post("/update-upload-status", admin, uploadHandler.UpdateStatus)
	products.Get("/get-all-upload-data", uploadHandler.All)
	products.Get("/get-rejected-data", uploadHandler.Rejected)
	products.Post("/process-upload-data", admin, uploadHandler.Process)
	products.Get("/process-upload-data", admin, uploadHandler.Process)

	// Libro de stock
	invHandler := NewInventoryHandler(deps.OutProduct, deps.Damage, deps.ReadyCamera, deps.Delivery)
	outs := api.Group("/outproduct", authed)
	outs.Post("/add", invHandler.AddOut)
	outs.Get("/all", invHandler.ListOuts)

	damages := api.Group("/damageproduct", authed)
	damages.Post("/add-or-out", invHandler.AddOrOutDamage)
	damages.Get("/all", invHandler.ListDamages)
	damages.Post("/boxes", invHandler.DamagedBoxes)

	ready := api.Group("/readycamera", authed)
	ready.Post("/create", invHandler.CreateReady)
	ready.Get("/history", invHandler.ReadyHistory)
	ready.Get("/boxes", invHandler.ReadyBoxes)

	delivery := api.Group("/delivery", authed)
	delivery.Post("/deliver", invHandler.Deliver)
	delivery.Get("/history", invHandler.DeliveryHistory)

	// Panel de administración
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	panel := api.Group("/adminpanel", authed)
	panel.Get("/parts-summary", dashboardHandler.PartsSummary)
	panel.Get("/parts-summary/export", dashboardHandler.Export)
	panel.Get("/stats", admin, dashboardHandler.Stats)

	// Archivos
	fileHandler := NewFileHandler(deps.FileUC)
	api.Post("/file/upload", authed, fileHandler.Upload)
}
