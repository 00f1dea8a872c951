package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/karthikrajap/textile-pos-backend/internal/billing"
	"github.com/karthikrajap/textile-pos-backend/internal/bulkimport"
	"github.com/karthikrajap/textile-pos-backend/internal/config"
	"github.com/karthikrajap/textile-pos-backend/internal/customer"
	"github.com/karthikrajap/textile-pos-backend/internal/product"
	"github.com/karthikrajap/textile-pos-backend/internal/report"
	"github.com/karthikrajap/textile-pos-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB()
	defer db.Close()
	ensureSchema(db)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	customerService := customer.NewService(customer.NewPostgresRepository(db))
	customerHandler := customer.NewHandler(customerService)

	billingService := billing.NewService(billing.NewPostgresRepository(db))
	billingHandler := billing.NewHandler(billing.NewSessionStore(), billingService, productService, customerService)

	importHandler := bulkimport.NewHandler(bulkimport.NewImporter(productService))
	reportHandler := report.NewHandler(report.NewService(billingService, productService))

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// catalog reads stay public so label printing and scanning work
		// without a signed-in till
		Filter: func(c *fiber.Ctx) bool {
			p := c.Path()
			if strings.HasPrefix(p, "/api/auth/") {
				return true
			}
			if c.Method() == fiber.MethodGet && strings.HasPrefix(p, "/api/products") {
				return true
			}
			return false
		},
	}))

	productHandler.RegisterProtectedRoutes(app)
	customerHandler.RegisterProtectedRoutes(app)
	billingHandler.RegisterProtectedRoutes(app)
	importHandler.RegisterProtectedRoutes(app)
	reportHandler.RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("%s %s -> %d (%v)\n", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB() *sql.DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// ensureSchema creates the tables this binary expects. Kept here rather
// than in a migration tool so a fresh shop install is one command.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE SEQUENCE IF NOT EXISTS product_barcode_seq`,
		`CREATE TABLE IF NOT EXISTS product (
            id SERIAL PRIMARY KEY,
            "supplierName" TEXT,
            "supplierGstNumber" TEXT,
            "productName" TEXT NOT NULL,
            "wholesalePrice" numeric NOT NULL DEFAULT 0,
            "retailPrice" numeric NOT NULL DEFAULT 0,
            "fabricType" TEXT,
            pattern TEXT,
            size TEXT,
            quantity INT NOT NULL DEFAULT 0,
            "hsnCode" TEXT,
            barcode TEXT UNIQUE,
            status TEXT,
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS customer (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            "phoneNumber" TEXT UNIQUE NOT NULL,
            email TEXT,
            dob TEXT,
            dom TEXT,
            address TEXT,
            "maritalStatus" TEXT,
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS invoice (
            id SERIAL PRIMARY KEY,
            "invoiceNumber" TEXT,
            "invoiceDateTime" TEXT,
            "customerId" INT NOT NULL,
            subtotal numeric NOT NULL DEFAULT 0,
            discount numeric NOT NULL DEFAULT 0,
            "taxableAmount" numeric NOT NULL DEFAULT 0,
            "cgstPercentage" numeric NOT NULL DEFAULT 0,
            cgst numeric NOT NULL DEFAULT 0,
            "sgstPercentage" numeric NOT NULL DEFAULT 0,
            sgst numeric NOT NULL DEFAULT 0,
            total numeric NOT NULL DEFAULT 0,
            "paymentMethod" TEXT,
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS invoice_item (
            id SERIAL PRIMARY KEY,
            "invoiceId" INT NOT NULL REFERENCES invoice(id),
            "productId" INT NOT NULL,
            "productName" TEXT,
            barcode TEXT,
            "hsnCode" TEXT,
            price numeric NOT NULL DEFAULT 0,
            quantity INT NOT NULL DEFAULT 0,
            "subTotal" numeric NOT NULL DEFAULT 0,
            "discountPercentage" numeric NOT NULL DEFAULT 0,
            "discountAmount" numeric NOT NULL DEFAULT 0,
            total numeric NOT NULL DEFAULT 0,
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS app_user (
            id SERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            password TEXT NOT NULL,
            role TEXT,
            "createdAt" TEXT
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
