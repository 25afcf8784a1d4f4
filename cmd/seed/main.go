package main

import (
	"context"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/env"
	"github.com/Saipoo/foodorder/internal/store/mongo"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the database with a default admin account and a starter menu. Safe to
// run more than once: duplicate inserts are skipped via the unique indexes.
func main() {
	_ = godotenv.Load()

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	storage, err := mongo.New(mongo.Config{
		URI:      env.GetString("MONGO_URI", "mongodb://localhost:27017"),
		Database: env.GetString("MONGO_DATABASE", "cafeteria"),
		Timeout:  time.Second * 10,
	})
	if err != nil {
		logger.Fatalw("failed to connect to MongoDB", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			logger.Errorw("error closing MongoDB", "error", err)
		}
	}()

	if err := storage.CreateIndexes(ctx); err != nil {
		logger.Fatalw("failed to create indexes", "error", err)
	}

	adminRepo := mongo.NewAdminRepository(storage.Database())
	menuRepo := mongo.NewMenuRepository(storage.Database())

	adminEmail := env.GetString("SEED_ADMIN_EMAIL", "admin@svce.ac.in")
	adminPassword := env.GetString("SEED_ADMIN_PASSWORD", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatalw("failed to hash admin password", "error", err)
	}

	admin := &domain.Admin{
		Name:     "Cafeteria Admin",
		Email:    adminEmail,
		Password: string(hash),
	}

	if err := adminRepo.Create(ctx, admin); err != nil {
		logger.Warnw("admin not created, may already exist", "email", adminEmail, "error", err)
	} else {
		logger.Infow("admin created", "email", adminEmail)
	}

	items := []domain.MenuItem{
		{Name: "Idli", Description: "Steamed rice cakes with sambar and chutney", Price: 20, Category: "breakfast", Available: true},
		{Name: "Masala Dosa", Description: "Crispy dosa with potato filling", Price: 35, Category: "breakfast", Available: true},
		{Name: "Medu Vada", Description: "Fried lentil doughnuts, two per plate", Price: 15, Category: "breakfast", Available: true},
		{Name: "Veg Fried Rice", Description: "Fried rice with seasonal vegetables", Price: 60, Category: "lunch", Available: true},
		{Name: "Lemon Rice", Description: "Rice tossed with lemon and curry leaves", Price: 40, Category: "lunch", Available: true},
		{Name: "Samosa", Description: "Spiced potato pastry", Price: 12, Category: "snacks", Available: true},
		{Name: "Tea", Description: "Hot milk tea", Price: 15, Category: "beverages", Available: true},
		{Name: "Filter Coffee", Description: "South Indian filter coffee", Price: 20, Category: "beverages", Available: true},
	}

	for i := range items {
		if err := menuRepo.Create(ctx, &items[i]); err != nil {
			logger.Warnw("menu item not created", "name", items[i].Name, "error", err)
			continue
		}
		logger.Infow("menu item created", "name", items[i].Name, "price", items[i].Price)
	}

	logger.Info("seed complete")
}
