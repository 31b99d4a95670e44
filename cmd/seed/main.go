package main

import (
	"context"
	"errors"
	"os"

	"github.com/hanaa-nabil/Hotel-managment/internal/config"
	"github.com/hanaa-nabil/Hotel-managment/internal/database"
	"github.com/hanaa-nabil/Hotel-managment/internal/domain"
	"github.com/hanaa-nabil/Hotel-managment/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a development database with an admin user, a hotel and a few rooms.
// Safe to re-run: existing rows are left alone.
func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	hotels := repository.NewHotelRepository(db)
	rooms := repository.NewRoomRepository(db)

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	if _, err := users.GetByEmail(ctx, adminEmail); errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.WithError(err).Fatal("failed to hash admin password")
		}
		admin := &domain.User{
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			FullName:     "Administrator",
		}
		if err := users.Create(ctx, admin); err != nil {
			log.WithError(err).Fatal("failed to create admin user")
		}
		log.WithField("email", adminEmail).Info("admin user created")
	} else if err != nil {
		log.WithError(err).Fatal("failed to look up admin user")
	} else {
		log.WithField("email", adminEmail).Info("admin user already exists")
	}

	existing, err := hotels.ListAll(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to list hotels")
	}
	if len(existing) > 0 {
		log.Info("hotels already seeded, nothing to do")
		return
	}

	hotel := &domain.Hotel{
		Name:    "Grand Plaza",
		Address: "12 Riverside Ave",
		City:    "Astana",
		Country: "Kazakhstan",
		Stars:   4,
	}
	if err := hotels.Create(ctx, hotel); err != nil {
		log.WithError(err).Fatal("failed to create hotel")
	}

	seedRooms := []domain.Room{
		{HotelID: hotel.ID, RoomNumber: "101", Type: "standard", PricePerNight: 100, IsAvailable: true},
		{HotelID: hotel.ID, RoomNumber: "102", Type: "standard", PricePerNight: 100, IsAvailable: true},
		{HotelID: hotel.ID, RoomNumber: "201", Type: "deluxe", PricePerNight: 180, IsAvailable: true},
		{HotelID: hotel.ID, RoomNumber: "301", Type: "suite", PricePerNight: 320, IsAvailable: true},
	}
	for i := range seedRooms {
		if err := rooms.Create(ctx, &seedRooms[i]); err != nil {
			log.WithError(err).WithField("room", seedRooms[i].RoomNumber).Fatal("failed to create room")
		}
	}

	log.WithFields(logrus.Fields{
		"hotel": hotel.Name,
		"rooms": len(seedRooms),
	}).Info("seed complete")
}
