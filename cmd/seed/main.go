package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"renthub/internal/database"
	"renthub/internal/domain"
	"renthub/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("RENTHUB_DATABASE_DSN")
	if dsn == "" {
		dsn = "renthub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM contact_messages")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	bookings := repository.NewBookingRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@renthub.kz",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal("seed admin:", err)
	}
	log.Println("Admin created: admin@renthub.kz / admin123")

	renters := []domain.User{}
	renterEmails := []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"}
	for i, email := range renterEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("renter123"), bcrypt.DefaultCost)
		renter := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleRenter,
			Name:         fmt.Sprintf("Renter %d", i+1),
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+67),
		}
		if err := users.Create(ctx, &renter); err != nil {
			log.Fatal("seed renter:", err)
		}
		renters = append(renters, renter)
	}

	owners := []domain.User{}
	ownerEmails := []string{"aidar@homes.kz", "gulnaz@stayspace.kz", "yerlan@lofts.kz"}
	for i, email := range ownerEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
		owner := domain.User{
			Email:              email,
			PasswordHash:       string(hash),
			Role:               domain.RoleOwner,
			Name:               fmt.Sprintf("Owner %d", i+1),
			Phone:              fmt.Sprintf("+7 701 555 12%02d", i+10),
			VerificationStatus: domain.VerificationApproved,
		}
		if err := users.Create(ctx, &owner); err != nil {
			log.Fatal("seed owner:", err)
		}
		owners = append(owners, owner)
	}

	// ================== PROPERTIES ==================
	log.Println("Creating properties...")

	type seedProp struct {
		title  string
		city   string
		price  float64
		status domain.PropertyStatus
	}
	seeds := []seedProp{
		{"Loft on Abay", "Almaty", 25000, domain.PropertyApproved},
		{"Cozy studio near Baiterek", "Astana", 18000, domain.PropertyApproved},
		{"Mountain view apartment", "Almaty", 32000, domain.PropertyApproved},
		{"Riverside two-bedroom", "Atyrau", 20000, domain.PropertyPending},
		{"Old town flat", "Shymkent", 12000, domain.PropertyPending},
	}

	props := []domain.Property{}
	for i, sp := range seeds {
		p := domain.Property{
			OwnerID:      owners[i%len(owners)].ID,
			Title:        sp.title,
			Description:  "Fully furnished, utilities included.",
			City:         sp.city,
			Address:      fmt.Sprintf("Street %d, building %d", i+1, i+10),
			NightlyPrice: sp.price,
			Currency:     "KZT",
			Photos: []string{
				fmt.Sprintf("https://cdn.renthub.kz/properties/%d/main.jpg", i+1),
				fmt.Sprintf("https://cdn.renthub.kz/properties/%d/room.jpg", i+1),
			},
			Status: sp.status,
		}
		if err := properties.Create(ctx, &p); err != nil {
			log.Fatal("seed property:", err)
		}
		props = append(props, p)
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	start := time.Now().AddDate(0, 0, 14)
	statuses := []domain.BookingStatus{
		domain.BookingPending,
		domain.BookingApproved,
		domain.BookingCancelled,
	}
	for i, status := range statuses {
		p := props[i%3]
		b := domain.Booking{
			Reference:  uuid.NewString(),
			PropertyID: p.ID,
			RenterID:   renters[i%len(renters)].ID,
			StartDate:  start.AddDate(0, 0, i*7).Format(domain.DateLayout),
			EndDate:    start.AddDate(0, 0, i*7+3).Format(domain.DateLayout),
			TotalPrice: p.NightlyPrice * 3,
			Status:     status,
		}
		if err := bookings.Create(ctx, &b); err != nil {
			log.Fatal("seed booking:", err)
		}
	}

	log.Println("Seed complete.")
}
