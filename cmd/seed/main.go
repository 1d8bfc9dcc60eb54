package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"medibook/internal/config"
	"medibook/internal/db"
	"medibook/internal/model"
	"medibook/internal/repository"
)

// Maintenance tool: creates the bootstrap admin account, or with
// -cleanup wipes every patient, doctor and appointment while keeping
// admin accounts. Appointment deletion is only ever done here, never
// through the API.
func main() {
	var (
		name     = flag.String("name", "Admin User", "admin display name")
		email    = flag.String("email", "admin@example.com", "admin email")
		password = flag.String("password", "", "admin password (required unless -cleanup)")
		cleanup  = flag.Bool("cleanup", false, "delete all non-admin users and all appointments")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Appointment{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)

	if *cleanup {
		runCleanup(ctx, userRepo, appointmentRepo)
		return
	}

	if *password == "" {
		log.Fatal("-password is required")
	}
	createAdmin(ctx, userRepo, *name, *email, *password)
}

func createAdmin(ctx context.Context, users repository.UserRepository, name, email, password string) {
	existing, err := users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("check admin: %v", err)
	}
	if existing != nil {
		log.Printf("Admin user %s already exists", email)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleAdmin,
		IsApproved:   true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("Admin user %s created", email)
}

func runCleanup(ctx context.Context, users repository.UserRepository, appointments repository.AppointmentRepository) {
	deletedUsers, err := users.DeleteAllExceptRole(ctx, model.RoleAdmin)
	if err != nil {
		log.Fatalf("delete users: %v", err)
	}
	log.Printf("Deleted %d patients and doctors", deletedUsers)

	deletedAppointments, err := appointments.DeleteAll(ctx)
	if err != nil {
		log.Fatalf("delete appointments: %v", err)
	}
	log.Printf("Deleted %d appointments", deletedAppointments)

	log.Println("Database cleaned (admin users kept)")
}
