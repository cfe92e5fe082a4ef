package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/gigante-rh/talent-intake/internal/access"
	"github.com/gigante-rh/talent-intake/internal/refdata"
	"github.com/gigante-rh/talent-intake/internal/user"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var seedCmd = &cobra.Command{
	RunE:  runSeeder,
	Use:   "seed",
	Short: "seed the database with a bootstrap admin and reference data",
}

var seedCities = []string{"Campinas", "Jundiaí", "Sorocaba"}
var seedJobTitles = []string{"Vendedor", "Gerente de Loja", "Estoquista", "Caixa"}
var seedStores = []string{"Loja Centro", "Loja Shopping"}

func runSeeder(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(gormpostgres.Open(cfg.Database.Source), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if clearData {
		for _, table := range []string{"audit_logs", "store_grants", "city_grants", "access_records", "users", "cities", "job_titles", "stores"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		log.Println("existing data cleared")
	}

	if err := seedReferenceData(db); err != nil {
		return err
	}
	if err := seedAdmin(db); err != nil {
		return err
	}

	log.Println("seeding complete")
	return nil
}

func seedReferenceData(db *gorm.DB) error {
	tables := map[string][]string{
		"cities":     seedCities,
		"job_titles": seedJobTitles,
		"stores":     seedStores,
	}

	for table, names := range tables {
		for _, name := range names {
			var count int64
			if err := db.Table(table).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
				return fmt.Errorf("check %s %q: %w", table, name, err)
			}
			if count > 0 {
				continue
			}
			if err := db.Table(table).Create(&refdata.ReferenceItem{Name: name}).Error; err != nil {
				return fmt.Errorf("seed %s %q: %w", table, name, err)
			}
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&user.Identity{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if count > 0 {
		log.Printf("admin %s already exists, skipping", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	identity := &user.Identity{Email: email, PasswordHash: string(hash)}
	if err := db.Create(identity).Error; err != nil {
		return fmt.Errorf("create admin identity: %w", err)
	}

	record := &access.AccessRecord{
		UserID:   identity.ID,
		Email:    email,
		Role:     access.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(record).Error; err != nil {
		return fmt.Errorf("create admin access record: %w", err)
	}

	log.Printf("admin %s created", email)
	return nil
}
