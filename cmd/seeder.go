package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/levkatan/lending-management/internal/settings"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an admin account and default settings for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"extension_requests", "borrow_requests", "donation_requests", "products", "users", "system_settings"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "admin12345"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		adminEmail := "admin@levkatan.org"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists")
		} else {
			err := db.Exec(
				"INSERT INTO users (full_name, username, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, 'admin', now(), now())",
				"Platform Admin", "admin", adminEmail, string(hash),
			).Error
			if err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		defaults := map[string]int{
			settings.KeyMaxBorrowDays:  settings.DefaultMaxBorrowDays,
			settings.KeyMaxBorrowItems: settings.DefaultMaxBorrowItems,
		}
		for key, value := range defaults {
			var one int
			row := db.Raw("SELECT 1 FROM system_settings WHERE setting_key = ?", key).Row()
			if err := row.Scan(&one); err == nil {
				continue
			}
			err := db.Exec(
				"INSERT INTO system_settings (setting_key, setting_value) VALUES (?, ?)",
				key, fmt.Sprintf("%d", value),
			).Error
			if err != nil {
				log.Fatalf("failed to insert setting %s: %v", key, err)
			}
			fmt.Println("Seeded setting:", key)
		}
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
