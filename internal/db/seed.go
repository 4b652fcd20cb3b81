package db

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/decorabur/decora-api/internal/models"
)

const (
	seedAdminEmail    = "admin@decora.com"
	seedAdminPassword = "admin123"
)

// Seed inserts the baseline catalog and the default admin account. Every
// insert is create-if-absent, so re-running against an initialized database
// never alters existing rows (in particular it never touches a stored
// password hash).
func Seed(db *gorm.DB) error {
	if err := seedCategories(db); err != nil {
		return err
	}
	if err := seedProducts(db); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedCategories(db *gorm.DB) error {
	roots := []models.Category{
		{Name: "Rideaux", Description: "Une large gamme de rideaux élégants pour toutes les pièces."},
		{Name: "Voilages", Description: "Voilages délicats pour un effet de transparence"},
		{Name: "Stores", Description: "Stores modernes et fonctionnels"},
		{Name: "Accessoires", Description: "Accessoires de décoration pour rideaux"},
		{Name: "Tissus", Description: "Tissus de qualité pour rideaux personnalisés"},
		{Name: "Canapés", Description: "Canapés confortables et design pour votre salon."},
		{Name: "Décoration", Description: "Objets de décoration pour sublimer votre intérieur."},
		{Name: "Chaises", Description: "Chaises pour tous les goûts et tous les usages."},
		{Name: "Bureau", Description: "Bureaux fonctionnels et esthétiques pour votre espace de travail."},
		{Name: "Tables", Description: "Tables de toutes tailles et de tous styles."},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roots).Error; err != nil {
		return err
	}

	var tables models.Category
	if err := db.Where("name = ?", "Tables").First(&tables).Error; err != nil {
		return err
	}

	children := []models.Category{
		{Name: "Table basse", Description: "Tables basses modernes et pratiques.", ParentID: &tables.ID},
		{Name: "Table de réunion", Description: "Tables de réunion pour vos espaces professionnels.", ParentID: &tables.ID},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&children).Error
}

func seedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categoryID := func(name string) *uint {
		var cat models.Category
		if err := db.Where("name = ?", name).First(&cat).Error; err != nil {
			return nil
		}
		return &cat.ID
	}

	price := func(v float64) *float64 { return &v }

	products := []models.Product{
		{Name: "Rideau Velours Premium", Description: "Rideau en velours de luxe", Price: price(89.99), CategoryID: categoryID("Rideaux"), StockQuantity: 50, IsActive: true},
		{Name: "Voilage Organza", Description: "Voilage délicat en organza", Price: price(45.99), CategoryID: categoryID("Voilages"), StockQuantity: 30, IsActive: true},
		{Name: "Store Vénitien Aluminium", Description: "Store vénitien moderne en aluminium", Price: price(120.00), CategoryID: categoryID("Stores"), StockQuantity: 25, IsActive: true},
	}
	return db.Create(&products).Error
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", seedAdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), 12)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        seedAdminEmail,
		PasswordHash: string(hashed),
		FirstName:    "Admin",
		LastName:     "Decora",
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("default admin created: %s", seedAdminEmail)
	return nil
}
