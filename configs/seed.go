package configs

import (
	"eatmove/entity"
	"eatmove/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemo gives a fresh install something to click on: one restaurant with a
// short menu, one member, one courier. Gated behind SEED_DEMO=true.
func SeedDemo(cfg *Config) error {
	if !cfg.SeedDemo {
		return nil
	}
	gdb := DB()

	var count int64
	gdb.Model(&entity.Restaurant{}).Count(&count)
	if count > 0 {
		logrus.Info("seed skipped: restaurants already present")
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

	rest := entity.Restaurant{
		Name: "Demo Noodle House", Email: "owner@demo.eatmove",
		Password: string(hash), Phone: "020000000",
		Address: "1 Demo Road", Description: "Seeded demo restaurant",
		Cuisine: "noodles", DeliveryArea: "central", BusinessHours: "09:00-21:00",
		IsOpen: true, MinOrderAmount: 50,
		Latitude: 13.7563, Longitude: 100.5018,
	}
	if err := gdb.Create(&rest).Error; err != nil {
		return err
	}
	gdb.Model(&rest).Update("code", utils.AccountCode("R", rest.ID))

	menu := []entity.MenuItem{
		{RestaurantID: rest.ID, Name: "Boat Noodles", Price: 50, Category: "main", Available: true, Popular: true},
		{RestaurantID: rest.ID, Name: "Fried Wontons", Price: 30, Category: "side", Available: true},
		{RestaurantID: rest.ID, Name: "Thai Iced Tea", Price: 25, Category: "drink", Available: true},
	}
	if err := gdb.Create(&menu).Error; err != nil {
		return err
	}

	member := entity.Member{
		Name: "Demo Member", Email: "member@demo.eatmove",
		Password: string(hash), Phone: "0810000000",
		Address: "2 Demo Road", WalletBalance: 1000,
	}
	if err := gdb.Create(&member).Error; err != nil {
		return err
	}
	gdb.Model(&member).Update("code", utils.AccountCode("M", member.ID))

	courier := entity.Courier{
		Name: "Demo Courier", Email: "courier@demo.eatmove",
		Password: string(hash), Phone: "0820000000",
		Zone: "central", Online: true,
	}
	if err := gdb.Create(&courier).Error; err != nil {
		return err
	}
	gdb.Model(&courier).Update("code", utils.AccountCode("D", courier.ID))

	logrus.Info("demo data seeded")
	return nil
}
