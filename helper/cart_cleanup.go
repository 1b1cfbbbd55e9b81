package helper

import (
	"hearthroot_shop/database"
	"hearthroot_shop/model"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const guestCartMaxAge = 30 * 24 * time.Hour

var cartCleanupScheduler *cron.Cron

// PurgeStaleGuestCarts deletes guest carts untouched for guestCartMaxAge.
// Customer carts are never swept.
func PurgeStaleGuestCarts() {
	db := database.DB
	cutoff := time.Now().Add(-guestCartMaxAge)

	var carts []model.Cart
	if err := db.Where("customer_id IS NULL AND updated_at < ?", cutoff).Find(&carts).Error; err != nil {
		log.Printf("failed to scan stale guest carts: %v", err)
		return
	}
	if len(carts) == 0 {
		return
	}

	ids := make([]uint, 0, len(carts))
	for _, cart := range carts {
		ids = append(ids, cart.ID)
	}

	if err := db.Where("cart_id IN ?", ids).Delete(&model.CartItem{}).Error; err != nil {
		log.Printf("failed to delete stale guest cart items: %v", err)
		return
	}
	if err := db.Delete(&model.Cart{}, ids).Error; err != nil {
		log.Printf("failed to delete stale guest carts: %v", err)
		return
	}
	log.Printf("purged %d stale guest carts", len(carts))
}

func StartCartCleanupScheduler() {
	cartCleanupScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := cartCleanupScheduler.AddFunc("0 * * * *", PurgeStaleGuestCarts)
	if err != nil {
		log.Printf("failed to start cart cleanup scheduler: %v", err)
		return
	}

	cartCleanupScheduler.Start()
	log.Println("guest cart cleanup scheduler started (hourly)")
}

func StopCartCleanupScheduler() {
	if cartCleanupScheduler != nil {
		cartCleanupScheduler.Stop()
	}
}
