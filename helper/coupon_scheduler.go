package helper

import (
	"hearthroot_shop/database"
	"hearthroot_shop/model"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var couponScheduler gocron.Scheduler

// DeactivateExpiredCoupons flips is_active off for every coupon whose window
// has closed so listings stop offering them. The evaluator would reject them
// anyway, this keeps the admin screens honest.
func DeactivateExpiredCoupons() {
	log.Println("[CRON] DeactivateExpiredCoupons triggered")

	db := database.DB
	res := db.Model(&model.Coupon{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, time.Now()).
		Update("is_active", false)
	if res.Error != nil {
		log.Printf("failed to deactivate expired coupons: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("deactivated %d expired coupons", res.RowsAffected)
	}
}

func StartCouponScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	couponScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 10, 0),
			),
		),
		gocron.NewTask(DeactivateExpiredCoupons),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("coupon expiry scheduler started (00:10 daily)")
}

func StopCouponScheduler() {
	if couponScheduler != nil {
		_ = couponScheduler.Shutdown()
	}
}
