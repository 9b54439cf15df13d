package jobs

import (
	"context"
	"log"
	"time"
)

type otpStore interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// OTPExpiryJob sweeps expired verification codes out of storage
type OTPExpiryJob struct {
	repo     otpStore
	interval time.Duration
	stop     chan struct{}
}

func NewOTPExpiryJob(repo otpStore) *OTPExpiryJob {
	return &OTPExpiryJob{
		repo:     repo,
		interval: 5 * time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *OTPExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting OTP expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ OTP expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ OTP expiry job stopped")
			return
		case <-ticker.C:
			j.sweepExpired(ctx)
		}
	}
}

func (j *OTPExpiryJob) Stop() {
	close(j.stop)
}

func (j *OTPExpiryJob) sweepExpired(ctx context.Context) {
	deleted, err := j.repo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Error sweeping expired OTPs: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Swept %d expired OTPs", deleted)
	}
}
