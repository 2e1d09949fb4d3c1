package utils

import (
	"log"
	"mediary/database"
	"mediary/models"
	"mediary/services/walletService"

	"github.com/robfig/cron/v3"
)

// InitializeReconciliationScheduler sets up the nightly wallet reconciliation sweep
func InitializeReconciliationScheduler() {
	log.Println("[RECON-SCHEDULER] Initializing reconciliation scheduler...")

	c := cron.New()

	// Run daily at 2 AM, before the morning payout window
	c.AddFunc("0 2 * * *", func() {
		log.Println("[RECON-SCHEDULER] Running nightly wallet reconciliation...")
		ReconcileAllWallets()
	})

	c.Start()
	log.Println("[RECON-SCHEDULER] Reconciliation scheduler started - runs daily at 2 AM")
}

// ReconcileAllWallets recomputes every active wallet's balance from its
// ledger and logs any drift corrections
func ReconcileAllWallets() {
	db := database.Database.Db

	var wallets []models.Wallet
	if err := db.Where("is_active = true").Find(&wallets).Error; err != nil {
		log.Printf("[RECON-SCHEDULER] Error fetching wallets: %v", err)
		return
	}

	corrected := 0
	for _, wallet := range wallets {
		result, err := walletService.Reconcile(db, wallet.UserID)
		if err != nil {
			log.Printf("[RECON-SCHEDULER] Error reconciling wallet %d: %v", wallet.ID, err)
			continue
		}
		if result.Corrected {
			corrected++
			log.Printf("[RECON-SCHEDULER] Corrected wallet %d: %s -> %s",
				wallet.ID, result.OldBalance.StringFixed(2), result.ExpectedBalance.StringFixed(2))
		}
	}

	log.Printf("[RECON-SCHEDULER] Reconciliation complete: %d wallets checked, %d corrected",
		len(wallets), corrected)
}
