package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finsight/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestHolding creates a holding with the given quantity and whole-holding
// current value.
func CreateTestHolding(t *testing.T, db *gorm.DB, userID uint, assetName string, quantity, currentValue float64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		UserID:        userID,
		AssetName:     assetName,
		AssetType:     models.AssetTypeStock,
		Quantity:      quantity,
		PurchasePrice: 100,
		CurrentValue:  currentValue,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestTransaction creates a transaction of the given type.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, assetName string, quantity *float64, price float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:    userID,
		Type:      txType,
		AssetName: assetName,
		Quantity:  quantity,
		Price:     price,
		Date:      time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal creates a goal with the given amounts and deadline.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, targetAmount, currentAmount float64, deadline time.Time) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Deadline:      deadline,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestAdvisor creates an advisor directory entry.
func CreateTestAdvisor(t *testing.T, db *gorm.DB) *models.Advisor {
	t.Helper()

	n := nextID()
	advisor := &models.Advisor{
		Name:      fmt.Sprintf("Test Advisor %d", n),
		Email:     fmt.Sprintf("advisor%d@test.com", n),
		Expertise: "Retirement Planning",
	}
	if err := db.Create(advisor).Error; err != nil {
		t.Fatalf("failed to create test advisor: %v", err)
	}
	return advisor
}

// CreateTestMeeting creates a meeting between a user and an advisor.
func CreateTestMeeting(t *testing.T, db *gorm.DB, userID, advisorID uint, date time.Time) *models.AdvisorMeeting {
	t.Helper()

	meeting := &models.AdvisorMeeting{
		UserID:    userID,
		AdvisorID: advisorID,
		Date:      date,
		Topic:     fmt.Sprintf("Test Topic %d", nextID()),
	}
	if err := db.Create(meeting).Error; err != nil {
		t.Fatalf("failed to create test meeting: %v", err)
	}
	return meeting
}
