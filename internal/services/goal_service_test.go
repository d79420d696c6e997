package services

import (
	"testing"
	"time"

	"finsight/internal/models"
	"finsight/internal/pagination"
	"finsight/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.CreateGoal(user.ID, "Emergency Fund", 5000, 1200, time.Now().AddDate(0, 6, 0))
		testutil.AssertNoError(t, err)
		if goal.ID == 0 {
			t.Fatal("expected non-zero goal ID")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "", 5000, 0, time.Now().AddDate(0, 6, 0))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Emergency Fund", 0, 0, time.Now().AddDate(0, 6, 0))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_current", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Emergency Fund", 5000, -1, time.Now().AddDate(0, 6, 0))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_deadline", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Emergency Fund", 5000, 0, time.Time{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestComputeProgress(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("partial_progress", func(t *testing.T) {
		goal := models.Goal{TargetAmount: 5000, CurrentAmount: 1250, Deadline: now.AddDate(0, 0, 30)}

		p := ComputeProgress(goal, now)
		if p.ProgressPercent != 25 {
			t.Errorf("expected 25%%, got %f", p.ProgressPercent)
		}
		if p.Remaining != 3750 {
			t.Errorf("expected remaining 3750, got %f", p.Remaining)
		}
		if p.DaysRemaining != 30 {
			t.Errorf("expected 30 days remaining, got %d", p.DaysRemaining)
		}
		if p.Overdue {
			t.Error("goal should not be overdue")
		}
	})

	t.Run("at_target", func(t *testing.T) {
		goal := models.Goal{TargetAmount: 5000, CurrentAmount: 5000, Deadline: now.AddDate(0, 1, 0)}

		p := ComputeProgress(goal, now)
		if p.ProgressPercent != 100 {
			t.Errorf("expected 100%%, got %f", p.ProgressPercent)
		}
		if p.Remaining != 0 {
			t.Errorf("expected remaining 0, got %f", p.Remaining)
		}
	})

	t.Run("overfunded", func(t *testing.T) {
		goal := models.Goal{TargetAmount: 5000, CurrentAmount: 6000, Deadline: now.AddDate(0, 1, 0)}

		p := ComputeProgress(goal, now)
		if p.ProgressPercent != 120 {
			t.Errorf("expected 120%%, got %f", p.ProgressPercent)
		}
		if p.Remaining != -1000 {
			t.Errorf("expected remaining -1000, got %f", p.Remaining)
		}
	})

	t.Run("partial_day_rounds_up", func(t *testing.T) {
		goal := models.Goal{TargetAmount: 5000, CurrentAmount: 0, Deadline: now.Add(36 * time.Hour)}

		p := ComputeProgress(goal, now)
		if p.DaysRemaining != 2 {
			t.Errorf("expected 2 days remaining for a 36h window, got %d", p.DaysRemaining)
		}
	})

	t.Run("overdue", func(t *testing.T) {
		goal := models.Goal{TargetAmount: 5000, CurrentAmount: 1000, Deadline: now.AddDate(0, 0, -3)}

		p := ComputeProgress(goal, now)
		if !p.Overdue {
			t.Fatal("expected goal to be overdue")
		}
		if p.DaysRemaining != -3 {
			t.Errorf("expected -3 days remaining, got %d", p.DaysRemaining)
		}
		if p.DaysOverdue != 3 {
			t.Errorf("expected 3 days overdue, got %d", p.DaysOverdue)
		}
	})
}

func TestGetUserGoals(t *testing.T) {
	t.Run("includes_overdue", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestGoal(t, db, user.ID, 5000, 1000, time.Now().AddDate(0, 0, -10))
		testutil.CreateTestGoal(t, db, user.ID, 3000, 500, time.Now().AddDate(0, 3, 0))

		result, err := svc.GetUserGoals(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Fatalf("expected overdue goals to be listed, got %d goals", result.TotalItems)
		}

		overdueCount := 0
		for _, goal := range result.Data {
			if goal.Progress.Overdue {
				overdueCount++
			}
		}
		if overdueCount != 1 {
			t.Errorf("expected exactly 1 overdue goal, got %d", overdueCount)
		}
	})

	t.Run("other_users_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		testutil.CreateTestGoal(t, db, user1.ID, 5000, 0, time.Now().AddDate(0, 1, 0))

		result, err := svc.GetUserGoals(user2.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no goals for the other user, got %d", result.TotalItems)
		}
	})
}

func TestGetGoalByID(t *testing.T) {
	t.Run("found_with_progress", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 5000, 2500, time.Now().AddDate(0, 1, 0))

		found, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertNoError(t, err)
		if found.Progress.ProgressPercent != 50 {
			t.Errorf("expected 50%% progress, got %f", found.Progress.ProgressPercent)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetGoalByID(user.ID, 99999)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 5000, 1000, time.Now().AddDate(0, 1, 0))

		amount := 2000.0
		updated, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdate{CurrentAmount: &amount})
		testutil.AssertNoError(t, err)
		if updated.CurrentAmount != 2000 {
			t.Errorf("expected current amount 2000, got %f", updated.CurrentAmount)
		}
		if updated.TargetAmount != 5000 {
			t.Errorf("expected target unchanged at 5000, got %f", updated.TargetAmount)
		}
	})

	t.Run("zero_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 5000, 1000, time.Now().AddDate(0, 1, 0))

		target := 0.0
		_, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdate{TargetAmount: &target})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		name := "x"
		_, err := svc.UpdateGoal(user.ID, 99999, GoalUpdate{Name: &name})
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 5000, 1000, time.Now().AddDate(0, 1, 0))

		testutil.AssertNoError(t, svc.DeleteGoal(user.ID, goal.ID))

		_, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteGoal(user.ID, 99999)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}
