package identifier

import (
	"fmt"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lab_manager/internal/models"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, number, role string) {
	t.Helper()
	if err := db.Create(&models.User{
		UserNumber: number,
		FirstName:  "T",
		LastName:   "User",
		Phone:      number, // anything unique
		Role:       role,
		IsActive:   true,
	}).Error; err != nil {
		t.Fatalf("create user %s: %v", number, err)
	}
}

func TestNext_StartsAtOne(t *testing.T) {
	db := openTestDB(t, "ident_start")
	got, err := Next(db, "patient")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "PAT000001" {
		t.Fatalf("expected PAT000001, got %s", got)
	}
}

func TestNext_ContinuesFromMax(t *testing.T) {
	db := openTestDB(t, "ident_max")
	mustCreateUser(t, db, "PAT000041", "patient")
	mustCreateUser(t, db, "PAT000007", "patient")

	got, err := Next(db, "patient")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "PAT000042" {
		t.Fatalf("expected PAT000042, got %s", got)
	}
}

func TestNext_RolePrefixesIndependent(t *testing.T) {
	db := openTestDB(t, "ident_roles")
	mustCreateUser(t, db, "PAT000009", "patient")

	got, err := Next(db, "personnel")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "PER000001" {
		t.Fatalf("patient numbers must not advance the personnel sequence, got %s", got)
	}
}

func TestNext_InvalidRole(t *testing.T) {
	db := openTestDB(t, "ident_role")
	if _, err := Next(db, "admin"); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole for admin, got %v", err)
	}
	if _, err := Acquire("admin"); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole from Acquire, got %v", err)
	}
}

func TestNext_SkipsNoNumberOnSoftDelete(t *testing.T) {
	db := openTestDB(t, "ident_softdel")
	mustCreateUser(t, db, "PAT000003", "patient")
	if err := db.Where("user_number = ?", "PAT000003").Delete(&models.User{}).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	got, err := Next(db, "patient")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != "PAT000004" {
		t.Fatalf("soft-deleted numbers must not be reissued, got %s", got)
	}
}

func TestAcquire_ConcurrentRegistrationsUnique(t *testing.T) {
	db := openTestDB(t, "ident_conc")

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			release, err := Acquire("patient")
			if err != nil {
				errs <- err
				return
			}
			defer release()

			tx := db.Begin()
			number, err := Next(tx, "patient")
			if err != nil {
				tx.Rollback()
				errs <- err
				return
			}
			err = tx.Create(&models.User{
				UserNumber: number,
				FirstName:  "C",
				LastName:   "User",
				Phone:      fmt.Sprintf("555-%04d", n),
				Role:       "patient",
				IsActive:   true,
			}).Error
			if err != nil {
				tx.Rollback()
				errs <- err
				return
			}
			errs <- tx.Commit().Error
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent registration: %v", err)
		}
	}

	var numbers []string
	if err := db.Model(&models.User{}).Order("user_number").Pluck("user_number", &numbers).Error; err != nil {
		t.Fatalf("pluck: %v", err)
	}
	if len(numbers) != workers {
		t.Fatalf("expected %d users, got %d", workers, len(numbers))
	}
	seen := map[string]bool{}
	for i, n := range numbers {
		if seen[n] {
			t.Fatalf("duplicate user number %s", n)
		}
		seen[n] = true
		want := fmt.Sprintf("PAT%06d", i+1)
		if n != want {
			t.Fatalf("expected %s at position %d, got %s", want, i, n)
		}
	}
}
