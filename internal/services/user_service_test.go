package services

import (
	"testing"

	"finbook/internal/models"
	"finbook/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice@example.com", "password123", "Alice")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.Password == "password123" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("cascades_empty_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("bob@example.com", "password123", "Bob")
		testutil.AssertNoError(t, err)

		var ledger models.Account
		if err := db.Where("user_id = ?", user.ID).First(&ledger).Error; err != nil {
			t.Fatalf("expected ledger row for new user: %v", err)
		}
		if !ledger.TotalBalance.IsZero() {
			t.Errorf("expected zero balance, got %s", ledger.TotalBalance)
		}
	})

	t.Run("lowercases_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Carol@Example.COM", "password123", "")
		testutil.AssertNoError(t, err)

		if user.Email != "carol@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("dan@example.com", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("eve@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("EVE@example.com", "otherpassword", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("frank@example.com", "correct-horse", "")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "correct-horse") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong-horse") {
		t.Error("expected wrong password to fail")
	}
	if svc.VerifyPassword(user, "") {
		t.Error("expected empty password to fail")
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	created, err := svc.CreateUser("grace@example.com", "secret-phrase", "Grace")
	testutil.AssertNoError(t, err)

	fetched, err := svc.GetUserByEmail("grace@example.com")
	testutil.AssertNoError(t, err)

	if fetched.ID != created.ID {
		t.Errorf("expected user %d, got %d", created.ID, fetched.ID)
	}
	if !svc.VerifyPassword(fetched, "secret-phrase") {
		t.Error("expected registered credentials to verify on login")
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Run("partial_patch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		name := "New Name"
		updated, err := svc.UpdateProfile(user.ID, ProfilePatch{Name: &name})
		testutil.AssertNoError(t, err)

		if updated.Name != "New Name" {
			t.Errorf("expected updated name, got %s", updated.Name)
		}

		var reloaded models.User
		testutil.AssertNoError(t, db.First(&reloaded, user.ID).Error)
		if reloaded.Avatar != user.Avatar {
			t.Error("expected avatar to be untouched by name-only patch")
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		name := "Nobody"
		_, err := svc.UpdateProfile(9999, ProfilePatch{Name: &name})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
