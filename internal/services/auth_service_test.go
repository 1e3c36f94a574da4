package services

import (
	"context"
	"testing"
	"time"

	"khata/internal/models"
	"khata/internal/testutil"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_credential_and_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, time.Hour)

		profile, err := svc.SignUp(ctx, " Qaisar ", "Qaisar@Example.com", "secret1", models.RoleAdmin)
		testutil.AssertNoError(t, err)

		if profile.Name != "Qaisar" || profile.Email != "qaisar@example.com" || profile.Role != models.RoleAdmin {
			t.Errorf("unexpected profile: %+v", profile)
		}

		var credential models.Credential
		testutil.AssertNoError(t, db.First(&credential, "id = ?", profile.ID).Error)
		if credential.PasswordHash == "secret1" || credential.PasswordHash == "" {
			t.Error("password should be stored hashed")
		}
	})

	t.Run("defaults_to_viewer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, time.Hour)

		profile, err := svc.SignUp(ctx, "Rizwan", "rizwan@example.com", "secret1", "")
		testutil.AssertNoError(t, err)
		if profile.Role != models.RoleViewer {
			t.Errorf("expected viewer role, got %s", profile.Role)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, time.Hour)

		_, err := svc.SignUp(ctx, "A", "dup@example.com", "secret1", models.RoleViewer)
		testutil.AssertNoError(t, err)
		_, err = svc.SignUp(ctx, "B", "DUP@example.com", "secret1", models.RoleViewer)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	invalid := []struct {
		name, userName, email, password string
		role                            models.Role
	}{
		{"missing_name", " ", "a@example.com", "secret1", models.RoleViewer},
		{"bad_email", "A", "not-an-email", "secret1", models.RoleViewer},
		{"short_password", "A", "a@example.com", "12345", models.RoleViewer},
		{"unknown_role", "A", "a@example.com", "secret1", models.Role("owner")},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := NewAuthService(db, time.Hour)

			_, err := svc.SignUp(ctx, tt.userName, tt.email, tt.password, tt.role)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		})
	}
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuthService(db, time.Hour)

	profile := testutil.CreateTestProfileWithEmail(t, db, "nawaz@example.com", models.RoleViewer)

	credential, err := svc.SignIn(ctx, "NAWAZ@example.com", testutil.TestPassword)
	testutil.AssertNoError(t, err)
	if credential.ID != profile.ID {
		t.Errorf("expected credential %s, got %s", profile.ID, credential.ID)
	}

	_, err = svc.SignIn(ctx, "nawaz@example.com", "wrong-password")
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

	_, err = svc.SignIn(ctx, "nobody@example.com", testutil.TestPassword)
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuthService(db, time.Hour)

	profile := testutil.CreateTestProfile(t, db, models.RoleAdmin)

	session, err := svc.StartSession(ctx, profile.ID)
	testutil.AssertNoError(t, err)

	identity, err := svc.SessionIdentity(ctx, session.ID)
	testutil.AssertNoError(t, err)
	if identity != profile.ID {
		t.Errorf("expected identity %s, got %s", profile.ID, identity)
	}

	testutil.AssertNoError(t, svc.EndSession(ctx, session.ID))
	_, err = svc.SessionIdentity(ctx, session.ID)
	testutil.AssertAppError(t, err, "UNAUTHORIZED")

	testutil.AssertNoError(t, svc.EndSession(ctx, session.ID))
}

func TestSessionIdentity_Expired(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewAuthService(db, time.Hour).(*authService)
	profile := testutil.CreateTestProfile(t, db, models.RoleAdmin)

	session, err := svc.StartSession(ctx, profile.ID)
	testutil.AssertNoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.SessionIdentity(ctx, session.ID)
	testutil.AssertAppError(t, err, "UNAUTHORIZED")
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)

	profile := testutil.CreateTestProfile(t, db, models.RoleViewer)
	got, err := svc.GetProfile(ctx, profile.ID)
	testutil.AssertNoError(t, err)
	if got.Email != profile.Email || got.Role != models.RoleViewer {
		t.Errorf("unexpected profile: %+v", got)
	}

	orphan := testutil.CreateTestCredential(t, db)
	_, err = svc.GetProfile(ctx, orphan.ID)
	testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
}
