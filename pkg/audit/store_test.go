package audit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	event := CategorizeEvent{
		ClientID:   "flutter-app",
		ClientIP:   "10.0.0.1",
		Category:   "Essentials",
		Confidence: 0.84,
		Amount:     320,
		Merchant:   "Unknown Merchant",
		Success:    true,
	}

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs(
			FacilityUser,      // facility
			int(SeverityInfo), // severity
			sqlmock.AnyArg(),  // timestamp
			sqlmock.AnyArg(),  // hostname
			"smscat",          // appname
			sqlmock.AnyArg(),  // procid
			"categorize",      // msgid
			sqlmock.AnyArg(),  // sdata (JSON)
			sqlmock.AnyArg(),  // message
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Save(event)
	if err != nil {
		t.Errorf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveAuthenticateEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	event := AuthenticateEvent{
		ClientID: "flutter-app",
		ClientIP: "192.168.1.1",
		Success:  false,
	}

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs(
			FacilityAuthPriv,
			int(SeverityWarning),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			"smscat",
			sqlmock.AnyArg(),
			"authn",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Save(event); err != nil {
		t.Errorf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreNilDB(t *testing.T) {
	store := &Store{}
	if err := store.Save(CategorizeEvent{Success: true}); err != nil {
		t.Errorf("Save() on nil db should be a no-op, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() on nil db should be a no-op, got %v", err)
	}
}
