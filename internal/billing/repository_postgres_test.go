package billing

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var errDriverFailure = errors.New("driver failure")

func TestPostgresCreate_OneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	inv := Invoice{
		InvoiceNumber:  "INV-1700000000000",
		CustomerID:     7,
		Subtotal:       300,
		Discount:       20,
		Total:          280,
		CgstPercentage: 2.5,
		SgstPercentage: 2.5,
		PaymentMethod:  "cash",
		InvoiceItems: []InvoiceItem{
			{ProductID: 1, ProductName: "Silk Saree", Quantity: 1, Price: 200, SubTotal: 200, Total: 180},
			{ProductID: 2, ProductName: "Dhoti", Quantity: 2, Price: 50, SubTotal: 100, Total: 100},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO invoice ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery("INSERT INTO invoice_item ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectExec("UPDATE product SET quantity = GREATEST").
		WithArgs(1, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO invoice_item ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(22))
	mock.ExpectExec("UPDATE product SET quantity = GREATEST").
		WithArgs(2, 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.Create(inv)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 11 {
		t.Fatalf("expected invoice id 11, got %d", created.ID)
	}
	if created.InvoiceItems[0].ID != 21 || created.InvoiceItems[1].ID != 22 {
		t.Fatalf("expected item ids assigned, got %+v", created.InvoiceItems)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_RollsBackOnItemFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	inv := Invoice{
		InvoiceNumber: "INV-1",
		CustomerID:    7,
		InvoiceItems:  []InvoiceItem{{ProductID: 1, ProductName: "Silk Saree", Quantity: 1}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO invoice ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery("INSERT INTO invoice_item ").
		WillReturnError(errDriverFailure)
	mock.ExpectRollback()

	if _, err := repo.Create(inv); err == nil {
		t.Fatalf("expected error from failed item insert")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM invoice WHERE id").WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(99); err != ErrInvoiceNotFound {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}
