package billing

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const invoiceColumns = `id, "invoiceNumber", "invoiceDateTime", "customerId", subtotal, discount, "taxableAmount", "cgstPercentage", cgst, "sgstPercentage", sgst, total, "paymentMethod", "createdAt"`

// Create stores the invoice and its items in one transaction and decrements
// product stock for every sold line.
func (r *PostgresRepository) Create(inv Invoice) (Invoice, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Invoice{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`INSERT INTO invoice ("invoiceNumber", "invoiceDateTime", "customerId", subtotal, discount, "taxableAmount", "cgstPercentage", cgst, "sgstPercentage", sgst, total, "paymentMethod", "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$13) RETURNING id`,
		inv.InvoiceNumber, inv.InvoiceDateTime, inv.CustomerID, inv.Subtotal,
		inv.Discount, inv.TaxableAmount, inv.CgstPercentage, inv.Cgst,
		inv.SgstPercentage, inv.Sgst, inv.Total, inv.PaymentMethod,
		inv.CreatedAt).Scan(&inv.ID)
	if err != nil {
		return Invoice{}, err
	}

	for i := range inv.InvoiceItems {
		item := &inv.InvoiceItems[i]
		err = tx.QueryRow(`INSERT INTO invoice_item ("invoiceId", "productId", "productName", barcode, "hsnCode", price, quantity, "subTotal", "discountPercentage", "discountAmount", total, "createdAt", "updatedAt")
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12) RETURNING id`,
			inv.ID, item.ProductID, item.ProductName, item.Barcode, item.HsnCode,
			item.Price, item.Quantity, item.SubTotal, item.DiscountPercentage,
			item.DiscountAmount, item.Total, inv.CreatedAt).Scan(&item.ID)
		if err != nil {
			return Invoice{}, err
		}

		if _, err := tx.Exec(`UPDATE product SET quantity = GREATEST(quantity - $1, 0), status = CASE WHEN quantity - $1 <= 0 THEN 'Out of Stock' ELSE status END WHERE id = $2`,
			item.Quantity, item.ProductID); err != nil {
			return Invoice{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (r *PostgresRepository) List() ([]Invoice, error) {
	rows, err := r.db.Query(`SELECT ` + invoiceColumns + ` FROM invoice ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Invoice, 0)
	ids := make([]int, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	itemsByInvoice, err := r.itemsForInvoices(ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].InvoiceItems = itemsByInvoice[out[i].ID]
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Invoice, error) {
	row := r.db.QueryRow(`SELECT `+invoiceColumns+` FROM invoice WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return Invoice{}, ErrInvoiceNotFound
	}
	if err != nil {
		return Invoice{}, err
	}

	items, err := r.itemsForInvoices([]int{inv.ID})
	if err != nil {
		return Invoice{}, err
	}
	inv.InvoiceItems = items[inv.ID]
	return inv, nil
}

func scanInvoice(row interface{ Scan(...any) error }) (Invoice, error) {
	var inv Invoice
	var invoiceDateTime, createdAt sql.NullString
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &invoiceDateTime, &inv.CustomerID,
		&inv.Subtotal, &inv.Discount, &inv.TaxableAmount, &inv.CgstPercentage,
		&inv.Cgst, &inv.SgstPercentage, &inv.Sgst, &inv.Total,
		&inv.PaymentMethod, &createdAt)
	if err != nil {
		return Invoice{}, err
	}
	inv.InvoiceDateTime = invoiceDateTime.String
	inv.CreatedAt = createdAt.String
	return inv, nil
}

func (r *PostgresRepository) itemsForInvoices(ids []int) (map[int][]InvoiceItem, error) {
	rows, err := r.db.Query(`SELECT id, "invoiceId", "productId", "productName", barcode, "hsnCode", price, quantity, "subTotal", "discountPercentage", "discountAmount", total
        FROM invoice_item WHERE "invoiceId" = ANY($1::int[]) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]InvoiceItem)
	for rows.Next() {
		var item InvoiceItem
		var invoiceID int
		if err := rows.Scan(&item.ID, &invoiceID, &item.ProductID, &item.ProductName,
			&item.Barcode, &item.HsnCode, &item.Price, &item.Quantity,
			&item.SubTotal, &item.DiscountPercentage, &item.DiscountAmount,
			&item.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		out[invoiceID] = append(out[invoiceID], item)
	}
	return out, rows.Err()
}
