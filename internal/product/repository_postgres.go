package product

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `id, "supplierName", "supplierGstNumber", "productName", "wholesalePrice", "retailPrice", "fabricType", pattern, size, quantity, "hsnCode", barcode, status, "createdAt", "updatedAt"`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	var createdAt, updatedAt sql.NullString
	err := row.Scan(&p.ID, &p.SupplierName, &p.SupplierGstNumber, &p.ProductName,
		&p.WholesalePrice, &p.RetailPrice, &p.FabricType, &p.Pattern, &p.Size,
		&p.Quantity, &p.HsnCode, &p.Barcode, &p.Status, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	return p, nil
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM product ORDER BY id DESC`)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM product WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) GetByBarcode(barcode string) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM product WHERE barcode = $1`, barcode)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Search(query string) []Product {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM product WHERE "productName" ILIKE '%' || $1 || '%' ORDER BY id DESC`, query)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	err := r.db.QueryRow(`INSERT INTO product ("supplierName", "supplierGstNumber", "productName", "wholesalePrice", "retailPrice", "fabricType", pattern, size, quantity, "hsnCode", barcode, status, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$13) RETURNING id`,
		p.SupplierName, p.SupplierGstNumber, p.ProductName, p.WholesalePrice,
		p.RetailPrice, p.FabricType, p.Pattern, p.Size, p.Quantity, p.HsnCode,
		p.Barcode, p.Status, now).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(`UPDATE product SET "supplierName"=$1, "supplierGstNumber"=$2, "productName"=$3, "wholesalePrice"=$4, "retailPrice"=$5, "fabricType"=$6, pattern=$7, size=$8, quantity=$9, "hsnCode"=$10, status=$11, "updatedAt"=$12 WHERE id=$13`,
		p.SupplierName, p.SupplierGstNumber, p.ProductName, p.WholesalePrice,
		p.RetailPrice, p.FabricType, p.Pattern, p.Size, p.Quantity, p.HsnCode,
		p.Status, now, id)
	if err != nil {
		return Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) NextBarcodeSeq() (int64, error) {
	var seq int64
	if err := r.db.QueryRow(`SELECT nextval('product_barcode_seq')`).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *PostgresRepository) DecrementStock(id int, qty int) error {
	res, err := r.db.Exec(`UPDATE product SET quantity = GREATEST(quantity - $1, 0), status = CASE WHEN quantity - $1 <= 0 THEN 'Out of Stock' ELSE status END WHERE id = $2`, qty, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
