package customer

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const customerColumns = `id, name, "phoneNumber", email, dob, dom, address, "maritalStatus", "createdAt", "updatedAt"`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCustomer(row interface{ Scan(...any) error }) (Customer, error) {
	var c Customer
	var createdAt, updatedAt sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.Email, &c.Dob, &c.Dom,
		&c.Address, &c.MaritalStatus, &createdAt, &updatedAt)
	if err != nil {
		return Customer{}, err
	}
	c.CreatedAt = createdAt.String
	c.UpdatedAt = updatedAt.String
	return c, nil
}

func (r *PostgresRepository) GetByPhone(phoneNumber string) (Customer, error) {
	row := r.db.QueryRow(`SELECT `+customerColumns+` FROM customer WHERE "phoneNumber" = $1`, phoneNumber)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (r *PostgresRepository) GetByID(id int) (Customer, error) {
	row := r.db.QueryRow(`SELECT `+customerColumns+` FROM customer WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(c Customer) (Customer, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	err := r.db.QueryRow(`INSERT INTO customer (name, "phoneNumber", email, dob, dom, address, "maritalStatus", "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8) RETURNING id`,
		c.Name, c.PhoneNumber, c.Email, c.Dob, c.Dom, c.Address, c.MaritalStatus, now).Scan(&c.ID)
	if err != nil {
		return Customer{}, err
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

func (r *PostgresRepository) Update(id int, c Customer) (Customer, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(`UPDATE customer SET name=$1, email=$2, dob=$3, dom=$4, address=$5, "maritalStatus"=$6, "updatedAt"=$7 WHERE id=$8`,
		c.Name, c.Email, c.Dob, c.Dom, c.Address, c.MaritalStatus, now, id)
	if err != nil {
		return Customer{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Customer{}, ErrNotFound
	}
	return r.GetByID(id)
}
