package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/customer"
)

// ErrCustomerNotFound indica cliente inexistente para o dono informado
var ErrCustomerNotFound = errors.New("cliente não encontrado")

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db *pgxpool.Pool
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *pgxpool.Pool) customer.Repository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, owner_id, name, email, phone, cpf_cnpj, ie, im,
	address, number, complement, district, city, state, zip_code, notes, created_at`

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO finance_customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		c.ID, c.OwnerID, c.Name, nullable(c.Email), nullable(c.Phone),
		nullable(c.CpfCnpj), nullable(c.IE), nullable(c.IM), nullable(c.Address),
		nullable(c.Number), nullable(c.Complement), nullable(c.District),
		nullable(c.City), nullable(c.State), nullable(c.ZipCode),
		nullable(c.Notes), c.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}
	return nil
}

// Update implementa customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE finance_customers SET
			name = $3, email = $4, phone = $5, cpf_cnpj = $6, ie = $7, im = $8,
			address = $9, number = $10, complement = $11, district = $12,
			city = $13, state = $14, zip_code = $15, notes = $16
		WHERE id = $1 AND owner_id = $2`,
		c.ID, c.OwnerID, c.Name, nullable(c.Email), nullable(c.Phone),
		nullable(c.CpfCnpj), nullable(c.IE), nullable(c.IM), nullable(c.Address),
		nullable(c.Number), nullable(c.Complement), nullable(c.District),
		nullable(c.City), nullable(c.State), nullable(c.ZipCode), nullable(c.Notes))
	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Delete implementa customer.Repository.Delete
func (r *CustomerRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM finance_customers WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("erro ao remover cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, ownerID, id string) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM finance_customers
		WHERE id = $1 AND owner_id = $2`, id, ownerID)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return c, nil
}

// FindByOwner implementa customer.Repository.FindByOwner
func (r *CustomerRepository) FindByOwner(ctx context.Context, ownerID string) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM finance_customers
		WHERE owner_id = $1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// CountByOwner implementa customer.Repository.CountByOwner
func (r *CustomerRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM finance_customers WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}
	return count, nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	var email, phone, cpfCnpj, ie, im, address, number *string
	var complement, district, city, state, zipCode, notes *string

	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &email, &phone, &cpfCnpj,
		&ie, &im, &address, &number, &complement, &district, &city, &state,
		&zipCode, &notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	c.Email = deref(email)
	c.Phone = deref(phone)
	c.CpfCnpj = deref(cpfCnpj)
	c.IE = deref(ie)
	c.IM = deref(im)
	c.Address = deref(address)
	c.Number = deref(number)
	c.Complement = deref(complement)
	c.District = deref(district)
	c.City = deref(city)
	c.State = deref(state)
	c.ZipCode = deref(zipCode)
	c.Notes = deref(notes)
	return &c, nil
}
