package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/serviceorder"
)

// ErrServiceOrderNotFound indica ordem de serviço inexistente para o dono
var ErrServiceOrderNotFound = errors.New("ordem de serviço não encontrada")

// ServiceOrderRepository implementa a interface serviceorder.Repository
type ServiceOrderRepository struct {
	db *pgxpool.Pool
}

// NewServiceOrderRepository cria uma nova instância de ServiceOrderRepository
func NewServiceOrderRepository(db *pgxpool.Pool) serviceorder.Repository {
	return &ServiceOrderRepository{db: db}
}

const serviceOrderColumns = `id, owner_id, customer_id, customer_name,
	customer_phone, customer_address, status, start_date, estimated_end_date,
	completed_date, description, technician_notes, assigned_technician,
	labor_cost, parts_cost, total, created_at, updated_at`

// Create implementa serviceorder.Repository.Create
func (r *ServiceOrderRepository) Create(ctx context.Context, o *serviceorder.ServiceOrder) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO finance_service_orders (`+serviceOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		o.ID, o.OwnerID, nullableUUID(o.CustomerID), o.CustomerName,
		nullable(o.CustomerPhone), nullable(o.CustomerAddress), o.Status,
		o.StartDate, o.EstimatedEndDate, o.CompletedDate,
		nullable(o.Description), nullable(o.TechnicianNotes),
		nullable(o.AssignedTechnician), o.LaborCost, o.PartsCost, o.Total,
		o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar ordem de serviço: %w", err)
	}

	if err := insertServiceOrderItems(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update implementa serviceorder.Repository.Update. As linhas antigas são
// removidas e as novas inseridas na mesma transação.
func (r *ServiceOrderRepository) Update(ctx context.Context, o *serviceorder.ServiceOrder) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE finance_service_orders SET
			customer_id = $3, customer_name = $4, customer_phone = $5,
			customer_address = $6, status = $7, start_date = $8,
			estimated_end_date = $9, completed_date = $10, description = $11,
			technician_notes = $12, assigned_technician = $13, labor_cost = $14,
			parts_cost = $15, total = $16, updated_at = $17
		WHERE id = $1 AND owner_id = $2`,
		o.ID, o.OwnerID, nullableUUID(o.CustomerID), o.CustomerName,
		nullable(o.CustomerPhone), nullable(o.CustomerAddress), o.Status,
		o.StartDate, o.EstimatedEndDate, o.CompletedDate,
		nullable(o.Description), nullable(o.TechnicianNotes),
		nullable(o.AssignedTechnician), o.LaborCost, o.PartsCost, o.Total,
		o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar ordem de serviço: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceOrderNotFound
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM finance_service_order_items WHERE service_order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("erro ao substituir itens da ordem de serviço: %w", err)
	}
	if err := insertServiceOrderItems(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete implementa serviceorder.Repository.Delete. As linhas caem junto
// pelo ON DELETE CASCADE do esquema.
func (r *ServiceOrderRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM finance_service_orders WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("erro ao remover ordem de serviço: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceOrderNotFound
	}
	return nil
}

// FindByID implementa serviceorder.Repository.FindByID
func (r *ServiceOrderRepository) FindByID(ctx context.Context, ownerID, id string) (*serviceorder.ServiceOrder, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+serviceOrderColumns+` FROM finance_service_orders
		WHERE id = $1 AND owner_id = $2`, id, ownerID)
	o, err := scanServiceOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceOrderNotFound
		}
		return nil, fmt.Errorf("erro ao buscar ordem de serviço: %w", err)
	}
	if err := r.loadItems(ctx, []*serviceorder.ServiceOrder{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// FindByOwner implementa serviceorder.Repository.FindByOwner
func (r *ServiceOrderRepository) FindByOwner(ctx context.Context, ownerID string) ([]*serviceorder.ServiceOrder, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+serviceOrderColumns+` FROM finance_service_orders
		WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar ordens de serviço: %w", err)
	}
	defer rows.Close()

	orders := make([]*serviceorder.ServiceOrder, 0)
	for rows.Next() {
		o, err := scanServiceOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler ordem de serviço: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CountByOwnerAndStatus implementa serviceorder.Repository.CountByOwnerAndStatus
func (r *ServiceOrderRepository) CountByOwnerAndStatus(ctx context.Context, ownerID string, status serviceorder.Status) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM finance_service_orders
		WHERE owner_id = $1 AND status = $2`, ownerID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar ordens de serviço: %w", err)
	}
	return count, nil
}

func (r *ServiceOrderRepository) loadItems(ctx context.Context, orders []*serviceorder.ServiceOrder) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*serviceorder.ServiceOrder, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		o.Items = make([]serviceorder.Item, 0)
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT service_order_id, id, catalog_id, item_name, description,
			quantity, unit_price, total, is_service
		FROM finance_service_order_items
		WHERE service_order_id = ANY($1) ORDER BY service_order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("erro ao listar itens da ordem de serviço: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item serviceorder.Item
		var catalogID, itemName, description *string
		if err := rows.Scan(&orderID, &item.ID, &catalogID, &itemName,
			&description, &item.Quantity, &item.UnitPrice, &item.Total,
			&item.IsService); err != nil {
			return fmt.Errorf("erro ao ler item da ordem de serviço: %w", err)
		}
		item.CatalogID = deref(catalogID)
		item.ItemName = deref(itemName)
		item.Description = deref(description)
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func insertServiceOrderItems(ctx context.Context, tx pgx.Tx, o *serviceorder.ServiceOrder) error {
	for i, item := range o.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO finance_service_order_items (
				id, service_order_id, catalog_id, item_name, description,
				quantity, unit_price, total, is_service, position
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			item.ID, o.ID, nullableUUID(item.CatalogID), nullable(item.ItemName),
			nullable(item.Description), item.Quantity, item.UnitPrice,
			item.Total, item.IsService, i)
		if err != nil {
			return fmt.Errorf("erro ao gravar item da ordem de serviço: %w", err)
		}
	}
	return nil
}

func scanServiceOrder(row pgx.Row) (*serviceorder.ServiceOrder, error) {
	var o serviceorder.ServiceOrder
	var customerID, phone, address, description, techNotes, technician *string

	err := row.Scan(&o.ID, &o.OwnerID, &customerID, &o.CustomerName, &phone,
		&address, &o.Status, &o.StartDate, &o.EstimatedEndDate, &o.CompletedDate,
		&description, &techNotes, &technician, &o.LaborCost, &o.PartsCost,
		&o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	o.CustomerID = deref(customerID)
	o.CustomerPhone = deref(phone)
	o.CustomerAddress = deref(address)
	o.Description = deref(description)
	o.TechnicianNotes = deref(techNotes)
	o.AssignedTechnician = deref(technician)
	return &o, nil
}
