package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/sysconfig"
)

// ErrConfigNotFound indica que o dono ainda não possui configuração gravada
var ErrConfigNotFound = errors.New("configuração não encontrada")

// SystemConfigRepository implementa a interface sysconfig.Repository
type SystemConfigRepository struct {
	db *pgxpool.Pool
}

// NewSystemConfigRepository cria uma nova instância de SystemConfigRepository
func NewSystemConfigRepository(db *pgxpool.Pool) sysconfig.Repository {
	return &SystemConfigRepository{db: db}
}

const configColumns = `id, owner_id, company_name, cnpj, ie, im, address, number,
	complement, district, city, state, zip_code, phone, email, website,
	logo_base64, printer_name, paper_width, paper_height, auto_print, copies,
	system_name, default_currency, date_format, time_format, nfe_enabled,
	nfe_api_url, nfe_api_token, nfe_series, nfe_last_number, nfe_environment,
	created_at, updated_at`

// FindByOwner implementa sysconfig.Repository.FindByOwner
func (r *SystemConfigRepository) FindByOwner(ctx context.Context, ownerID string) (*sysconfig.Config, error) {
	var c sysconfig.Config
	var companyName, cnpj, ie, im, address, number, complement *string
	var district, city, state, zipCode, phone, email, website, logo *string
	var printerName, systemName, currency, dateFormat, timeFormat *string
	var nfeApiURL, nfeApiToken, nfeSeries, nfeEnvironment *string
	var paperWidth, paperHeight, copies *int
	var autoPrint, nfeEnabled *bool
	var nfeLastNumber *int64

	err := r.db.QueryRow(ctx,
		`SELECT `+configColumns+` FROM system_config WHERE owner_id = $1`, ownerID).Scan(
		&c.ID, &c.OwnerID, &companyName, &cnpj, &ie, &im, &address, &number,
		&complement, &district, &city, &state, &zipCode, &phone, &email,
		&website, &logo, &printerName, &paperWidth, &paperHeight, &autoPrint,
		&copies, &systemName, &currency, &dateFormat, &timeFormat, &nfeEnabled,
		&nfeApiURL, &nfeApiToken, &nfeSeries, &nfeLastNumber, &nfeEnvironment,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("erro ao buscar configuração: %w", err)
	}

	c.CompanyName = deref(companyName)
	c.CNPJ = deref(cnpj)
	c.IE = deref(ie)
	c.IM = deref(im)
	c.Address = deref(address)
	c.Number = deref(number)
	c.Complement = deref(complement)
	c.District = deref(district)
	c.City = deref(city)
	c.State = deref(state)
	c.ZipCode = deref(zipCode)
	c.Phone = deref(phone)
	c.Email = deref(email)
	c.Website = deref(website)
	c.LogoBase64 = deref(logo)
	c.PrinterName = deref(printerName)
	c.SystemName = deref(systemName)
	c.DefaultCurrency = deref(currency)
	c.DateFormat = deref(dateFormat)
	c.TimeFormat = deref(timeFormat)
	c.NfeApiURL = deref(nfeApiURL)
	c.NfeApiToken = deref(nfeApiToken)
	c.NfeSeries = deref(nfeSeries)
	c.NfeEnvironment = deref(nfeEnvironment)
	if paperWidth != nil {
		c.PaperWidth = *paperWidth
	}
	if paperHeight != nil {
		c.PaperHeight = *paperHeight
	}
	if copies != nil {
		c.Copies = *copies
	}
	if autoPrint != nil {
		c.AutoPrint = *autoPrint
	}
	if nfeEnabled != nil {
		c.NfeEnabled = *nfeEnabled
	}
	if nfeLastNumber != nil {
		c.NfeLastNumber = *nfeLastNumber
	}
	return &c, nil
}

// Save implementa sysconfig.Repository.Save com upsert pela chave do dono
func (r *SystemConfigRepository) Save(ctx context.Context, c *sysconfig.Config) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO system_config (`+configColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27,
			$28, $29, $30, $31, $32, $33, $34)
		ON CONFLICT (owner_id) DO UPDATE SET
			company_name = EXCLUDED.company_name, cnpj = EXCLUDED.cnpj,
			ie = EXCLUDED.ie, im = EXCLUDED.im, address = EXCLUDED.address,
			number = EXCLUDED.number, complement = EXCLUDED.complement,
			district = EXCLUDED.district, city = EXCLUDED.city,
			state = EXCLUDED.state, zip_code = EXCLUDED.zip_code,
			phone = EXCLUDED.phone, email = EXCLUDED.email,
			website = EXCLUDED.website, logo_base64 = EXCLUDED.logo_base64,
			printer_name = EXCLUDED.printer_name,
			paper_width = EXCLUDED.paper_width,
			paper_height = EXCLUDED.paper_height,
			auto_print = EXCLUDED.auto_print, copies = EXCLUDED.copies,
			system_name = EXCLUDED.system_name,
			default_currency = EXCLUDED.default_currency,
			date_format = EXCLUDED.date_format,
			time_format = EXCLUDED.time_format,
			nfe_enabled = EXCLUDED.nfe_enabled,
			nfe_api_url = EXCLUDED.nfe_api_url,
			nfe_api_token = EXCLUDED.nfe_api_token,
			nfe_series = EXCLUDED.nfe_series,
			nfe_last_number = EXCLUDED.nfe_last_number,
			nfe_environment = EXCLUDED.nfe_environment,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.OwnerID, nullable(c.CompanyName), nullable(c.CNPJ),
		nullable(c.IE), nullable(c.IM), nullable(c.Address), nullable(c.Number),
		nullable(c.Complement), nullable(c.District), nullable(c.City),
		nullable(c.State), nullable(c.ZipCode), nullable(c.Phone),
		nullable(c.Email), nullable(c.Website), nullable(c.LogoBase64),
		nullable(c.PrinterName), c.PaperWidth, c.PaperHeight, c.AutoPrint,
		c.Copies, nullable(c.SystemName), nullable(c.DefaultCurrency),
		nullable(c.DateFormat), nullable(c.TimeFormat), c.NfeEnabled,
		nullable(c.NfeApiURL), nullable(c.NfeApiToken), nullable(c.NfeSeries),
		c.NfeLastNumber, nullable(c.NfeEnvironment), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao salvar configuração: %w", err)
	}
	return nil
}
