package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/domain/quote"
	"github.com/gestaofacil/backend/internal/domain/sale"
	"github.com/gestaofacil/backend/internal/domain/serviceorder"
	"github.com/gestaofacil/backend/internal/domain/sysconfig"
)

// PDFService gera os documentos em PDF de vendas, orçamentos e ordens de
// serviço. O cabeçalho usa os dados da empresa da configuração do dono.
type PDFService struct{}

// NewPDFService cria uma nova instância de PDFService
func NewPDFService() *PDFService {
	return &PDFService{}
}

// QuotePDF gera o PDF de um orçamento
func (s *PDFService) QuotePDF(q *quote.Quote, cfg *sysconfig.Config) ([]byte, error) {
	pdf := newDocument(cfg, "Orçamento")

	pdf.SetFont("Helvetica", "", 10)
	writeField(pdf, "Cliente", q.CustomerName)
	writeField(pdf, "Data de emissão", formatDate(q.IssueDate))
	if !q.ValidUntil.IsZero() {
		writeField(pdf, "Válido até", formatDate(q.ValidUntil))
	}
	writeField(pdf, "Status", string(q.Status))
	pdf.Ln(4)

	writeItemsHeader(pdf)
	for _, item := range q.Items {
		writeItemRow(pdf, item.Description, item.Quantity, item.UnitPrice, item.Total)
	}
	pdf.Ln(4)

	writeTotal(pdf, "Total", q.Total)
	if q.Notes != "" {
		pdf.Ln(4)
		writeField(pdf, "Observações", q.Notes)
	}
	return output(pdf)
}

// SalePDF gera o PDF de uma venda
func (s *PDFService) SalePDF(v *sale.Sale, cfg *sysconfig.Config) ([]byte, error) {
	pdf := newDocument(cfg, "Venda")

	pdf.SetFont("Helvetica", "", 10)
	if v.CustomerName != "" {
		writeField(pdf, "Cliente", v.CustomerName)
	}
	writeField(pdf, "Data", formatDate(v.SaleDate))
	writeField(pdf, "Status", string(v.Status))
	if v.PaymentMethod != "" {
		writeField(pdf, "Forma de pagamento", string(v.PaymentMethod))
	}
	pdf.Ln(4)

	writeItemsHeader(pdf)
	for _, item := range v.Items {
		writeItemRow(pdf, item.Description, item.Quantity, item.UnitPrice, item.Total)
	}
	pdf.Ln(4)

	writeTotal(pdf, "Subtotal", v.Subtotal)
	if v.Discount.Valid && !v.Discount.Decimal.IsZero() {
		writeTotal(pdf, "Desconto", v.Discount.Decimal.Neg())
	}
	if v.Shipping.Valid && !v.Shipping.Decimal.IsZero() {
		writeTotal(pdf, "Frete", v.Shipping.Decimal)
	}
	if v.Tax.Valid && !v.Tax.Decimal.IsZero() {
		writeTotal(pdf, "Impostos", v.Tax.Decimal)
	}
	writeTotal(pdf, "Total", v.Total)

	if v.Notes != "" {
		pdf.Ln(4)
		writeField(pdf, "Observações", v.Notes)
	}
	return output(pdf)
}

// ServiceOrderPDF gera o PDF de uma ordem de serviço
func (s *PDFService) ServiceOrderPDF(o *serviceorder.ServiceOrder, cfg *sysconfig.Config) ([]byte, error) {
	pdf := newDocument(cfg, "Ordem de Serviço")

	pdf.SetFont("Helvetica", "", 10)
	writeField(pdf, "Cliente", o.CustomerName)
	if o.CustomerPhone != "" {
		writeField(pdf, "Telefone", o.CustomerPhone)
	}
	if o.CustomerAddress != "" {
		writeField(pdf, "Endereço", o.CustomerAddress)
	}
	writeField(pdf, "Status", o.Status.Label())
	writeField(pdf, "Início", formatDate(o.StartDate))
	if o.EstimatedEndDate != nil {
		writeField(pdf, "Previsão de término", formatDate(*o.EstimatedEndDate))
	}
	if o.CompletedDate != nil {
		writeField(pdf, "Concluída em", formatDate(*o.CompletedDate))
	}
	if o.AssignedTechnician != "" {
		writeField(pdf, "Técnico", o.AssignedTechnician)
	}
	if o.Description != "" {
		writeField(pdf, "Descrição", o.Description)
	}
	pdf.Ln(4)

	if len(o.Items) > 0 {
		writeItemsHeader(pdf)
		for _, item := range o.Items {
			label := item.ItemName
			if label == "" {
				label = item.Description
			}
			writeItemRow(pdf, label, item.Quantity, item.UnitPrice, item.Total)
		}
		pdf.Ln(4)
	}

	writeTotal(pdf, "Mão de obra", o.LaborCost)
	writeTotal(pdf, "Peças", o.PartsCost)
	writeTotal(pdf, "Total", o.Total)
	return output(pdf)
}

func newDocument(cfg *sysconfig.Config, title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	company := ""
	if cfg != nil {
		company = cfg.CompanyName
		if company == "" {
			company = cfg.SystemName
		}
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if company != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr(company), "", 1, "C", false, 0, "")
		if cfg.CNPJ != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(0, 5, tr("CNPJ: "+cfg.CNPJ), "", 1, "C", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "C", false, 0, "")
	pdf.Ln(4)
	return pdf
}

func writeField(pdf *gofpdf.Fpdf, label, value string) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 6, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, tr(value), "", "L", false)
}

func writeItemsHeader(pdf *gofpdf.Fpdf) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(90, 6, tr("Descrição"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, tr("Qtd."), "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, tr("Valor unit."), "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, tr("Total"), "B", 1, "R", false, 0, "")
}

func writeItemRow(pdf *gofpdf.Fpdf, description string, qty, unitPrice, total decimal.Decimal) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(90, 6, tr(description), "", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, formatQuantity(qty), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, tr(FormatBRL(unitPrice)), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, tr(FormatBRL(total)), "", 1, "R", false, 0, "")
}

func writeTotal(pdf *gofpdf.Fpdf, label string, value decimal.Decimal) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(150, 6, tr(label), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, tr(FormatBRL(value)), "", 1, "R", false, 0, "")
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatBRL formata um valor monetário no padrão brasileiro: R$ 1.234,56
func FormatBRL(value decimal.Decimal) string {
	negative := value.IsNegative()
	fixed := value.Abs().StringFixed(2)

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	result := "R$ " + strings.Join(grouped, ".") + "," + fracPart
	if negative {
		result = "-" + result
	}
	return result
}

func formatQuantity(value decimal.Decimal) string {
	return strings.ReplaceAll(value.StringFixed(2), ".", ",")
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
