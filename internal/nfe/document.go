// Package nfe lê o XML de uma Nota Fiscal Eletrônica (modelo 55) no que
// interessa à entrada de estoque: identificação da nota, emitente e linhas
// de produto. Assinatura e demais grupos do layout são ignorados.
package nfe

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidXML indica um arquivo que não é uma NFe reconhecível
var ErrInvalidXML = errors.New("XML de NFe inválido")

// Product é uma linha de produto da nota. Quantidade e valor unitário ficam
// como texto do XML; a conversão acontece linha a linha durante a importação,
// de modo que um valor inválido interrompe a entrada sem desfazer as linhas
// anteriores.
type Product struct {
	Code      string // cProd
	EAN       string // cEAN ("SEM GTIN" quando ausente)
	Name      string // xProd
	NCM       string // NCM
	CFOP      string // CFOP
	Unit      string // uCom
	Quantity  string // qCom
	UnitPrice string // vUnCom
}

// HasEAN informa se a linha carrega um código de barras utilizável
func (p Product) HasEAN() bool {
	return p.EAN != "" && !strings.EqualFold(p.EAN, "SEM GTIN")
}

// Amounts converte qCom e vUnCom, aceitando vírgula como separador decimal
func (p Product) Amounts() (decimal.Decimal, decimal.Decimal, error) {
	qty, err := parseDecimal(p.Quantity)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("quantidade inválida: %w", err)
	}
	price, err := parseDecimal(p.UnitPrice)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("valor unitário inválido: %w", err)
	}
	return qty, price, nil
}

// Document é o recorte da NFe usado na importação
type Document struct {
	Number     string // nNF
	AccessKey  string // chNFe
	IssuerName string // emit/xNome
	Products   []Product
}

// Estruturas de desserialização do layout da NFe. O elemento raiz pode ser
// nfeProc (nota processada) ou NFe (nota avulsa); ambos são aceitos.
type xmlNfeProc struct {
	XMLName xml.Name `xml:"nfeProc"`
	NFe     xmlNFe   `xml:"NFe"`
	ProtNFe struct {
		InfProt struct {
			ChNFe string `xml:"chNFe"`
		} `xml:"infProt"`
	} `xml:"protNFe"`
}

type xmlNFe struct {
	XMLName xml.Name  `xml:"NFe"`
	InfNFe  xmlInfNFe `xml:"infNFe"`
}

type xmlInfNFe struct {
	ID  string `xml:"Id,attr"`
	Ide struct {
		NNF string `xml:"nNF"`
	} `xml:"ide"`
	Emit struct {
		XNome string `xml:"xNome"`
	} `xml:"emit"`
	Det []struct {
		Prod struct {
			CProd  string `xml:"cProd"`
			CEAN   string `xml:"cEAN"`
			XProd  string `xml:"xProd"`
			NCM    string `xml:"NCM"`
			CFOP   string `xml:"CFOP"`
			UCom   string `xml:"uCom"`
			QCom   string `xml:"qCom"`
			VUnCom string `xml:"vUnCom"`
		} `xml:"prod"`
	} `xml:"det"`
}

// Parse interpreta o conteúdo XML de uma NFe
func Parse(data []byte) (*Document, error) {
	var inf xmlInfNFe
	var accessKey string

	var proc xmlNfeProc
	if err := xml.Unmarshal(data, &proc); err == nil && len(proc.NFe.InfNFe.Det) > 0 {
		inf = proc.NFe.InfNFe
		accessKey = proc.ProtNFe.InfProt.ChNFe
	} else {
		var nfe xmlNFe
		if err := xml.Unmarshal(data, &nfe); err != nil || len(nfe.InfNFe.Det) == 0 {
			return nil, ErrInvalidXML
		}
		inf = nfe.InfNFe
	}

	if accessKey == "" {
		// O atributo Id vem como "NFe<chave de 44 dígitos>"
		accessKey = strings.TrimPrefix(inf.ID, "NFe")
	}

	doc := &Document{
		Number:     inf.Ide.NNF,
		AccessKey:  accessKey,
		IssuerName: strings.TrimSpace(inf.Emit.XNome),
	}

	for _, det := range inf.Det {
		doc.Products = append(doc.Products, Product{
			Code:      strings.TrimSpace(det.Prod.CProd),
			EAN:       strings.TrimSpace(det.Prod.CEAN),
			Name:      strings.TrimSpace(det.Prod.XProd),
			NCM:       strings.TrimSpace(det.Prod.NCM),
			CFOP:      strings.TrimSpace(det.Prod.CFOP),
			Unit:      strings.TrimSpace(det.Prod.UCom),
			Quantity:  strings.TrimSpace(det.Prod.QCom),
			UnitPrice: strings.TrimSpace(det.Prod.VUnCom),
		})
	}
	return doc, nil
}

// parseDecimal aceita separador decimal com ponto ou vírgula
func parseDecimal(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	trimmed = strings.ReplaceAll(trimmed, ",", ".")
	return decimal.NewFromString(trimmed)
}
