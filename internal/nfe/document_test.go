package nfe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nfeProcXML = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc versao="4.00">
  <NFe>
    <infNFe Id="NFe35240112345678000190550010000001231000001234" versao="4.00">
      <ide>
        <nNF>123</nNF>
      </ide>
      <emit>
        <xNome>Distribuidora Alfa LTDA</xNome>
      </emit>
      <det nItem="1">
        <prod>
          <cProd>P-001</cProd>
          <cEAN>7891234567895</cEAN>
          <xProd>Cabo HDMI 2m</xProd>
          <NCM>85444200</NCM>
          <CFOP>5102</CFOP>
          <uCom>UN</uCom>
          <qCom>10,0000</qCom>
          <vUnCom>12,5000</vUnCom>
        </prod>
      </det>
      <det nItem="2">
        <prod>
          <cProd>P-002</cProd>
          <cEAN>SEM GTIN</cEAN>
          <xProd>Parafuso avulso</xProd>
          <uCom>UN</uCom>
          <qCom>100.0000</qCom>
          <vUnCom>0.1500</vUnCom>
        </prod>
      </det>
    </infNFe>
  </NFe>
  <protNFe>
    <infProt>
      <chNFe>35240112345678000190550010000001231000001234</chNFe>
    </infProt>
  </protNFe>
</nfeProc>`

const standaloneNFeXML = `<?xml version="1.0" encoding="UTF-8"?>
<NFe>
  <infNFe Id="NFe35240198765432000121550010000009871000009876" versao="4.00">
    <ide>
      <nNF>987</nNF>
    </ide>
    <emit>
      <xNome>Comercial Beta ME</xNome>
    </emit>
    <det nItem="1">
      <prod>
        <cProd>X-10</cProd>
        <cEAN>7899876543210</cEAN>
        <xProd>Fonte 12V</xProd>
        <uCom>UN</uCom>
        <qCom>5</qCom>
        <vUnCom>35,90</vUnCom>
      </prod>
    </det>
  </infNFe>
</NFe>`

func TestParseNfeProc(t *testing.T) {
	doc, err := Parse([]byte(nfeProcXML))
	require.NoError(t, err)

	assert.Equal(t, "123", doc.Number)
	assert.Equal(t, "35240112345678000190550010000001231000001234", doc.AccessKey)
	assert.Equal(t, "Distribuidora Alfa LTDA", doc.IssuerName)
	require.Len(t, doc.Products, 2)

	first := doc.Products[0]
	assert.Equal(t, "P-001", first.Code)
	assert.Equal(t, "7891234567895", first.EAN)
	assert.True(t, first.HasEAN())
	assert.Equal(t, "85444200", first.NCM)
	assert.Equal(t, "5102", first.CFOP)

	qty, price, err := first.Amounts()
	require.NoError(t, err)
	assert.Equal(t, "10", qty.String())
	assert.Equal(t, "12.5", price.String())

	// "SEM GTIN" não conta como código de barras
	second := doc.Products[1]
	assert.False(t, second.HasEAN())
	_, price, err = second.Amounts()
	require.NoError(t, err)
	assert.Equal(t, "0.15", price.String())
}

func TestAmountsInvalidQuantity(t *testing.T) {
	p := Product{Quantity: "dez", UnitPrice: "1,00"}
	_, _, err := p.Amounts()
	assert.Error(t, err)

	p = Product{Quantity: "2", UnitPrice: "abc"}
	_, _, err = p.Amounts()
	assert.Error(t, err)
}

func TestParseStandaloneNFe(t *testing.T) {
	doc, err := Parse([]byte(standaloneNFeXML))
	require.NoError(t, err)

	assert.Equal(t, "987", doc.Number)

	// Sem protocolo, a chave vem do atributo Id
	assert.Equal(t, "35240198765432000121550010000009871000009876", doc.AccessKey)
	assert.Equal(t, "Comercial Beta ME", doc.IssuerName)
	require.Len(t, doc.Products, 1)

	_, price, err := doc.Products[0].Amounts()
	require.NoError(t, err)
	assert.Equal(t, "35.9", price.String())
}

func TestParseInvalidXML(t *testing.T) {
	_, err := Parse([]byte("isso não é XML"))
	assert.ErrorIs(t, err, ErrInvalidXML)

	_, err = Parse([]byte("<recibo><valor>10</valor></recibo>"))
	assert.ErrorIs(t, err, ErrInvalidXML)
}

func TestParseDecimalSeparators(t *testing.T) {
	// Milhar com ponto e decimal com vírgula não é suportado pelo layout
	_, err := parseDecimal("1.234,56")
	assert.Error(t, err)

	v, err := parseDecimal("1234,56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", v.String())

	v, err = parseDecimal("")
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}
