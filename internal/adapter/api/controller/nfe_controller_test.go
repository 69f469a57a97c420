package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/domain/catalog"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

const importNfeXML = `<?xml version="1.0" encoding="UTF-8"?>
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
        <cProd>NOVO-01</cProd>
        <cEAN>SEM GTIN</cEAN>
        <xProd>Fonte 12V 2A</xProd>
        <uCom>UN</uCom>
        <qCom>4</qCom>
        <vUnCom>20,00</vUnCom>
      </prod>
    </det>
  </infNFe>
</NFe>`

func uploadNfe(t *testing.T, r http.Handler, xml string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "nota.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(xml))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/nfe-import/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)
	return w
}

func TestNfeUploadUpdatesAndCreates(t *testing.T) {
	existing := newCatalogItem(t, "Cabo HDMI", 5)
	existing.QrCode = "7891234567895"

	catalogRepo := newFakeCatalogRepo(existing)
	movementRepo := &fakeMovementRepo{}
	audit := service.NewAuditService(&fakeAuditRepo{}, logger.NewLogger())
	ctrl := NewNfeController(catalogRepo, movementRepo, audit, logger.NewLogger())

	r := testRouter()
	r.POST("/nfe-import/upload", ctrl.Upload)

	w := uploadNfe(t, r, importNfeXML)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.NfeImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "123", resp.NfeNumber)
	assert.Equal(t, "Distribuidora Alfa LTDA", resp.Issuer)
	assert.Equal(t, 2, resp.TotalItems)
	assert.Equal(t, 1, resp.ItemsUpdated)
	assert.Equal(t, 1, resp.ItemsImported)
	require.Len(t, resp.Items, 2)

	// Item casado pelo EAN: entrada de estoque e custo da última nota
	assert.Equal(t, "updated", resp.Items[0].Status)
	assert.Equal(t, "5", resp.Items[0].OldStock.String())
	assert.Equal(t, "15", resp.Items[0].NewStock.String())
	assert.Equal(t, "15", existing.StockQuantity.String())
	require.True(t, existing.CostPrice.Valid)
	assert.Equal(t, "12.5", existing.CostPrice.Decimal.String())
	assert.Equal(t, "85444200", existing.NCM)
	assert.Equal(t, "5102", existing.CFOP)

	// Item desconhecido é criado com margem sobre o custo
	assert.Equal(t, "created", resp.Items[1].Status)
	var created *catalog.Item
	for _, item := range catalogRepo.items {
		if item.Name == "Fonte 12V 2A" {
			created = item
		}
	}
	require.NotNil(t, created)
	assert.Equal(t, "NOVO-01", created.SKU)
	assert.Empty(t, created.QrCode)
	assert.Equal(t, "4", created.StockQuantity.String())
	assert.Equal(t, "20", created.CostPrice.Decimal.String())
	assert.Equal(t, "26", created.UnitPrice.String())

	// Uma movimentação de entrada por linha da nota
	require.Len(t, movementRepo.movements, 2)
	assert.Equal(t, catalog.MovementIn, movementRepo.movements[0].Type)
	assert.Contains(t, movementRepo.movements[0].Reason, "Entrada via NFe 123")
	assert.Contains(t, movementRepo.movements[1].Reason, "Entrada inicial via NFe 123")
}

func TestNfeUploadKeepsLinesBeforeFailure(t *testing.T) {
	existing := newCatalogItem(t, "Cabo HDMI", 5)
	existing.QrCode = "7891234567895"

	catalogRepo := newFakeCatalogRepo(existing)
	movementRepo := &fakeMovementRepo{}
	ctrl := NewNfeController(catalogRepo, movementRepo, service.NewAuditService(&fakeAuditRepo{}, logger.NewLogger()), logger.NewLogger())

	r := testRouter()
	r.POST("/nfe-import/upload", ctrl.Upload)

	// Quantidade ilegível na segunda linha interrompe a importação sem
	// desfazer a entrada já aplicada pela primeira
	quebrada := `<?xml version="1.0" encoding="UTF-8"?>
<NFe>
  <infNFe Id="NFe35240112345678000190550010000001231000001234" versao="4.00">
    <ide><nNF>123</nNF></ide>
    <emit><xNome>Distribuidora Alfa LTDA</xNome></emit>
    <det nItem="1">
      <prod>
        <cProd>P-001</cProd>
        <cEAN>7891234567895</cEAN>
        <xProd>Cabo HDMI 2m</xProd>
        <uCom>UN</uCom>
        <qCom>10</qCom>
        <vUnCom>12,50</vUnCom>
      </prod>
    </det>
    <det nItem="2">
      <prod>
        <cProd>NOVO-01</cProd>
        <cEAN>SEM GTIN</cEAN>
        <xProd>Fonte 12V 2A</xProd>
        <uCom>UN</uCom>
        <qCom>quatro</qCom>
        <vUnCom>20,00</vUnCom>
      </prod>
    </det>
  </infNFe>
</NFe>`

	w := uploadNfe(t, r, quebrada)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Primeira linha permanece aplicada
	assert.Equal(t, "15", catalogRepo.items[existing.ID].StockQuantity.String())
	require.Len(t, movementRepo.movements, 1)
	assert.Contains(t, movementRepo.movements[0].Reason, "Entrada via NFe 123")

	// A linha defeituosa não criou item novo
	for _, item := range catalogRepo.items {
		assert.NotEqual(t, "NOVO-01", item.SKU)
	}
}

func TestNfeUploadRejectsInvalidXML(t *testing.T) {
	ctrl := NewNfeController(newFakeCatalogRepo(), &fakeMovementRepo{}, service.NewAuditService(&fakeAuditRepo{}, logger.NewLogger()), logger.NewLogger())

	r := testRouter()
	r.POST("/nfe-import/upload", ctrl.Upload)

	w := uploadNfe(t, r, "<recibo/>")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNfeUploadRequiresFile(t *testing.T) {
	ctrl := NewNfeController(newFakeCatalogRepo(), &fakeMovementRepo{}, service.NewAuditService(&fakeAuditRepo{}, logger.NewLogger()), logger.NewLogger())

	r := testRouter()
	r.POST("/nfe-import/upload", ctrl.Upload)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/nfe-import/upload", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
