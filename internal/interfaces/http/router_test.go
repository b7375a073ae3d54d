package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/auth"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/application/ports"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/backend"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Backoffice-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Backoffice-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeBackend implementa solo lo que usan los tests; el resto queda en la interfaz embebida (nil).
type fakeBackend struct {
	apphttp.Backend

	mu           sync.Mutex
	company      entity.Company
	lastUpdate   backend.UpdateCompanyRequest
	pos          []entity.PointOfSale
	posErr       error
	transfers    []entity.Transfer
	transferErr  error
	lastTransfer backend.CreateTransferRequest
	lastQuery    ports.TransferQuery
}

func (f *fakeBackend) CompanyInfo(context.Context, string) (*entity.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.company
	return &c, nil
}

func (f *fakeBackend) UpdateCompany(_ context.Context, _ string, in backend.UpdateCompanyRequest) (*backend.UpdateCompanyResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdate = in
	return &backend.UpdateCompanyResponse{Message: "ok", Company: entity.Company{
		ID: f.company.ID, Name: in.CompanyName, Address: in.CompanyAddress, Industry: in.Industry,
	}}, nil
}

func (f *fakeBackend) ListPOS(context.Context, string) ([]entity.PointOfSale, error) {
	if f.posErr != nil {
		return nil, f.posErr
	}
	return f.pos, nil
}

func (f *fakeBackend) CreatePOS(_ context.Context, _ string, in backend.CreatePOSRequest) (*entity.PointOfSale, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &entity.PointOfSale{ID: "pos-new", Name: in.Name, Location: in.Location}, nil
}

func (f *fakeBackend) CreateTransfer(_ context.Context, _ string, in backend.CreateTransferRequest) (*entity.Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTransfer = in
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if f.transferErr != nil {
		return nil, f.transferErr
	}
	return &entity.Transfer{ID: "tr-1", CompanyID: in.CompanyID, PointOfSaleID: in.PointOfSaleID}, nil
}

func (f *fakeBackend) ListTransfers(_ context.Context, _ string, q ports.TransferQuery) (*entity.TransferPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	return &entity.TransferPage{Data: f.transfers}, nil
}

func (f *fakeBackend) ListSales(context.Context, string, int, int) (*entity.SalePage, error) {
	return &entity.SalePage{}, nil
}

type fakeAuthenticator struct {
	result *ports.LoginResult
	err    error
	valid  bool
}

func (f *fakeAuthenticator) Login(context.Context, ports.Credentials) (*ports.LoginResult, error) {
	return f.result, f.err
}

func (f *fakeAuthenticator) Verify(context.Context, string) bool { return f.valid }

type recorded struct {
	method, path string
	status       int
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []recorded
}

func (r *fakeRecorder) RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, recorded{method: method, path: path, status: status})
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app     *fiber.App
	backend *fakeBackend
	auth    *fakeAuthenticator
	rec     *fakeRecorder
}

func newTestEnv(t *testing.T, opts ...inventory.LedgerOption) *testEnv {
	t.Helper()
	store := memory.NewStore()
	ledger := inventory.NewLedgerUseCase(memory.NewTxRunner(store), store.Items(), store.Movements(), nil, opts...)
	env := &testEnv{
		backend: &fakeBackend{company: entity.Company{ID: testCompanyID, Name: "Kiosque Awa", Address: "Dakar Plateau", Industry: "Commerce"}},
		auth:    &fakeAuthenticator{valid: true},
		rec:     &fakeRecorder{},
	}
	env.app = fiber.New()
	env.app.Use(apphttp.RequestMiddleware(nil, env.rec))
	apphttp.Router(env.app, apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(env.auth, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil),
		Backend:          env.backend,
		Reports:          analytics.NewReportUseCase(env.backend, nil, 10, 5),
		ReportPDF:        infrapdf.NewMarotoReportGenerator(),
		Ledger:           ledger,
		ActivityReportUC: usecase.NewActivityReportUseCase(store.Reports()),
		JWTSecret:        testJWTSecret,
		ServiceName:      "backoffice-api-test",
	})
	return env
}

func (e *testEnv) call(t *testing.T, method, path, auth string, body any) (int, []byte, http.Header) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out, resp.Header
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := env.call(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestLogin_EmiteSesionUsableEnMe(t *testing.T) {
	env := newTestEnv(t)
	env.auth.result = &ports.LoginResult{
		Message: "Connexion réussie",
		Token:   "backend-token-1",
		Company: entity.Company{ID: testCompanyID, Name: "Kiosque Awa"},
	}

	status, body, _ := env.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: " awa@kiosque.sn ", Password: "secret"})
	require.Equal(t, http.StatusOK, status, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, entity.RoleAdmin, login.User.Role)
	assert.Equal(t, testCompanyID, login.User.CompanyID)

	status, body, _ = env.call(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var me dto.SessionUser
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, testCompanyID, me.ID)

	env.auth.valid = false
	status, _, _ = env.call(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLogin_Validacion(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := env.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	e := decodeError(t, body)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, []any{"L'email est requis", "Le mot de passe est requis"}, e.Errors)
}

func TestLogin_CredencialesRechazadasPorBackend(t *testing.T) {
	env := newTestEnv(t)
	env.auth.err = &backend.APIError{Status: http.StatusUnauthorized, Op: "auth.login", Message: "Identifiants incorrects"}
	status, body, _ := env.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "a@b.sn", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
	e := decodeError(t, body)
	assert.Equal(t, "UNAUTHORIZED", e.Code)
	assert.Equal(t, "Identifiants incorrects", e.Message)
}

func TestRutaProtegida_SinToken(t *testing.T) {
	env := newTestEnv(t)
	status, _, _ := env.call(t, http.MethodGet, "/api/pos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPOS_CommercialNoPuedeCrear(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := env.call(t, http.MethodPost, "/api/pos", tokenForRole(t, "commercial"),
		backend.CreatePOSRequest{Name: "Boutique Yoff", Location: "Route de Yoff"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", decodeError(t, body).Code)
}

func TestPOS_CrearValidaLocalmente(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := env.call(t, http.MethodPost, "/api/pos", tokenForRole(t, "manager"),
		backend.CreatePOSRequest{Name: "B", Location: "Yof"})
	assert.Equal(t, http.StatusBadRequest, status)
	e := decodeError(t, body)
	assert.Len(t, e.Errors, 2)

	status, _, _ = env.call(t, http.MethodPost, "/api/pos", tokenForRole(t, "manager"),
		backend.CreatePOSRequest{Name: "Boutique Yoff", Location: "Route de Yoff"})
	assert.Equal(t, http.StatusCreated, status)
}

func TestPOS_BackendCaido_502(t *testing.T) {
	env := newTestEnv(t)
	env.backend.posErr = &backend.UnavailableError{
		Op: "pos.list", Message: "Erreur lors de la récupération des points de vente", Err: errors.New("dial tcp: connection refused"),
	}
	status, body, _ := env.call(t, http.MethodGet, "/api/pos", tokenForRole(t, "admin"), nil)
	assert.Equal(t, http.StatusBadGateway, status)
	e := decodeError(t, body)
	assert.Equal(t, "BACKEND_UNAVAILABLE", e.Code)
	assert.Equal(t, "Erreur lors de la récupération des points de vente", e.Message)
	assert.NotContains(t, string(body), "dial tcp")
}

func TestPOS_ListaCuentaUsuariosActivos(t *testing.T) {
	env := newTestEnv(t)
	env.backend.pos = []entity.PointOfSale{{
		ID: "pos-1", Name: "Boutique Yoff",
		Users: []entity.User{{ID: "u1", IsActive: true}, {ID: "u2"}},
	}}
	status, body, _ := env.call(t, http.MethodGet, "/api/pos", tokenForRole(t, "commercial"), nil)
	require.Equal(t, http.StatusOK, status)
	var out struct {
		Count int `json:"count"`
		Data  []struct {
			ID          string `json:"id"`
			ActiveUsers int    `json:"activeUsers"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, 1, out.Data[0].ActiveUsers)
}

func TestCompanyUpdate_ConservaCamposVacios(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := env.call(t, http.MethodPut, "/api/company", tokenForRole(t, "admin"),
		map[string]string{"industry": "Distribution"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, backend.UpdateCompanyRequest{
		CompanyName:    "Kiosque Awa",
		CompanyAddress: "Dakar Plateau",
		Industry:       "Distribution",
	}, env.backend.lastUpdate)

	status, _, _ = env.call(t, http.MethodPut, "/api/company", tokenForRole(t, "manager"),
		map[string]string{"industry": "Distribution"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestTransferCreate_StockInsuficienteConDetalle(t *testing.T) {
	env := newTestEnv(t)
	env.backend.transferErr = &backend.APIError{
		Status:  http.StatusBadRequest,
		Op:      "transfers.create",
		Message: "Stock insuffisant",
		Details: []backend.StockShortage{{ProductID: "p1", ProductName: "Savon", Requested: 10, Available: 4}},
	}
	req := backend.CreateTransferRequest{
		PointOfSaleID: "pos-1",
		Items:         []backend.CreateTransferItemRequest{{ProductID: "p1", Quantity: 10}},
	}
	status, body, _ := env.call(t, http.MethodPost, "/api/transfers", tokenForRole(t, "manager"), req)
	assert.Equal(t, http.StatusBadRequest, status)
	e := decodeError(t, body)
	assert.Equal(t, "Stock insuffisant - Savon: demandé 10, disponible 4", e.Message)
	assert.NotNil(t, e.Details)

	assert.Equal(t, testCompanyID, env.backend.lastTransfer.CompanyID)
	assert.Equal(t, testUserID, env.backend.lastTransfer.UserID)
}

func TestTransferCreate_ValidacionLocal(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := env.call(t, http.MethodPost, "/api/transfers", tokenForRole(t, "admin"),
		backend.CreateTransferRequest{})
	assert.Equal(t, http.StatusBadRequest, status)
	e := decodeError(t, body)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, []any{
		"Le point de vente de destination est requis",
		"Au moins un article est requis pour le transfert",
	}, e.Errors)
}

func TestTransferList_FiltrosYFechas(t *testing.T) {
	env := newTestEnv(t)
	status, _, _ := env.call(t, http.MethodGet,
		"/api/transfers?page=2&limit=5&pointOfSaleId=pos-1&startDate=2026-01-01&endDate=2026-01-31",
		tokenForRole(t, "admin"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, ports.TransferQuery{
		Page: 2, Limit: 5, CompanyID: testCompanyID, PointOfSaleID: "pos-1",
		StartDate: "2026-01-01", EndDate: "2026-01-31",
	}, env.backend.lastQuery)

	status, body, _ := env.call(t, http.MethodGet, "/api/transfers?startDate=01/02/2026", tokenForRole(t, "admin"), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)

	status, _, _ = env.call(t, http.MethodGet, "/api/transfers?startDate=2026-02-01&endDate=2026-01-01", tokenForRole(t, "admin"), nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestReportTransfers_JSONYPDF(t *testing.T) {
	env := newTestEnv(t)
	env.backend.transfers = []entity.Transfer{{
		ID:           "t1",
		TransferDate: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		Items: []entity.TransferItem{{
			ProductID: "p1", Quantity: 3,
			Product: &entity.ProductRef{ID: "p1", Name: "Savon"},
		}},
	}}

	status, body, _ := env.call(t, http.MethodGet, "/api/reports/transfers?period=week", tokenForRole(t, "commercial"), nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var report analytics.TransferReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, analytics.PeriodWeek, report.Period)
	assert.Equal(t, 1, report.Summary.TotalTransfers)

	status, body, hdr := env.call(t, http.MethodGet, "/api/reports/transfers/pdf?period=week", tokenForRole(t, "commercial"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", hdr.Get("Content-Type"))
	assert.Contains(t, hdr.Get("Content-Disposition"), "rapport-transferts-week-")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestReportPerformance_SoloManagers(t *testing.T) {
	env := newTestEnv(t)
	status, _, _ := env.call(t, http.MethodGet, "/api/reports/performance?period=semaine", tokenForRole(t, "commercial"), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _, _ = env.call(t, http.MethodGet, "/api/reports/performance?period=semaine", tokenForRole(t, "manager"), nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestLedger_AltaVentaYMovimientos(t *testing.T) {
	env := newTestEnv(t)
	manager := tokenForRole(t, "manager")
	commercial := tokenForRole(t, "commercial")

	status, body, _ := env.call(t, http.MethodPost, "/api/ledger/items", commercial,
		map[string]any{"id": "savon", "nom": "Savon", "categorie": "physique", "prix": 500, "quantite": 3, "seuilReappro": 5})
	assert.Equal(t, http.StatusForbidden, status, string(body))

	status, body, _ = env.call(t, http.MethodPost, "/api/ledger/items", manager,
		map[string]any{"id": "savon", "nom": "Savon", "categorie": "physique", "prix": 500, "quantite": 3, "seuilReappro": 5})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body, _ = env.call(t, http.MethodPost, "/api/ledger/items", manager,
		map[string]any{"id": "savon", "nom": "Savon", "categorie": "physique", "prix": 500, "quantite": 3})
	assert.Equal(t, http.StatusConflict, status, string(body))

	// Sobreventa permitida por defecto: saldo negativo y movimiento marcado.
	status, body, _ = env.call(t, http.MethodPost, "/api/ledger/items/savon/sale", commercial, dto.MovementRequest{Quantity: 5})
	require.Equal(t, http.StatusOK, status, string(body))
	var res struct {
		Item struct {
			Quantity json.RawMessage `json:"quantite"`
		} `json:"article"`
		Movement struct {
			Kind     string `json:"type"`
			Delta    int64  `json:"quantite"`
			Actor    string `json:"utilisateur"`
			Oversold bool   `json:"survente"`
		} `json:"mouvement"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "-2", string(res.Item.Quantity))
	assert.Equal(t, entity.MovementSale, res.Movement.Kind)
	assert.True(t, res.Movement.Oversold)
	assert.Equal(t, "Awa Diop", res.Movement.Actor)

	status, _, _ = env.call(t, http.MethodPost, "/api/ledger/items/savon/sale", commercial, dto.MovementRequest{Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body, _ = env.call(t, http.MethodGet, "/api/ledger/movements?produitId=savon", commercial, nil)
	require.Equal(t, http.StatusOK, status)
	var movements struct {
		Data []entity.StockMovement `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &movements))
	assert.Len(t, movements.Data, 1)

	status, body, _ = env.call(t, http.MethodGet, "/api/ledger/health", commercial, nil)
	require.Equal(t, http.StatusOK, status)
	var h inventory.Health
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, 1, h.OutOfStock)
}

func TestLedger_PoliticaRejectDevuelve409(t *testing.T) {
	env := newTestEnv(t, inventory.WithOversellPolicy(inventory.OversellReject))
	manager := tokenForRole(t, "manager")

	status, _, _ := env.call(t, http.MethodPost, "/api/ledger/items", manager,
		map[string]any{"id": "riz", "nom": "Riz 5kg", "categorie": "physique", "prix": 3500, "quantite": 2})
	require.Equal(t, http.StatusCreated, status)

	status, body, _ := env.call(t, http.MethodPost, "/api/ledger/items/riz/sale", manager, dto.MovementRequest{Quantity: 3})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, body).Code)

	status, body, _ = env.call(t, http.MethodGet, "/api/ledger/items/riz", manager, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"quantite":2`)
}

func TestLedger_ArticuloDesconocido404YMetricaConPatron(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := env.call(t, http.MethodPost, "/api/ledger/items/nope/sale", tokenForRole(t, "admin"), dto.MovementRequest{Quantity: 1})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Code)

	env.rec.mu.Lock()
	defer env.rec.mu.Unlock()
	require.NotEmpty(t, env.rec.seen)
	last := env.rec.seen[len(env.rec.seen)-1]
	assert.Equal(t, recorded{method: http.MethodPost, path: "/api/ledger/items/:id/sale", status: http.StatusNotFound}, last)
}

func TestLedger_AjusteIlimitadoRelativo409(t *testing.T) {
	env := newTestEnv(t)
	manager := tokenForRole(t, "manager")
	status, _, _ := env.call(t, http.MethodPost, "/api/ledger/items", manager,
		map[string]any{"id": "credit", "nom": "Crédit téléphonique", "categorie": "numérique", "prix": 1000, "quantite": "Disponible"})
	require.Equal(t, http.StatusCreated, status)

	status, body, _ := env.call(t, http.MethodPost, "/api/ledger/items/credit/adjust", manager, dto.AdjustmentRequest{Delta: -1})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "UNTRACKED_STOCK", decodeError(t, body).Code)

	setTo := int64(40)
	status, body, _ = env.call(t, http.MethodPost, "/api/ledger/items/credit/adjust", manager, dto.AdjustmentRequest{SetTo: &setTo})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"quantite":40`)
}

func TestActivityReport_UsaNombreDeSesion(t *testing.T) {
	env := newTestEnv(t)
	commercial := tokenForRole(t, "commercial")
	status, body, _ := env.call(t, http.MethodPost, "/api/activity-reports", commercial,
		map[string]any{"dateRapport": "2026-10-01", "produitsVendus": 3, "chiffreAffaires": 15000})
	require.Equal(t, http.StatusCreated, status, string(body))
	var out dto.ActivityReportResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Awa Diop", out.Commercial)

	status, body, _ = env.call(t, http.MethodGet, "/api/activity-reports?limit=10", commercial, nil)
	require.Equal(t, http.StatusOK, status)
	var list dto.ActivityReportListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Items, 1)
}
