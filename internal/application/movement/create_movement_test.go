package movement

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/domain"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/digitalstock/digital-stock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.Code] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.Code]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.products[p.Code] = &cp
	return nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	p, ok := r.products[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindActiveByCode(_ context.Context, code string) (*entity.Product, error) {
	p, ok := r.products[code]
	if !ok || !p.Active {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(context.Context, string, repository.ProductPatch) (bool, error) {
	return false, nil
}

func (r *fakeProductRepo) AdjustQuantity(_ context.Context, code string, delta int64) error {
	p, ok := r.products[code]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Quantity += delta
	return nil
}

func (r *fakeProductRepo) Count(context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) snapshot() map[string]entity.Product {
	snap := map[string]entity.Product{}
	for code, p := range r.products {
		snap[code] = *p
	}
	return snap
}

func (r *fakeProductRepo) restore(snap map[string]entity.Product) {
	r.products = map[string]*entity.Product{}
	for code, p := range snap {
		cp := p
		r.products[code] = &cp
	}
}

type fakeMovementRepo struct {
	nextID  int64
	headers []*entity.Movement
	details []*entity.MovementDetail
}

func (r *fakeMovementRepo) CreateHeader(_ context.Context, m *entity.Movement) error {
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.headers = append(r.headers, &cp)
	return nil
}

func (r *fakeMovementRepo) CreateDetail(_ context.Context, d *entity.MovementDetail) error {
	cp := *d
	r.details = append(r.details, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, direction string, id int64) (*entity.Movement, error) {
	for _, m := range r.headers {
		if m.Direction == direction && m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListDetails(_ context.Context, movementID int64) ([]*entity.MovementDetail, error) {
	out := []*entity.MovementDetail{}
	for _, d := range r.details {
		if d.MovementID == movementID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) List(_ context.Context, direction string, _ repository.MovementFilter) ([]*entity.Movement, error) {
	out := []*entity.Movement{}
	for _, m := range r.headers {
		if m.Direction == direction {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) Count(_ context.Context, direction string) (int64, error) {
	var n int64
	for _, m := range r.headers {
		if m.Direction == direction {
			n++
		}
	}
	return n, nil
}

type fakePartyRepo struct {
	parties map[string]*entity.Party
}

func newFakePartyRepo(parties ...*entity.Party) *fakePartyRepo {
	r := &fakePartyRepo{parties: map[string]*entity.Party{}}
	for _, p := range parties {
		cp := *p
		r.parties[p.ID] = &cp
	}
	return r
}

func (r *fakePartyRepo) Create(_ context.Context, p *entity.Party) error {
	cp := *p
	r.parties[p.ID] = &cp
	return nil
}

func (r *fakePartyRepo) FindByID(_ context.Context, id string) (*entity.Party, error) {
	p, ok := r.parties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePartyRepo) List(context.Context, string, *bool) ([]*entity.Party, error) {
	return nil, nil
}

func (r *fakePartyRepo) Update(context.Context, string, repository.PartyPatch) (bool, error) {
	return false, nil
}

func (r *fakePartyRepo) Count(context.Context) (int64, error) {
	return int64(len(r.parties)), nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditEntry
	fail    bool
}

func (r *fakeAuditRepo) Append(_ context.Context, e *entity.AuditEntry) error {
	if r.fail {
		return errors.New("bitácora caída")
	}
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeAuditRepo) List(context.Context, repository.AuditFilter) ([]*entity.AuditEntry, error) {
	return r.entries, nil
}

func (r *fakeAuditRepo) Actions(context.Context) ([]string, error) {
	return nil, nil
}

type recordingNotifier struct {
	dispatched []*ReceiptData
}

func (n *recordingNotifier) Dispatch(data *ReceiptData) {
	n.dispatched = append(n.dispatched, data)
}

// fakeTxRunner imita la semántica transaccional: si fn devuelve error, el
// estado de productos y movimientos vuelve al punto de partida. El mutex
// serializa transacciones concurrentes, igual que lo haría el bloqueo de fila
// del UPDATE condicional en la base de datos.
type fakeTxRunner struct {
	mu        sync.Mutex
	products  *fakeProductRepo
	movements *fakeMovementRepo
	clients   *fakePartyRepo
	providers *fakePartyRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.PartyRepository,
	providerRepo repository.PartyRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	productSnap := r.products.snapshot()
	headersLen := len(r.movements.headers)
	detailsLen := len(r.movements.details)
	nextID := r.movements.nextID

	if err := fn(r.movements, r.products, r.clients, r.providers); err != nil {
		r.products.restore(productSnap)
		r.movements.headers = r.movements.headers[:headersLen]
		r.movements.details = r.movements.details[:detailsLen]
		r.movements.nextID = nextID
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arranque común
// ──────────────────────────────────────────────────────────────────────────────

type engineFixture struct {
	uc        *CreateMovementUseCase
	products  *fakeProductRepo
	movements *fakeMovementRepo
	clients   *fakePartyRepo
	providers *fakePartyRepo
	audit     *fakeAuditRepo
	notifier  *recordingNotifier
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newEngineFixture(products ...*entity.Product) *engineFixture {
	f := &engineFixture{
		products:  newFakeProductRepo(products...),
		movements: &fakeMovementRepo{},
		clients: newFakePartyRepo(&entity.Party{
			ID: "V-123", Name: "María Pérez", Email: "maria@example.com", Phone: "0414-5551234", Active: true,
		}),
		providers: newFakePartyRepo(&entity.Party{
			ID: "J-900", Name: "Distribuidora Centro", Email: "ventas@centro.example", Active: true,
		}),
		audit:    &fakeAuditRepo{},
		notifier: &recordingNotifier{},
	}
	runner := &fakeTxRunner{
		products:  f.products,
		movements: f.movements,
		clients:   f.clients,
		providers: f.providers,
	}
	f.uc = NewCreateMovementUseCase(
		runner, f.movements, f.clients, f.providers, f.audit, f.notifier, logger.Nop(),
	)
	return f
}

var testActor = Actor{Cedula: "12345678", Name: "Ana Gómez"}

func defaultProduct() *entity.Product {
	return &entity.Product{
		Code:     "100001",
		Name:     "Harina de Maíz 1kg",
		Price:    price("10"),
		TaxRate:  price("16"),
		Min:      2,
		Max:      50,
		Quantity: 5,
		Active:   true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_VentaExitosa(t *testing.T) {
	f := newEngineFixture(defaultProduct())

	resp, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 3}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// Totales: 3 × 10 = 30.00 de subtotal, 16% de IVA = 4.80, total 34.80
	assert.Equal(t, "30.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "4.80", resp.Tax.StringFixed(2))
	assert.Equal(t, "34.80", resp.Amount.StringFixed(2))
	assert.Equal(t, entity.DirectionSale, resp.Direction)
	assert.Equal(t, int64(1), resp.ID, "el consecutivo lo asigna la persistencia")

	// Stock descontado
	p, _ := f.products.GetByCode(context.Background(), "100001")
	assert.Equal(t, int64(2), p.Quantity)

	// Cabecera + detalle persistidos
	require.Len(t, f.movements.headers, 1)
	require.Len(t, f.movements.details, 1)
	detail := f.movements.details[0]
	assert.Equal(t, int64(1), detail.MovementID)
	assert.Equal(t, "Harina de Maíz 1kg", detail.ProductName, "el nombre es snapshot")
	assert.Equal(t, "12345678", f.movements.headers[0].CreatedBy)

	// Tercero resuelto en la respuesta
	require.NotNil(t, resp.Counterparty)
	assert.Equal(t, "María Pérez", resp.Counterparty.Name)

	// Bitácora y comprobante post-commit
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "Registró una salida", f.audit.entries[0].Action)
	require.Len(t, f.notifier.dispatched, 1)
	assert.Equal(t, int64(1), f.notifier.dispatched[0].ID)
	require.NotNil(t, f.notifier.dispatched[0].Party)
	assert.Equal(t, "maria@example.com", f.notifier.dispatched[0].Party.Email)
}

func TestCreate_VentaSinStockSuficiente(t *testing.T) {
	product := defaultProduct()
	product.Quantity = 2
	f := newEngineFixture(product)

	_, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 3}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "100001", stockErr.Code)
	assert.Equal(t, int64(2), stockErr.Available, "el error reporta la cantidad disponible")

	// Nada persistido, stock intacto
	assert.Empty(t, f.movements.headers)
	assert.Empty(t, f.movements.details)
	p, _ := f.products.GetByCode(context.Background(), "100001")
	assert.Equal(t, int64(2), p.Quantity)
	assert.Empty(t, f.audit.entries)
	assert.Empty(t, f.notifier.dispatched)
}

func TestCreate_VentaAtomicaConLineaInvalida(t *testing.T) {
	inactive := &entity.Product{Code: "100002", Name: "Aceite 1L", Price: price("8"), Quantity: 10, Active: false}
	f := newEngineFixture(defaultProduct(), inactive)

	// La primera línea es válida; la segunda referencia un producto inactivo.
	// Ningún efecto debe quedar.
	_, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines: []dto.MovementLineRequest{
			{ProductCode: "100001", Quantity: 1},
			{ProductCode: "100002", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "100002", notFound.Code)

	p, _ := f.products.GetByCode(context.Background(), "100001")
	assert.Equal(t, int64(5), p.Quantity, "la línea válida también se revierte")
	assert.Empty(t, f.movements.headers)
}

func TestCreate_VentaQueDejaStockBajoMinimo_NoBloquea(t *testing.T) {
	// Quedar bajo el mínimo solo advierte; la venta procede.
	product := defaultProduct() // Min=2
	product.Quantity = 3
	f := newEngineFixture(product)

	resp, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	p, _ := f.products.GetByCode(context.Background(), "100001")
	assert.Equal(t, int64(1), p.Quantity)
}

func TestCreate_TerceroInexistenteNoBloquea(t *testing.T) {
	f := newEngineFixture(defaultProduct())

	resp, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-999", // no está en el directorio
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Counterparty, "sin tercero, la respuesta lo omite")
	require.Len(t, f.movements.headers, 1)
	assert.Equal(t, "V-999", f.movements.headers[0].CounterpartyID)

	// El despacho igual ocurre; el notifier decide que sin email no hay envío.
	require.Len(t, f.notifier.dispatched, 1)
	assert.Nil(t, f.notifier.dispatched[0].Party)
}

func TestCreate_RedondeoSobreAgregados(t *testing.T) {
	// Dos líneas de 10.333: por línea redondeado daría 10.33 + 10.33 = 20.66;
	// sobre el agregado: 20.666 → 20.67.
	product := &entity.Product{
		Code: "200001", Name: "Tornillo", Price: price("10.333"), TaxRate: price("0"),
		Quantity: 10, Active: true,
	}
	f := newEngineFixture(product)

	resp, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines:          []dto.MovementLineRequest{{ProductCode: "200001", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "20.67", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", resp.Tax.StringFixed(2))
	assert.Equal(t, "20.67", resp.Amount.StringFixed(2))
}

func TestCreate_LineasRepetidasDelMismoProducto(t *testing.T) {
	// El mismo código puede venir en varias líneas; cada una se persiste como
	// una fila propia y el stock se descuenta por la suma.
	f := newEngineFixture(defaultProduct()) // Quantity=5

	resp, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines: []dto.MovementLineRequest{
			{ProductCode: "100001", Quantity: 2},
			{ProductCode: "100001", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "40.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "6.40", resp.Tax.StringFixed(2))
	assert.Equal(t, "46.40", resp.Amount.StringFixed(2))

	require.Len(t, f.movements.details, 2)
	assert.Equal(t, 1, f.movements.details[0].LineNo)
	assert.Equal(t, 2, f.movements.details[1].LineNo)
	assert.Equal(t, f.movements.details[0].ProductCode, f.movements.details[1].ProductCode)

	p, _ := f.products.GetByCode(context.Background(), "100001")
	assert.Equal(t, int64(1), p.Quantity)
}

func TestCreate_LineasRepetidasQueAgotanStock(t *testing.T) {
	// Dos líneas de 3 con stock 5: cada una pasa la verificación individual,
	// pero el ajuste condicional detiene la segunda y todo se revierte.
	f := newEngineFixture(defaultProduct())

	_, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines: []dto.MovementLineRequest{
			{ProductCode: "100001", Quantity: 3},
			{ProductCode: "100001", Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, f.movements.headers)
	assert.Empty(t, f.movements.details)
	p, _ := f.products.GetByCode(context.Background(), "100001")
	assert.Equal(t, int64(5), p.Quantity)
}

func TestCreate_VentasConcurrentesNoSobregiranStock(t *testing.T) {
	// Dos ventas simultáneas de 3 unidades con stock 5: exactamente una
	// confirma y la otra recibe stock insuficiente. El stock jamás queda
	// negativo.
	f := newEngineFixture(defaultProduct())

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
				CounterpartyID: "V-123",
				Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 3}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var confirmed, rejected int
	for err := range errs {
		if err == nil {
			confirmed++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		rejected++
	}
	assert.Equal(t, 1, confirmed, "exactamente una venta confirma")
	assert.Equal(t, 1, rejected, "la otra es rechazada")

	p, _ := f.products.GetByCode(context.Background(), "100001")
	assert.Equal(t, int64(2), p.Quantity)
	assert.GreaterOrEqual(t, p.Quantity, int64(0))
	require.Len(t, f.movements.headers, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CompraSumaStock(t *testing.T) {
	product := defaultProduct()
	product.Quantity = 0
	f := newEngineFixture(product)

	resp, err := f.uc.Create(context.Background(), testActor, entity.DirectionPurchase, dto.CreateMovementRequest{
		CounterpartyID: "J-900",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionPurchase, resp.Direction)

	p, _ := f.products.GetByCode(context.Background(), "100001")
	assert.Equal(t, int64(10), p.Quantity)

	require.NotNil(t, resp.Counterparty)
	assert.Equal(t, "Distribuidora Centro", resp.Counterparty.Name)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "Registró una entrada", f.audit.entries[0].Action)
}

func TestCreate_CompraIgnoraStockMaximo(t *testing.T) {
	// El máximo es informativo: una compra puede dejar la existencia por encima.
	product := defaultProduct() // Max=50
	product.Quantity = 49
	f := newEngineFixture(product)

	_, err := f.uc.Create(context.Background(), testActor, entity.DirectionPurchase, dto.CreateMovementRequest{
		CounterpartyID: "J-900",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 100}},
	})
	require.NoError(t, err)

	p, _ := f.products.GetByCode(context.Background(), "100001")
	assert.Equal(t, int64(149), p.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ValidacionDeEntrada(t *testing.T) {
	cases := []struct {
		name      string
		direction string
		in        dto.CreateMovementRequest
		wantMsg   string
	}{
		{
			name:      "venta sin cliente",
			direction: entity.DirectionSale,
			in:        dto.CreateMovementRequest{Lines: []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 1}}},
			wantMsg:   "el cliente es requerido",
		},
		{
			name:      "compra sin proveedor",
			direction: entity.DirectionPurchase,
			in:        dto.CreateMovementRequest{Lines: []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 1}}},
			wantMsg:   "el proveedor es requerido",
		},
		{
			name:      "sin líneas",
			direction: entity.DirectionSale,
			in:        dto.CreateMovementRequest{CounterpartyID: "V-123"},
			wantMsg:   "debe incluir al menos un producto",
		},
		{
			name:      "cantidad cero",
			direction: entity.DirectionSale,
			in: dto.CreateMovementRequest{
				CounterpartyID: "V-123",
				Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 0}},
			},
			wantMsg: "la cantidad debe ser un entero positivo",
		},
		{
			name:      "cantidad negativa",
			direction: entity.DirectionSale,
			in: dto.CreateMovementRequest{
				CounterpartyID: "V-123",
				Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: -2}},
			},
			wantMsg: "la cantidad debe ser un entero positivo",
		},
		{
			name:      "dirección desconocida",
			direction: "TRANSFER",
			in: dto.CreateMovementRequest{
				CounterpartyID: "V-123",
				Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 1}},
			},
			wantMsg: "dirección de movimiento desconocida",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newEngineFixture(defaultProduct())
			_, err := f.uc.Create(context.Background(), testActor, tc.direction, tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.wantMsg)
			assert.Empty(t, f.movements.headers, "una entrada inválida no deja efectos")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Efectos post-commit
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_FalloDeBitacoraNoAfectaElMovimiento(t *testing.T) {
	f := newEngineFixture(defaultProduct())
	f.audit.fail = true

	resp, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 1}},
	})
	require.NoError(t, err, "el movimiento ya está confirmado; la bitácora es mejor esfuerzo")
	assert.Equal(t, int64(1), resp.ID)
	require.Len(t, f.notifier.dispatched, 1)
}

func TestCreate_ActorAnonimoNoVaABitacora(t *testing.T) {
	f := newEngineFixture(defaultProduct())

	_, err := f.uc.Create(context.Background(), Actor{}, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Empty(t, f.audit.entries)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_RecomputaTotalesDeSnapshots(t *testing.T) {
	f := newEngineFixture(defaultProduct())

	created, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 3}},
	})
	require.NoError(t, err)

	// Editar el producto después no cambia el documento histórico.
	f.products.products["100001"].Price = price("99")

	got, err := f.uc.Get(context.Background(), entity.DirectionSale, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "30.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "4.80", got.Tax.StringFixed(2))
	assert.Equal(t, "34.80", got.Amount.StringFixed(2))
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "10", got.Lines[0].UnitPrice.String())
}

func TestGet_DireccionEquivocadaEsNotFound(t *testing.T) {
	f := newEngineFixture(defaultProduct())

	created, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
		CounterpartyID: "V-123",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 1}},
	})
	require.NoError(t, err)

	// El mismo consecutivo consultado como compra no existe.
	_, err = f.uc.Get(context.Background(), entity.DirectionPurchase, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListYCount_PorDireccion(t *testing.T) {
	f := newEngineFixture(defaultProduct())

	for i := 0; i < 2; i++ {
		_, err := f.uc.Create(context.Background(), testActor, entity.DirectionSale, dto.CreateMovementRequest{
			CounterpartyID: "V-123",
			Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 1}},
		})
		require.NoError(t, err)
	}
	_, err := f.uc.Create(context.Background(), testActor, entity.DirectionPurchase, dto.CreateMovementRequest{
		CounterpartyID: "J-900",
		Lines:          []dto.MovementLineRequest{{ProductCode: "100001", Quantity: 5}},
	})
	require.NoError(t, err)

	sales, err := f.uc.List(context.Background(), entity.DirectionSale, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, sales.Count)

	purchases, err := f.uc.Count(context.Background(), entity.DirectionPurchase)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purchases)
}
