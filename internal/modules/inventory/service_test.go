package inventory

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aalshehri/wms-backend/internal/modules/policy"
	"github.com/aalshehri/wms-backend/internal/modules/session"
	"github.com/sirupsen/logrus"
)

// mockRepo mirrors the postgres clamp-and-log semantics in memory.
type mockRepo struct {
	items map[string]*Item // "name|location"
	logs  []mockLog
}

type mockLog struct {
	actionType string
	location   string
	change     int
	newQty     int
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[string]*Item)}
}

func (m *mockRepo) key(name, location string) string { return name + "|" + location }

func (m *mockRepo) CreateItem(ctx context.Context, item *Item) error {
	k := m.key(item.NameEN, item.Location)
	if _, ok := m.items[k]; ok {
		return ErrDuplicate
	}
	cp := *item
	m.items[k] = &cp
	return nil
}

func (m *mockRepo) GetItem(ctx context.Context, nameEN, location string) (*Item, error) {
	item, ok := m.items[m.key(nameEN, location)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *mockRepo) ListByLocation(ctx context.Context, location string) ([]*Item, error) {
	var out []*Item
	for _, item := range m.items {
		if item.Location == location {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) AdjustQuantity(ctx context.Context, p AdjustParams) (*Item, error) {
	item, ok := m.items[m.key(p.NameEN, p.Location)]
	if !ok {
		return nil, ErrNotFound
	}
	newQty := item.Quantity + p.Delta
	if newQty < 0 {
		newQty = 0
	}
	item.Quantity = newQty
	m.logs = append(m.logs, mockLog{actionType: p.Description, location: p.Location, change: p.Delta, newQty: newQty})
	cp := *item
	return &cp, nil
}

func (m *mockRepo) Transfer(ctx context.Context, p TransferParams) error {
	src, ok := m.items[m.key(p.NameEN, p.From)]
	if !ok {
		return ErrNotFound
	}
	if src.Quantity < p.Qty {
		return ErrInsufficientStock
	}
	src.Quantity -= p.Qty
	m.logs = append(m.logs, mockLog{actionType: "Transfer Out to " + p.To, location: p.From, change: -p.Qty, newQty: src.Quantity})
	dst, ok := m.items[m.key(p.NameEN, p.To)]
	if !ok {
		dst = &Item{NameEN: p.NameEN, Category: src.Category, Unit: src.Unit, Location: p.To, Status: StatusAvailable}
		m.items[m.key(p.NameEN, p.To)] = dst
	}
	dst.Quantity += p.Qty
	m.logs = append(m.logs, mockLog{actionType: "Transfer In from " + p.From, location: p.To, change: p.Qty, newQty: dst.Quantity})
	return nil
}

var (
	manager     = session.Session{Username: "mo", FullName: "Mohammed Al-Harbi", Role: policy.RoleManager}
	storekeeper = session.Session{Username: "fahad", FullName: "Fahad Al-Otaibi", Role: policy.RoleStorekeeper}
	supervisor  = session.Session{Username: "sara", FullName: "Sara Al-Qahtani", Role: policy.RoleSupervisor, Region: "O.R"}
)

func testLogger() *logrus.Logger {
	logg := logrus.New()
	logg.SetOutput(io.Discard)
	return logg
}

func seeded(name string, qty int) (*mockRepo, Service) {
	repo := newMockRepo()
	repo.items[name+"|NTCC"] = &Item{
		NameEN: name, Category: "Safety", Unit: UnitPiece,
		Location: policy.LocationNTCC, Quantity: qty, Status: StatusAvailable,
	}
	return repo, NewService(repo, testLogger())
}

func TestCreateItem_ManagerOnly(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testLogger())
	req := CreateItemRequest{NameEN: "Gloves", Category: "Safety", Unit: UnitPiece, Location: policy.LocationNTCC, InitialQty: 10}

	for _, sess := range []session.Session{supervisor, storekeeper} {
		if _, err := svc.CreateItem(context.Background(), sess, req); !errors.Is(err, ErrNotPermitted) {
			t.Errorf("%s: expected ErrNotPermitted, got %v", sess.Role, err)
		}
	}

	item, err := svc.CreateItem(context.Background(), manager, req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.Status != StatusAvailable || item.Quantity != 10 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestCreateItem_Duplicate(t *testing.T) {
	_, svc := seeded("Gloves", 5)

	_, err := svc.CreateItem(context.Background(), manager, CreateItemRequest{
		NameEN: "Gloves", Category: "Safety", Unit: UnitPiece, Location: policy.LocationNTCC,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateItem_RejectsBadFields(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testLogger())

	bad := []CreateItemRequest{
		{NameEN: "", Category: "Safety", Unit: UnitPiece, Location: policy.LocationNTCC},
		{NameEN: "X", Category: "Nope", Unit: UnitPiece, Location: policy.LocationNTCC},
		{NameEN: "X", Category: "Safety", Unit: "Bag", Location: policy.LocationNTCC},
		{NameEN: "X", Category: "Safety", Unit: UnitPiece, Location: "WAREHOUSE9"},
		{NameEN: "X", Category: "Safety", Unit: UnitPiece, Location: policy.LocationNTCC, InitialQty: -1},
	}
	for i, req := range bad {
		if _, err := svc.CreateItem(context.Background(), manager, req); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestAdjust_ClampsAtZero(t *testing.T) {
	repo, svc := seeded("Gloves", 3)

	item, err := svc.Adjust(context.Background(), storekeeper, AdjustRequest{
		NameEN: "Gloves", Location: policy.LocationNTCC, Delta: -10, Description: "Stock-take correction",
	})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if item.Quantity != 0 {
		t.Errorf("expected clamped qty 0, got %d", item.Quantity)
	}
	if len(repo.logs) != 1 {
		t.Fatalf("expected one log entry, got %d", len(repo.logs))
	}
	if repo.logs[0].change != -10 || repo.logs[0].newQty != 0 {
		t.Errorf("unexpected log entry: %+v", repo.logs[0])
	}
}

func TestAdjust_SupervisorDenied(t *testing.T) {
	_, svc := seeded("Gloves", 3)

	_, err := svc.Adjust(context.Background(), supervisor, AdjustRequest{
		NameEN: "Gloves", Location: policy.LocationNTCC, Delta: 1, Description: "found one",
	})
	if !errors.Is(err, ErrNotPermitted) {
		t.Errorf("expected ErrNotPermitted, got %v", err)
	}
}

func TestAdjust_RequiresDescription(t *testing.T) {
	_, svc := seeded("Gloves", 3)

	_, err := svc.Adjust(context.Background(), manager, AdjustRequest{
		NameEN: "Gloves", Location: policy.LocationNTCC, Delta: 5,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestTransfer_MovesStockAndLogsBothSides(t *testing.T) {
	repo, svc := seeded("Gloves", 40)

	err := svc.Transfer(context.Background(), manager, TransferRequest{
		NameEN: "Gloves", From: policy.LocationNTCC, To: policy.LocationSNC, Qty: 15,
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if got := repo.items["Gloves|NTCC"].Quantity; got != 25 {
		t.Errorf("expected NTCC 25, got %d", got)
	}
	if got := repo.items["Gloves|SNC"].Quantity; got != 15 {
		t.Errorf("expected SNC 15, got %d", got)
	}
	if len(repo.logs) != 2 {
		t.Fatalf("expected two log entries, got %d", len(repo.logs))
	}
	if repo.logs[0].change != -15 || repo.logs[1].change != 15 {
		t.Errorf("unexpected log entries: %+v", repo.logs)
	}
}

func TestTransfer_InsufficientStock(t *testing.T) {
	repo, svc := seeded("Gloves", 5)

	err := svc.Transfer(context.Background(), storekeeper, TransferRequest{
		NameEN: "Gloves", From: policy.LocationNTCC, To: policy.LocationSNC, Qty: 10,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if repo.items["Gloves|NTCC"].Quantity != 5 {
		t.Error("source stock must be untouched")
	}
	if len(repo.logs) != 0 {
		t.Error("no log entries may be written")
	}
}

func TestTransfer_SameLocationRejected(t *testing.T) {
	_, svc := seeded("Gloves", 5)

	err := svc.Transfer(context.Background(), manager, TransferRequest{
		NameEN: "Gloves", From: policy.LocationNTCC, To: policy.LocationNTCC, Qty: 1,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestListLocation_SupervisorCannotSeeSNC(t *testing.T) {
	_, svc := seeded("Gloves", 5)

	if _, err := svc.ListLocation(context.Background(), supervisor, policy.LocationSNC); !errors.Is(err, ErrNotPermitted) {
		t.Errorf("expected ErrNotPermitted, got %v", err)
	}
	if _, err := svc.ListLocation(context.Background(), supervisor, policy.LocationNTCC); err != nil {
		t.Errorf("supervisor must see NTCC: %v", err)
	}
}
