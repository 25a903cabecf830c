package request

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/aalshehri/wms-backend/internal/modules/policy"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

func getPostgresDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("set DATABASE_URL to run postgres integration tests")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	return db
}

func cleanup(t *testing.T, db *sql.DB, itemName, region string) {
	t.Helper()
	db.Exec(`DELETE FROM stock_logs WHERE item_name=$1`, itemName)
	db.Exec(`DELETE FROM local_inventory WHERE region=$1 AND item_name=$2`, region, itemName)
	db.Exec(`DELETE FROM requests WHERE item_name=$1`, itemName)
	db.Exec(`DELETE FROM inventory WHERE name_en=$1`, itemName)
}

func seedItem(t *testing.T, db *sql.DB, name string, qty int) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO inventory (id, name_en, category, unit, location, qty, status)
		VALUES ($1,$2,'Safety','Piece',$3,$4,'Available')`,
		uuid.New(), name, policy.LocationNTCC, qty)
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

func pendingRequest(name, region string, qty int) *Request {
	return &Request{
		ID: uuid.New(), RequesterName: "Sara Al-Qahtani", Region: region,
		ItemName: name, Category: "Safety", Qty: qty, Unit: "Piece",
		SourceLocation: policy.LocationNTCC, Status: StatusPending,
	}
}

func TestIssue_EndToEnd(t *testing.T) {
	db := getPostgresDB(t)
	defer db.Close()
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	name := "ztest-issue-" + uuid.New().String()[:8]
	region := "ICU 28"
	cleanup(t, db, name, region)
	t.Cleanup(func() { cleanup(t, db, name, region) })

	seedItem(t, db, name, 50)

	req := pendingRequest(name, region, 20)
	if err := repo.CreateRequest(ctx, req); err != nil {
		t.Fatalf("create request: %v", err)
	}
	if err := repo.Approve(ctx, req.ID.String(), 20, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	approved, err := repo.GetByID(ctx, req.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := repo.Issue(ctx, approved, 20, "Fahad Al-Otaibi"); err != nil {
		t.Fatalf("issue: %v", err)
	}

	var centralQty int
	db.QueryRow(`SELECT qty FROM inventory WHERE name_en=$1 AND location=$2`, name, policy.LocationNTCC).Scan(&centralQty)
	if centralQty != 30 {
		t.Errorf("expected central 30, got %d", centralQty)
	}

	var localQty int
	db.QueryRow(`SELECT qty FROM local_inventory WHERE region=$1 AND item_name=$2`, region, name).Scan(&localQty)
	if localQty != 20 {
		t.Errorf("expected local 20, got %d", localQty)
	}

	var change, newQty int
	if err := db.QueryRow(`SELECT change_amount, new_qty FROM stock_logs WHERE item_name=$1`, name).
		Scan(&change, &newQty); err != nil {
		t.Fatalf("log row missing: %v", err)
	}
	if change != -20 || newQty != 30 {
		t.Errorf("expected log (-20, 30), got (%d, %d)", change, newQty)
	}

	final, _ := repo.GetByID(ctx, req.ID.String())
	if final.Status != StatusIssued || final.Qty != 20 {
		t.Errorf("unexpected final request: %+v", final)
	}
}

func TestIssue_InsufficientStockRollsBack(t *testing.T) {
	db := getPostgresDB(t)
	defer db.Close()
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	name := "ztest-short-" + uuid.New().String()[:8]
	region := "O.R"
	cleanup(t, db, name, region)
	t.Cleanup(func() { cleanup(t, db, name, region) })

	seedItem(t, db, name, 5)

	req := pendingRequest(name, region, 10)
	if err := repo.CreateRequest(ctx, req); err != nil {
		t.Fatalf("create request: %v", err)
	}
	if err := repo.Approve(ctx, req.ID.String(), 10, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	approved, _ := repo.GetByID(ctx, req.ID.String())
	if err := repo.Issue(ctx, approved, 10, "Fahad Al-Otaibi"); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var centralQty int
	db.QueryRow(`SELECT qty FROM inventory WHERE name_en=$1`, name).Scan(&centralQty)
	if centralQty != 5 {
		t.Errorf("central stock must be untouched, got %d", centralQty)
	}
	var logCount int
	db.QueryRow(`SELECT COUNT(*) FROM stock_logs WHERE item_name=$1`, name).Scan(&logCount)
	if logCount != 0 {
		t.Errorf("expected no log rows, got %d", logCount)
	}
	var localCount int
	db.QueryRow(`SELECT COUNT(*) FROM local_inventory WHERE item_name=$1`, name).Scan(&localCount)
	if localCount != 0 {
		t.Errorf("expected no local rows, got %d", localCount)
	}

	final, _ := repo.GetByID(ctx, req.ID.String())
	if final.Status != StatusApproved {
		t.Errorf("status must remain Approved, got %s", final.Status)
	}
}

func TestApprove_GuardsOnPending(t *testing.T) {
	db := getPostgresDB(t)
	defer db.Close()
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	name := "ztest-guard-" + uuid.New().String()[:8]
	region := "E.R"
	cleanup(t, db, name, region)
	t.Cleanup(func() { cleanup(t, db, name, region) })

	req := pendingRequest(name, region, 4)
	if err := repo.CreateRequest(ctx, req); err != nil {
		t.Fatalf("create request: %v", err)
	}
	if err := repo.Reject(ctx, req.ID.String(), "not needed"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// A second decision must hit the status guard.
	if err := repo.Approve(ctx, req.ID.String(), 4, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}
