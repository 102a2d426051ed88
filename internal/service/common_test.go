package service

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"go-gin-ticket-store/config"
	"go-gin-ticket-store/internal/database"
	"go-gin-ticket-store/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	testDB  *pgxpool.Pool
	testCfg *config.Config
)

func TestMain(m *testing.M) {
	testCfg = config.LoadTestConfig()

	var err error
	testDB, err = database.InitDatabase(&testCfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}

	if err := testDB.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	log.Println("Test database connected successfully")
	log.Println("Running service tests...")

	code := m.Run()

	testDB.Close()
	log.Println("Test database closed")

	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) func() {
	t.Helper()
	ctx := context.Background()

	_, err := testDB.Exec(ctx, "TRUNCATE order_items, orders, tickets, events, users, feature_flags, analytics_events RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return func() {}
}

func getTestDB() *pgxpool.Pool {
	if testDB == nil {
		panic("testDB is not initialized. Make sure TestMain has run.")
	}
	return testDB
}

func createTestUser(t *testing.T, name, email string) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO users (email, password_hash, name, role, attributes)
		VALUES ($1, 'x', $2, 'user', '{}'::jsonb)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query, email, name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

func createTestEvent(t *testing.T, title string, status model.EventStatus) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO events (title, description, event_date, location, status)
		VALUES ($1, 'test event', $2, 'Taipei Arena', $3)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query, title, time.Now().Add(30*24*time.Hour), status).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return id
}

func createTestTicket(t *testing.T, eventID int, ticketType string, price float64, quantity int) int {
	t.Helper()
	return createTestTicketWithStock(t, eventID, ticketType, price, quantity, quantity)
}

func createTestTicketWithStock(t *testing.T, eventID int, ticketType string, price float64, totalQuantity, availableQuantity int) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO tickets (event_id, ticket_type, price, total_quantity, available_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query,
		eventID, ticketType, decimal.NewFromFloat(price), totalQuantity, availableQuantity,
	).Scan(&id)

	if err != nil {
		t.Fatalf("Failed to create test ticket: %v", err)
	}

	return id
}

func createTestOrder(t *testing.T, orderNumber string, userID, eventID, ticketID, quantity int, status model.OrderStatus, expiredAt time.Time) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO orders (order_number, user_id, event_id, ticket_id, quantity, total_amount, status, payment_method, expired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'credit_card', $8)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query,
		orderNumber, userID, eventID, ticketID, quantity,
		decimal.NewFromInt(int64(quantity*1000)), status, expiredAt,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}

	return id
}

func getTicketAvailability(t *testing.T, ticketID int) int {
	t.Helper()
	ctx := context.Background()

	var available int
	err := testDB.QueryRow(ctx, "SELECT available_quantity FROM tickets WHERE id = $1", ticketID).Scan(&available)
	if err != nil {
		t.Fatalf("Failed to read ticket availability: %v", err)
	}

	return available
}
