//go:build integration || !unit

package integration

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	server "drivent_booking/internal/adapters/http_server"
	redisad "drivent_booking/internal/adapters/redis"
	"drivent_booking/internal/app"
	mysqlrepo "drivent_booking/internal/storage/mysql"
)

const testSecret = "e2e-secret"

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}

	ents, err := os.ReadDir(dir)
	require.NoError(t, err, "read migrations dir")
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	require.NotEmpty(t, files)
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		require.NoError(t, err)
		_, err = db.Exec(string(sqlBytes))
		require.NoError(t, err, "exec %s", f)
	}
}

func startStack(t *testing.T) (*sql.DB, *httptest.Server) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=drivent"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/drivent?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	require.NoError(t, pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}))
	t.Cleanup(func() { _ = db.Close() })
	applyMigrations(t, db)

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	repo := mysqlrepo.New(db)

	srv := server.New(rate.Limit(1000), 1000)
	srv.MountHandlers(&server.Handlers{
		Q: app.NewQueryService(repo, cache, time.Minute),
		B: app.NewBookingService(repo),
	}, server.Authenticate(testSecret, repo))

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return db, ts
}

// seedAttendee creates a user with a live session and, when paid is
// true, an enrollment + PAID hotel-inclusive ticket. Returns the user id
// and a working bearer token.
func seedAttendee(t *testing.T, db *sql.DB, email string, paid bool) (int64, string) {
	t.Helper()
	res, err := db.Exec(`INSERT INTO users (email, password) VALUES (?, 'x')`, email)
	require.NoError(t, err)
	userID, _ := res.LastInsertId()

	res, err = db.Exec(`INSERT INTO enrollments (user_id, name, address) VALUES (?, 'Test', '1 Test St')`, userID)
	require.NoError(t, err)
	enrollmentID, _ := res.LastInsertId()

	res, err = db.Exec(`INSERT INTO ticket_types (name, price, is_remote, includes_hotel) VALUES ('Full', 60000, FALSE, TRUE)`)
	require.NoError(t, err)
	typeID, _ := res.LastInsertId()

	status := "PAID"
	if !paid {
		status = "RESERVED"
	}
	_, err = db.Exec(`INSERT INTO tickets (enrollment_id, ticket_type_id, status) VALUES (?, ?, ?)`, enrollmentID, typeID, status)
	require.NoError(t, err)

	token, err := server.SignToken(testSecret, userID, time.Hour)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sessions (user_id, token) VALUES (?, ?)`, userID, token)
	require.NoError(t, err)

	return userID, token
}

func do(t *testing.T, method, url, token, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestHTTP_E2E(t *testing.T) {
	db, ts := startStack(t)

	_, err := db.Exec(`INSERT INTO hotels (name, image) VALUES ('Driven Resort', 'img')`)
	require.NoError(t, err)
	var hotelID int64
	require.NoError(t, db.QueryRow(`SELECT id FROM hotels ORDER BY id DESC LIMIT 1`).Scan(&hotelID))
	res, err := db.Exec(`INSERT INTO rooms (name, capacity, hotel_id) VALUES ('101', 1, ?)`, hotelID)
	require.NoError(t, err)
	roomID, _ := res.LastInsertId()

	_, paidToken := seedAttendee(t, db, "paid@example.com", true)
	_, rivalToken := seedAttendee(t, db, "rival@example.com", true)
	_, unpaidToken := seedAttendee(t, db, "unpaid@example.com", false)

	t.Run("unauthenticated", func(t *testing.T) {
		resp, _ := do(t, http.MethodGet, ts.URL+"/hotels", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("catalog reads are idempotent", func(t *testing.T) {
		resp1, body1 := do(t, http.MethodGet, ts.URL+"/hotels", paidToken, "")
		require.Equal(t, http.StatusOK, resp1.StatusCode)
		resp2, body2 := do(t, http.MethodGet, ts.URL+"/hotels", paidToken, "")
		require.Equal(t, http.StatusOK, resp2.StatusCode)
		assert.Equal(t, body1, body2)

		resp3, roomsBody := do(t, http.MethodGet, fmt.Sprintf("%s/hotels/%d", ts.URL, hotelID), paidToken, "")
		require.Equal(t, http.StatusOK, resp3.StatusCode)
		assert.Contains(t, roomsBody, `"Rooms"`)
	})

	t.Run("unpaid ticket cannot browse or book", func(t *testing.T) {
		resp, _ := do(t, http.MethodGet, ts.URL+"/hotels", unpaidToken, "")
		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

		resp, _ = do(t, http.MethodPost, ts.URL+"/booking", unpaidToken, fmt.Sprintf(`{"roomId":%d}`, roomID))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("booking a capacity-1 room", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, ts.URL+"/booking", paidToken, fmt.Sprintf(`{"roomId":%d}`, roomID))
		require.Equal(t, http.StatusOK, resp.StatusCode, body)

		var out map[string]int64
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		assert.NotZero(t, out["bookingId"])

		// second attendee hits the capacity ceiling
		resp, _ = do(t, http.MethodPost, ts.URL+"/booking", rivalToken, fmt.Sprintf(`{"roomId":%d}`, roomID))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		// the winner can read their booking back
		resp, body = do(t, http.MethodGet, ts.URL+"/booking", paidToken, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"Room"`)

		// the loser has none
		resp, _ = do(t, http.MethodGet, ts.URL+"/booking", rivalToken, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing roomId is 400", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, ts.URL+"/booking", paidToken, `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("reassigning the booking", func(t *testing.T) {
		res, err := db.Exec(`INSERT INTO rooms (name, capacity, hotel_id) VALUES ('102', 2, ?)`, hotelID)
		require.NoError(t, err)
		newRoomID, _ := res.LastInsertId()

		resp, body := do(t, http.MethodGet, ts.URL+"/booking", paidToken, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var current struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &current))

		resp, body = do(t, http.MethodPut, fmt.Sprintf("%s/booking/%d", ts.URL, current.ID), paidToken,
			fmt.Sprintf(`{"roomId":%d}`, newRoomID))
		require.Equal(t, http.StatusOK, resp.StatusCode, body)

		// someone else's booking id in the path is rejected
		resp, _ = do(t, http.MethodPut, fmt.Sprintf("%s/booking/%d", ts.URL, current.ID+100), paidToken,
			fmt.Sprintf(`{"roomId":%d}`, newRoomID))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
