package main

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	server "drivent_booking/internal/adapters/http_server"
	"drivent_booking/internal/adapters/observability"
	"drivent_booking/internal/shared"
)

// Demo catalog: a handful of hotels, each with rooms of mixed capacity.
var hotels = []struct {
	name  string
	image string
	rooms int
}{
	{"Driven Resort", "https://images.example.com/driven-resort.jpg", 12},
	{"Driven Palace", "https://images.example.com/driven-palace.jpg", 8},
	{"Driven World", "https://images.example.com/driven-world.jpg", 16},
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("hotels", len(hotels)).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	sem := semaphore.NewWeighted(4)
	var wg sync.WaitGroup

	for i, h := range hotels {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(i int, name, image string, rooms int) {
			defer wg.Done()
			defer sem.Release(1)
			if err := seedHotel(ctx, db, i, name, image, rooms); err != nil {
				log.Warn().Str("hotel", name).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str("hotel", name).Int("rooms", rooms).Msg("seed ok")
		}(i, h.name, h.image, h.rooms)
	}
	wg.Wait()

	token, err := seedAttendee(ctx, db, cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("seed attendee failed")
	}

	log.Info().Str("token", token).Msg("seeding completed; demo attendee token above")
}

func seedHotel(ctx context.Context, db *sql.DB, idx int, name, image string, rooms int) error {
	res, err := db.ExecContext(ctx, `INSERT INTO hotels (name, image) VALUES (?, ?)`, name, image)
	if err != nil {
		return err
	}
	hotelID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for n := 1; n <= rooms; n++ {
		// floors of singles, doubles and triples
		capacity := 1 + n%3
		roomName := fmt.Sprintf("%d%02d", idx+1, n)
		if _, err := db.ExecContext(ctx,
			`INSERT INTO rooms (name, capacity, hotel_id) VALUES (?, ?, ?)`,
			roomName, capacity, hotelID,
		); err != nil {
			return err
		}
	}
	return nil
}

// seedAttendee creates one user with an enrollment and a paid,
// hotel-inclusive ticket, plus a live session so the returned token
// works against the API immediately.
func seedAttendee(ctx context.Context, db *sql.DB, secret string) (string, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO users (email, password) VALUES (?, ?)`,
		fmt.Sprintf("attendee+%d@example.com", time.Now().Unix()), "not-a-real-hash")
	if err != nil {
		return "", err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return "", err
	}

	res, err = db.ExecContext(ctx,
		`INSERT INTO enrollments (user_id, name, address) VALUES (?, ?, ?)`,
		userID, "Demo Attendee", "1 Demo Street")
	if err != nil {
		return "", err
	}
	enrollmentID, err := res.LastInsertId()
	if err != nil {
		return "", err
	}

	res, err = db.ExecContext(ctx,
		`INSERT INTO ticket_types (name, price, is_remote, includes_hotel) VALUES (?, ?, FALSE, TRUE)`,
		"Presential + Hotel", 60000)
	if err != nil {
		return "", err
	}
	typeID, err := res.LastInsertId()
	if err != nil {
		return "", err
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO tickets (enrollment_id, ticket_type_id, status) VALUES (?, ?, 'PAID')`,
		enrollmentID, typeID); err != nil {
		return "", err
	}

	token, err := server.SignToken(secret, userID, 7*24*time.Hour)
	if err != nil {
		return "", err
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, token) VALUES (?, ?)`, userID, token); err != nil {
		return "", err
	}
	return token, nil
}
