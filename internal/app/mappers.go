package app

import (
	"time"

	"drivent_booking/internal/domain"
)

// Response views. Field names follow the wire contract the mobile and
// web clients already consume ("Rooms" and "Room" are capitalized there).

type HotelView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RoomView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	HotelID   int64     `json:"hotelId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type HotelRoomsView struct {
	HotelView
	Rooms []RoomView `json:"Rooms"`
}

type BookingView struct {
	ID   int64    `json:"id"`
	Room RoomView `json:"Room"`
}

func MapHotel(h domain.Hotel) HotelView {
	return HotelView{ID: h.ID, Name: h.Name, Image: h.Image, CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt}
}

func MapHotels(hs []domain.Hotel) []HotelView {
	out := make([]HotelView, 0, len(hs))
	for _, h := range hs {
		out = append(out, MapHotel(h))
	}
	return out
}

func MapRoom(r domain.Room) RoomView {
	return RoomView{ID: r.ID, Name: r.Name, Capacity: r.Capacity, HotelID: r.HotelID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func MapHotelRooms(hr domain.HotelRooms) HotelRoomsView {
	v := HotelRoomsView{HotelView: MapHotel(hr.Hotel), Rooms: make([]RoomView, 0, len(hr.Rooms))}
	for _, r := range hr.Rooms {
		v.Rooms = append(v.Rooms, MapRoom(r))
	}
	return v
}

func MapBooking(b domain.UserBooking) BookingView {
	return BookingView{ID: b.ID, Room: MapRoom(b.Room)}
}
