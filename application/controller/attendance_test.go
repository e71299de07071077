package controller

import (
	"testing"

	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
)

func markContext(body dto.MarkAttendanceDTO, keys map[string]any) *interfaces.ApplicationContext[dto.MarkAttendanceDTO] {
	return &interfaces.ApplicationContext[dto.MarkAttendanceDTO]{
		Keys: keys,
		Body: &body,
	}
}

func TestMarkInputPrefersClientLocation(t *testing.T) {
	body := dto.MarkAttendanceDTO{
		FaceImage: "img",
		Location:  &dto.LocationDTO{Latitude: 6.5244, Longitude: 3.3792, Address: "Victoria Island"},
	}
	keys := map[string]any{
		"IPAddress": "41.1.1.1",
		"Latitude":  9.0765,
		"Longitude": 7.3986,
		"City":      "Abuja",
	}

	input := markInputFromDTO(markContext(body, keys))
	if input.Location == nil {
		t.Fatalf("explicit location must be carried")
	}
	if input.Location.Latitude != 6.5244 || input.Location.Address != "Victoria Island" {
		t.Errorf("client location must win over the geo lookup, got %+v", input.Location)
	}
}

func TestMarkInputFallsBackToGeoLookup(t *testing.T) {
	body := dto.MarkAttendanceDTO{FaceImage: "img"}
	keys := map[string]any{
		"IPAddress": "41.1.1.1",
		"Latitude":  9.0765,
		"Longitude": 7.3986,
		"City":      "Abuja",
	}

	input := markInputFromDTO(markContext(body, keys))
	if input.Location == nil {
		t.Fatalf("geo lookup must fill the location when the client omits it")
	}
	if input.Location.Latitude != 9.0765 || input.Location.Longitude != 7.3986 {
		t.Errorf("fallback location should come from the lookup, got %+v", input.Location)
	}
	if input.Location.Address != "Abuja" {
		t.Errorf("fallback address should be the looked up city, got %q", input.Location.Address)
	}
}

func TestMarkInputWithoutAnyLocation(t *testing.T) {
	body := dto.MarkAttendanceDTO{FaceImage: "img"}
	keys := map[string]any{"IPAddress": "41.1.1.1"}

	input := markInputFromDTO(markContext(body, keys))
	if input.Location != nil {
		t.Errorf("no client location and no lookup should leave the location empty, got %+v", input.Location)
	}
	if input.IPAddress != "41.1.1.1" {
		t.Errorf("source address should still be carried, got %q", input.IPAddress)
	}
}
