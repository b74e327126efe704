package v1

import "github.com/shenikar/emergency_geo/internal/models"

func pointToResponse(p models.GeoPoint) PointResponse {
	return PointResponse{Latitude: p.Latitude, Longitude: p.Longitude}
}

func pointFromDTO(lat, lon *float64) models.GeoPoint {
	return models.GeoPoint{Latitude: *lat, Longitude: *lon}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:            model.ID,
		SubjectID:     model.SubjectID,
		Origin:        pointToResponse(model.Origin),
		OriginGeohash: model.OriginGeohash,
		State:         string(model.State),
		Responders:    make([]string, 0, len(model.Responders)),
		TrackPoints:   make([]TrackPointResponse, 0, len(model.TrackPoints)),
		Messages:      make([]MessageResponse, 0, len(model.Messages)),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
		ResolvedAt:    model.ResolvedAt,
	}
	resp.Responders = append(resp.Responders, model.Responders...)
	for _, tp := range model.TrackPoints {
		resp.TrackPoints = append(resp.TrackPoints, TrackPointResponse{
			RecordedAt: tp.RecordedAt,
			Point:      pointToResponse(tp.Point),
			Geohash:    tp.Geohash,
		})
	}
	for _, msg := range model.Messages {
		resp.Messages = append(resp.Messages, MessageResponse{
			SenderID:  msg.SenderID,
			Body:      msg.Body,
			CreatedAt: msg.CreatedAt,
		})
	}
	return resp
}

// ModelToEntryResponse преобразует запись индекса в DTO
func ModelToEntryResponse(entry *models.IndexEntry) EntryResponse {
	return EntryResponse{
		EntityID:  entry.EntityID,
		Geohash:   entry.Geohash,
		Point:     pointToResponse(entry.Point),
		Payload:   entry.Payload,
		UpdatedAt: entry.UpdatedAt,
	}
}

// ModelsToMatchResponses преобразует результаты поиска в слайс DTO
func ModelsToMatchResponses(matches []models.Match) []MatchResponse {
	responses := make([]MatchResponse, len(matches))
	for i, m := range matches {
		responses[i] = MatchResponse{
			EntryResponse:  ModelToEntryResponse(m.Entry),
			DistanceMeters: m.DistanceMeters,
		}
	}
	return responses
}
