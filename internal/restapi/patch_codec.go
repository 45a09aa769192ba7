package restapi

import (
	"encoding/json"
	"fmt"
	"time"

	"workspace.busmate.lk/internal/models"
	"workspace.busmate.lk/internal/workspace"
)

// patchEnvelope is the wire form of a tagged patch: a kind plus the
// variant's own fields, flattened.
type patchEnvelope struct {
	Kind string `json:"kind"`

	Value     string  `json:"value,omitempty"`
	Km        float64 `json:"km,omitempty"`
	Minutes   int     `json:"minutes,omitempty"`
	Lat       float64 `json:"lat,omitempty"`
	Lon       float64 `json:"lon,omitempty"`
	Flag      bool    `json:"flag,omitempty"`
	Name      string  `json:"name,omitempty"`
	NameSi    string  `json:"nameSi,omitempty"`
	NameTa    string  `json:"nameTa,omitempty"`
	Address   string  `json:"addressLine,omitempty"`
	City      string  `json:"city,omitempty"`
	StartID   string  `json:"startStopId,omitempty"`
	StartName string  `json:"startStopName,omitempty"`
	EndID     string  `json:"endStopId,omitempty"`
	EndName   string  `json:"endStopName,omitempty"`
}

func decodePatchEnvelope(data []byte) (patchEnvelope, error) {
	var env patchEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return patchEnvelope{}, fmt.Errorf("invalid patch: %w", err)
	}
	if env.Kind == "" {
		return patchEnvelope{}, fmt.Errorf("patch kind is required")
	}
	return env, nil
}

func routePatchFromJSON(data []byte) (workspace.RoutePatch, error) {
	env, err := decodePatchEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch env.Kind {
	case "setName":
		return workspace.SetRouteName{Value: env.Value}, nil
	case "setDescription":
		return workspace.SetRouteDescription{Value: env.Value}, nil
	case "setDistanceKm":
		return workspace.SetRouteDistanceKm{Value: env.Km}, nil
	case "setDuration":
		return workspace.SetRouteDuration{Minutes: env.Minutes}, nil
	case "setEndpoints":
		return workspace.SetRouteEndpoints{
			StartStopID:   env.StartID,
			StartStopName: env.StartName,
			EndStopID:     env.EndID,
			EndStopName:   env.EndName,
		}, nil
	default:
		return nil, fmt.Errorf("unknown route patch kind %q", env.Kind)
	}
}

func routeStopPatchFromJSON(data []byte) (workspace.RouteStopPatch, error) {
	env, err := decodePatchEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch env.Kind {
	case "setStopId":
		return workspace.SetStopID{Value: env.Value}, nil
	case "setName":
		return workspace.SetStopName{Name: env.Name, NameSinhala: env.NameSi, NameTamil: env.NameTa}, nil
	case "setLocation":
		return workspace.SetStopLocation{Lat: env.Lat, Lon: env.Lon}, nil
	case "clearLocation":
		return workspace.ClearStopLocation{}, nil
	case "setAddress":
		return workspace.SetStopAddress{AddressLine: env.Address, City: env.City}, nil
	case "setAccessible":
		return workspace.SetStopAccessible{Value: env.Flag}, nil
	case "setDistanceFromStart":
		return workspace.SetDistanceFromStart{Km: env.Km}, nil
	case "clearDistanceFromStart":
		return workspace.ClearDistanceFromStart{}, nil
	default:
		return nil, fmt.Errorf("unknown route stop patch kind %q", env.Kind)
	}
}

func schedulePatchFromJSON(data []byte) (workspace.SchedulePatch, error) {
	env, err := decodePatchEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch env.Kind {
	case "setName":
		return workspace.SetScheduleName{Value: env.Value}, nil
	case "setType":
		t := models.ScheduleType(env.Value)
		if !t.Valid() {
			return nil, fmt.Errorf("unknown schedule type %q", env.Value)
		}
		return workspace.SetScheduleType{Value: t}, nil
	case "setStatus":
		return workspace.SetScheduleStatus{Value: models.ScheduleStatus(env.Value)}, nil
	case "setEffectiveStartDate":
		return workspace.SetEffectiveStartDate{Value: env.Value}, nil
	case "setEffectiveEndDate":
		return workspace.SetEffectiveEndDate{Value: env.Value}, nil
	default:
		return nil, fmt.Errorf("unknown schedule patch kind %q", env.Kind)
	}
}

func scheduleStopPatchFromJSON(data []byte) (workspace.ScheduleStopPatch, error) {
	env, err := decodePatchEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch env.Kind {
	case "setArrivalTime":
		return workspace.SetArrivalTime{Value: env.Value}, nil
	case "setDepartureTime":
		return workspace.SetDepartureTime{Value: env.Value}, nil
	case "copyArrivalToDeparture":
		return workspace.CopyArrivalToDeparture{}, nil
	case "clearTimes":
		return workspace.ClearStopTimes{}, nil
	default:
		return nil, fmt.Errorf("unknown schedule stop patch kind %q", env.Kind)
	}
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func parseWeekday(s string) (time.Weekday, error) {
	if d, ok := weekdays[s]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown day %q", s)
}
